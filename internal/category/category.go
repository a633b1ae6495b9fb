package category

// Category is reference data created out of band (seeded at startup).
// Listings point at a category by id; public browsing filters by name.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
