package image

// Image links a stored file reference to its listing. DisplayOrder is the
// sort position within the listing's gallery.
type Image struct {
	ID           int    `json:"id"`
	ListingID    int    `json:"listingId"`
	URL          string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
}
