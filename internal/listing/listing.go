package listing

// Status is the listing lifecycle state. Only ACTIVE is set today; the other
// values complete the enumeration for stored data.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusSold     Status = "SOLD"
	StatusInactive Status = "INACTIVE"
)

// Listing is a single classified-ad record.
type Listing struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int     `json:"categoryId"`
	UserID      int     `json:"userId"`
	Location    string  `json:"location"`
	Status      Status  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// View is the lightweight transfer shape used by public browsing. It carries
// no id, seller or timestamps.
type View struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int     `json:"categoryId"`
	Location    string  `json:"location"`
}

// DetailView flattens a listing together with its category name and the
// seller's contact information. Contact info is public by design.
type DetailView struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	CreatedAt   string   `json:"createdAt"`
	SellerName  string   `json:"sellerName"`
	SellerEmail string   `json:"sellerEmail"`
	SellerPhone string   `json:"sellerPhone"`
	ImageURLs   []string `json:"imageUrls"`
}

// Page bundles a slice of listings with the total matching count and the
// page metadata consumers need for page-count display.
type Page struct {
	Content       []Listing `json:"content"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
}

// ViewPage is Page with the content mapped to the lightweight View shape.
type ViewPage struct {
	Content       []View `json:"content"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
}

func toView(l Listing) View {
	return View{
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		CategoryID:  l.CategoryID,
		Location:    l.Location,
	}
}

func totalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
