package listing

import (
	"errors"
	"time"

	"github.com/openmarket/marketplace-backend/internal/category"
	"github.com/openmarket/marketplace-backend/internal/user"
)

var ErrCategoryNotFound = errors.New("category not found")

// Draft carries the caller-supplied fields of a new listing.
type Draft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int     `json:"categoryId"`
	Location    string  `json:"location"`
}

// ImageSource lists stored image references per listing id. Wired to the
// image repository in main; nil when details carry no images.
type ImageSource interface {
	ListByListingIDs(ids []int) (map[int][]string, error)
}

type Service struct {
	repo       Repository
	categories *category.Service
	users      *user.Service
	images     ImageSource
}

func NewService(repo Repository, categories *category.Service, users *user.Service, images ImageSource) *Service {
	return &Service{repo: repo, categories: categories, users: users, images: images}
}

// Create validates the category and owner, stamps status and timestamps,
// and persists the listing. The only write happens after validation passed.
func (s *Service) Create(d Draft, ownerID int) (Listing, error) {
	if _, err := s.categories.GetByID(d.CategoryID); err != nil {
		return Listing{}, ErrCategoryNotFound
	}
	if _, err := s.users.GetByID(ownerID); err != nil {
		return Listing{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(Listing{
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		CategoryID:  d.CategoryID,
		UserID:      ownerID,
		Location:    d.Location,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) Get(id int) (Listing, error) {
	return s.repo.GetByID(id)
}

// Detail joins the seller's display name and contact info and the category
// name into the read-optimized view. Any caller sees the contact info.
func (s *Service) Detail(id int) (DetailView, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return DetailView{}, err
	}

	seller, err := s.users.GetByID(l.UserID)
	if err != nil {
		return DetailView{}, err
	}

	categoryName := ""
	if cat, err := s.categories.GetByID(l.CategoryID); err == nil {
		categoryName = cat.Name
	}

	urls := []string{}
	if s.images != nil {
		if byListing, err := s.images.ListByListingIDs([]int{l.ID}); err == nil {
			if refs, ok := byListing[l.ID]; ok {
				urls = refs
			}
		}
	}

	return DetailView{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		Category:    categoryName,
		CreatedAt:   l.CreatedAt,
		SellerName:  seller.DisplayName(),
		SellerEmail: seller.Email,
		SellerPhone: seller.Phone,
		ImageURLs:   urls,
	}, nil
}

// Search applies the filter conjunction with caller-controlled pagination
// and sort.
func (s *Service) Search(f Filter, pr PageRequest) (Page, error) {
	items, total, err := s.repo.Search(f.Predicates(), pr)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Content:       items,
		TotalElements: total,
		TotalPages:    totalPages(total, pr.Size),
		Page:          pr.Page,
		Size:          pr.Size,
	}, nil
}

// Views returns one unfiltered page mapped to the lightweight shape.
func (s *Service) Views(page, size int) ([]View, error) {
	items, _, err := s.repo.Search(nil, NewPageRequest(page, size, "", ""))
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(items))
	for _, l := range items {
		out = append(out, toView(l))
	}
	return out, nil
}

// PublicBrowse is the unauthenticated browse: category-name equality plus
// location substring, always newest first.
func (s *Service) PublicBrowse(page, size int, categoryName, location string) (ViewPage, error) {
	f := Filter{CategoryName: categoryName, Location: location}
	pr := NewPageRequest(page, size, DefaultSortField, "desc")

	items, total, err := s.repo.Search(f.Predicates(), pr)
	if err != nil {
		return ViewPage{}, err
	}

	views := make([]View, 0, len(items))
	for _, l := range items {
		views = append(views, toView(l))
	}
	return ViewPage{
		Content:       views,
		TotalElements: total,
		TotalPages:    totalPages(total, pr.Size),
		Page:          pr.Page,
		Size:          pr.Size,
	}, nil
}
