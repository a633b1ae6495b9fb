package listing

import (
	"testing"

	"github.com/openmarket/marketplace-backend/internal/category"
	"github.com/openmarket/marketplace-backend/internal/user"
)

func newTestService(listings []Listing) (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository(listings)
	repo.CategoryNames = map[int]string{1: "Vehicles", 2: "Furniture"}

	categories := category.NewService(category.NewInMemoryRepository([]category.Category{
		{ID: 1, Name: "Vehicles"},
		{ID: 2, Name: "Furniture"},
	}))
	users := user.NewService(user.NewInMemoryRepository([]user.User{
		{ID: 1, Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Phone: "555-0101"},
	}))

	return NewService(repo, categories, users, nil), repo
}

func TestCreate_StampsStatusAndTimestamps(t *testing.T) {
	svc, _ := newTestService(nil)

	created, err := svc.Create(Draft{
		Title:       "Mountain Bike",
		Description: "Mountain Bike for sale",
		Price:       15,
		CategoryID:  1,
		Location:    "Berlin",
	}, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.ID == 0 {
		t.Fatalf("expected a generated id")
	}
	if created.Status != StatusActive {
		t.Fatalf("expected status ACTIVE, got %q", created.Status)
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Fatalf("expected timestamps to be stamped, got %+v", created)
	}
}

func TestCreate_UnknownCategoryFailsWithoutWrite(t *testing.T) {
	svc, repo := newTestService(nil)

	_, err := svc.Create(Draft{Title: "Bike", Price: 15, CategoryID: 99}, 1)
	if err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if len(repo.storage) != 0 {
		t.Fatalf("failed create must not persist anything, found %d rows", len(repo.storage))
	}
}

func TestCreate_UnknownOwnerFails(t *testing.T) {
	svc, repo := newTestService(nil)

	_, err := svc.Create(Draft{Title: "Bike", Price: 15, CategoryID: 1}, 42)
	if err != user.ErrNotFound {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
	if len(repo.storage) != 0 {
		t.Fatalf("failed create must not persist anything")
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	svc, _ := newTestService(nil)

	draft := Draft{
		Title:       "Grey Sofa",
		Description: "Three seats",
		Price:       120.50,
		CategoryID:  2,
		Location:    "Hamburg",
	}
	created, err := svc.Create(draft, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.Title != draft.Title ||
		fetched.Description != draft.Description ||
		fetched.Price != draft.Price ||
		fetched.Location != draft.Location ||
		fetched.CategoryID != draft.CategoryID {
		t.Fatalf("round-trip mismatch: %+v vs draft %+v", fetched, draft)
	}
}

func TestDetail_FlattensSellerAndCategory(t *testing.T) {
	svc, _ := newTestService([]Listing{
		{ID: 5, Title: "Bike", Price: 15, CategoryID: 1, UserID: 1, CreatedAt: "2024-01-01T10:00:00Z"},
	})

	detail, err := svc.Detail(5)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.SellerName != "Jane Doe" {
		t.Fatalf("expected seller name 'Jane Doe', got %q", detail.SellerName)
	}
	if detail.SellerEmail != "jane@example.com" || detail.SellerPhone != "555-0101" {
		t.Fatalf("seller contact mismatch: %+v", detail)
	}
	if detail.Category != "Vehicles" {
		t.Fatalf("expected category name 'Vehicles', got %q", detail.Category)
	}
}

func TestDetail_MissingListing(t *testing.T) {
	svc, _ := newTestService(nil)
	if _, err := svc.Detail(404); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublicBrowse_FiltersByCategoryNameAndLocation(t *testing.T) {
	svc, _ := newTestService([]Listing{
		{ID: 1, Title: "Bike", Price: 15, CategoryID: 1, UserID: 1, Location: "Berlin", CreatedAt: "2024-01-01T10:00:00Z"},
		{ID: 2, Title: "Sofa", Price: 120, CategoryID: 2, UserID: 1, Location: "Berlin", CreatedAt: "2024-01-02T10:00:00Z"},
		{ID: 3, Title: "Shelf", Price: 20, CategoryID: 2, UserID: 1, Location: "Munich", CreatedAt: "2024-01-03T10:00:00Z"},
	})

	page, err := svc.PublicBrowse(0, 10, "Furniture", "berlin")
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if page.TotalElements != 1 || len(page.Content) != 1 {
		t.Fatalf("expected exactly the Berlin sofa, got %+v", page)
	}
	if page.Content[0].Title != "Sofa" {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
}

func TestViews_MapsToLightweightShape(t *testing.T) {
	svc, _ := newTestService([]Listing{
		{ID: 1, Title: "Bike", Description: "fast", Price: 15, CategoryID: 1, UserID: 1, Location: "Berlin", CreatedAt: "2024-01-01T10:00:00Z"},
	})

	views, err := svc.Views(0, 10)
	if err != nil {
		t.Fatalf("views failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one view, got %d", len(views))
	}
	v := views[0]
	if v.Title != "Bike" || v.Price != 15 || v.CategoryID != 1 || v.Location != "Berlin" {
		t.Fatalf("view mismatch: %+v", v)
	}
}
