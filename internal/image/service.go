package image

import (
	"errors"
	"mime/multipart"
)

var ErrListingNotFound = errors.New("listing not found")

// Listings is the narrow slice of the catalog the upload path needs.
type Listings interface {
	Exists(id int) bool
}

// ListingGetter adapts a catalog lookup func into Listings.
type ListingGetter func(id int) error

func (g ListingGetter) Exists(id int) bool {
	return g(id) == nil
}

type Service struct {
	store    Store
	repo     Repository
	listings Listings
}

func NewService(store Store, repo Repository, listings Listings) *Service {
	return &Service{store: store, repo: repo, listings: listings}
}

// Attach stores the uploaded file and persists the listing association,
// returning the stored reference. The target listing must exist; nothing is
// written when it does not.
func (s *Service) Attach(listingID int, file *multipart.FileHeader) (string, error) {
	if !s.listings.Exists(listingID) {
		return "", ErrListingNotFound
	}

	ref, err := s.store.Save(file)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.Create(Image{ListingID: listingID, URL: ref}); err != nil {
		return "", err
	}
	return ref, nil
}

// List returns the listing's gallery in display order.
func (s *Service) List(listingID int) ([]Image, error) {
	if !s.listings.Exists(listingID) {
		return nil, ErrListingNotFound
	}
	return s.repo.ListByListingID(listingID)
}
