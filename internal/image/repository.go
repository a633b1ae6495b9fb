package image

import (
	"sort"
	"sync"
)

type Repository interface {
	// Create assigns the next display order within the listing's gallery.
	Create(img Image) (Image, error)
	ListByListingID(listingID int) ([]Image, error)
	// ListByListingIDs batches the reference lookup for a set of listings.
	ListByListingIDs(ids []int) (map[int][]string, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Image
	nextID  int
}

func NewInMemoryRepository(seed []Image) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Image, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, img := range seed {
		r.storage = append(r.storage, img)
		if img.ID > maxID {
			maxID = img.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(img Image) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if img.ID == 0 {
		img.ID = r.nextID
		r.nextID++
	}
	maxOrder := 0
	for _, existing := range r.storage {
		if existing.ListingID == img.ListingID && existing.DisplayOrder > maxOrder {
			maxOrder = existing.DisplayOrder
		}
	}
	img.DisplayOrder = maxOrder + 1

	r.storage = append(r.storage, img)
	return img, nil
}

func (r *InMemoryRepository) ListByListingID(listingID int) ([]Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Image, 0)
	for _, img := range r.storage {
		if img.ListingID == listingID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *InMemoryRepository) ListByListingIDs(ids []int) (map[int][]string, error) {
	out := make(map[int][]string)
	for _, id := range ids {
		imgs, _ := r.ListByListingID(id)
		for _, img := range imgs {
			out[img.ListingID] = append(out[img.ListingID], img.URL)
		}
	}
	return out, nil
}
