package listing

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("listing not found")

type Repository interface {
	Create(l Listing) (Listing, error)
	GetByID(id int) (Listing, error)
	// Search applies the predicate conjunction, sorts, and returns one page
	// plus the total matching count.
	Search(ps []Predicate, pr PageRequest) ([]Listing, int, error)
}

// InMemoryRepository keeps listings in a slice; it evaluates the same
// predicates the postgres repository turns into SQL, which keeps filtering
// behavior testable without a store. CategoryNames resolves category ids to
// names for the category-name predicate used by public browsing.
type InMemoryRepository struct {
	mu            sync.RWMutex
	storage       []Listing
	nextID        int
	CategoryNames map[int]string
}

func NewInMemoryRepository(seed []Listing) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Listing, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, l := range seed {
		r.storage = append(r.storage, l)
		if l.ID > maxID {
			maxID = l.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(l Listing) (Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == 0 {
		l.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, l)
	return l, nil
}

func (r *InMemoryRepository) GetByID(id int) (Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.storage {
		if l.ID == id {
			return l, nil
		}
	}
	return Listing{}, ErrNotFound
}

func (r *InMemoryRepository) Search(ps []Predicate, pr PageRequest) ([]Listing, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Listing, 0)
	for _, l := range r.storage {
		if MatchesAll(l, ps, r.CategoryNames[l.CategoryID]) {
			matched = append(matched, l)
		}
	}

	sortListings(matched, pr)

	total := len(matched)
	start := pr.Offset()
	if start >= total {
		return []Listing{}, total, nil
	}
	end := start + pr.Size
	if end > total {
		end = total
	}
	page := make([]Listing, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func sortListings(items []Listing, pr PageRequest) {
	less := lessFunc(pr.SortBy)
	sort.SliceStable(items, func(i, j int) bool {
		if pr.SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// lessFunc returns the comparison for a whitelisted sort field. RFC3339
// timestamps order correctly as strings.
func lessFunc(field string) func(a, b Listing) bool {
	switch field {
	case "price":
		return func(a, b Listing) bool { return a.Price < b.Price }
	case "title":
		return func(a, b Listing) bool { return a.Title < b.Title }
	case "id":
		return func(a, b Listing) bool { return a.ID < b.ID }
	case "updatedAt":
		return func(a, b Listing) bool { return a.UpdatedAt < b.UpdatedAt }
	default:
		return func(a, b Listing) bool { return a.CreatedAt < b.CreatedAt }
	}
}
