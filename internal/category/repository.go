package category

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	GetByName(name string) (Category, error)
}

// InMemoryRepository holds categories in a slice, useful for tests and seeding.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
	nextID  int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Category, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, c := range seed {
		if c.ID == 0 {
			c.ID = r.nextID
			r.nextID++
		}
		r.storage = append(r.storage, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.Name == name {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}
