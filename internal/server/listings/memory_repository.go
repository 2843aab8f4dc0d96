package listings

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	nextID     int64
	byCategory map[string]map[int64]*Listing
}

func NewMemoryRepository(categories []Category) *MemoryRepository {
	r := &MemoryRepository{categories: categories, byCategory: map[string]map[int64]*Listing{}}
	for _, c := range categories {
		r.byCategory[c.Key] = map[int64]*Listing{}
	}
	return r
}

func (r *MemoryRepository) Categories(context.Context) ([]Category, error) {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *MemoryRepository) HasCategory(_ context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byCategory[key]
	return ok, nil
}

func (r *MemoryRepository) Count(_ context.Context, category string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byCategory[category]
	if !ok {
		return 0, ErrUnknownCategory
	}
	return len(m), nil
}

func (r *MemoryRepository) Create(_ context.Context, l *Listing) (*Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byCategory[l.Category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	r.nextID++
	c := *l
	c.ID = r.nextID
	m[c.ID] = &c
	return clone(&c), nil
}

func (r *MemoryRepository) Get(_ context.Context, category string, id int64) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byCategory[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	l, ok := m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(l), nil
}

// List returns the category's listings, newest first.
func (r *MemoryRepository) List(_ context.Context, category string) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byCategory[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	out := make([]*Listing, 0, len(m))
	for _, l := range m {
		out = append(out, clone(l))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Listing
	for _, m := range r.byCategory {
		for _, l := range m {
			if l.UserID == userID {
				out = append(out, clone(l))
			}
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, l *Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byCategory[l.Category]
	if !ok {
		return ErrUnknownCategory
	}
	if _, ok := m[l.ID]; !ok {
		return ErrNotFound
	}
	m[l.ID] = clone(l)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, category string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byCategory[category]
	if !ok {
		return ErrUnknownCategory
	}
	if _, ok := m[id]; !ok {
		return ErrNotFound
	}
	delete(m, id)
	return nil
}

func clone(l *Listing) *Listing {
	c := *l
	if l.LastEditedAt != nil {
		t := *l.LastEditedAt
		c.LastEditedAt = &t
	}
	return &c
}

func sortNewestFirst(ls []*Listing) {
	sort.Slice(ls, func(i, j int) bool {
		if ls[i].CreatedAt.Equal(ls[j].CreatedAt) {
			return ls[i].ID > ls[j].ID
		}
		return ls[i].CreatedAt.After(ls[j].CreatedAt)
	})
}
