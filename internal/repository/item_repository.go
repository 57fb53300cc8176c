package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"inventory-catalog/internal/domain"
)

// ItemRepository defines the interface for item persistence.
//
// Implementations must enforce name uniqueness atomically inside Save: of two
// concurrent inserts with the same name at most one succeeds, the other gets a
// *domain.ConstraintViolation.
type ItemRepository interface {
	FindAll(ctx context.Context) ([]domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindByNameContaining(ctx context.Context, substring string) ([]domain.Item, error)
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	DeleteByID(ctx context.Context, id int64) error
}

// InMemoryItemRepository keeps items in a map guarded by a single lock
type InMemoryItemRepository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	byName map[string]int64
	nextID int64
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  make(map[int64]*domain.Item),
		byName: make(map[string]int64),
		nextID: 1,
	}
}

func (r *InMemoryItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *item)
	}
	sortByID(items)
	return items, nil
}

func (r *InMemoryItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, domain.ErrItemNotFound
	}
	return item.Clone(), nil
}

func (r *InMemoryItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byName[name]
	return exists, nil
}

func (r *InMemoryItemRepository) FindByNameContaining(ctx context.Context, substring string) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(substring)
	items := make([]domain.Item, 0)
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			items = append(items, *item)
		}
	}
	sortByID(items)
	return items, nil
}

// Save inserts when the item has no id yet, otherwise overwrites the stored record.
// The uniqueness check and the write happen under the same lock.
func (r *InMemoryItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, taken := r.byName[item.Name]; taken && owner != item.ID {
		return nil, domain.NewNameConstraintViolation(item.Name)
	}

	stored := item.Clone()
	if stored.IsNew() {
		stored.ID = r.nextID
		r.nextID++
	} else {
		previous, exists := r.items[stored.ID]
		if !exists {
			return nil, domain.ErrItemNotFound
		}
		delete(r.byName, previous.Name)
	}

	r.items[stored.ID] = stored
	r.byName[stored.Name] = stored.ID
	return stored.Clone(), nil
}

func (r *InMemoryItemRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return domain.ErrItemNotFound
	}
	delete(r.byName, item.Name)
	delete(r.items, id)
	return nil
}

func sortByID(items []domain.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
