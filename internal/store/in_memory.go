package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	werrors "github.com/abgdnv/gowarehouse/internal/errors"
	"github.com/google/uuid"
)

// inMemory implements WarehouseStore using an in-memory map.
type inMemory struct {
	mu         sync.RWMutex
	warehouses map[string]Warehouse
}

// NewInMemoryStore creates a new instance of WarehouseStore
func NewInMemoryStore() WarehouseStore {
	return &inMemory{
		warehouses: make(map[string]Warehouse),
	}
}

// Save persists the full warehouse document, replacing any existing document with the same ID.
func (s *inMemory) Save(_ context.Context, warehouse Warehouse) (*Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if warehouse.ID == "" {
		warehouse.ID = uuid.NewString()
	}
	if warehouse.Products == nil {
		warehouse.Products = []Product{}
	}
	s.warehouses[warehouse.ID] = copyWarehouse(warehouse)
	return &warehouse, nil
}

// FindByID retrieves a warehouse document by its ID.
func (s *inMemory) FindByID(_ context.Context, id string) (*Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.warehouses[id]
	if !ok {
		return nil, werrors.ErrWarehouseNotFound
	}
	found := copyWarehouse(w)
	return &found, nil
}

// FindAll retrieves all warehouse documents ordered by ID.
func (s *inMemory) FindAll(_ context.Context) ([]Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Warehouse, 0, len(s.warehouses))
	for _, w := range s.warehouses {
		list = append(list, copyWarehouse(w))
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.Compare(list[i].ID, list[j].ID) < 0
	})
	return list, nil
}

// DeleteByID removes a warehouse document by its ID. Absent IDs are a no-op.
func (s *inMemory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.warehouses, id)
	return nil
}

// FindByProductID returns all warehouse documents containing a product with
// the given productId, ordered by warehouse ID ascending.
func (s *inMemory) FindByProductID(_ context.Context, productID string) ([]Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Warehouse, 0)
	for _, w := range s.warehouses {
		for _, p := range w.Products {
			if p.ProductID == productID {
				list = append(list, copyWarehouse(w))
				break
			}
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.Compare(list[i].ID, list[j].ID) < 0
	})
	return list, nil
}

// copyWarehouse returns a deep copy so callers cannot mutate stored documents.
func copyWarehouse(w Warehouse) Warehouse {
	products := make([]Product, len(w.Products))
	copy(products, w.Products)
	w.Products = products
	return w
}
