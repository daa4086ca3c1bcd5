// Package store provides the warehouse document model and storage operations.
package store

import (
	"context"
)

// Product is an inventory line item owned by exactly one warehouse.
// The store does not enforce productId uniqueness; duplicates are persisted as-is.
type Product struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// Warehouse is the persisted document: one document per warehouse,
// products embedded in insertion order.
type Warehouse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Products []Product `json:"products"`
}

// WarehouseStore is an interface for warehouse document storage.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type WarehouseStore interface {
	// Save persists the full warehouse document, replacing any existing
	// document with the same ID. When the ID is empty the store assigns
	// a random UUID. Returns the persisted document.
	Save(ctx context.Context, warehouse Warehouse) (*Warehouse, error)

	// FindByID retrieves a warehouse document by its unique identifier.
	// Returns ErrWarehouseNotFound if no document exists with the given ID.
	FindByID(ctx context.Context, id string) (*Warehouse, error)

	// FindAll returns all warehouse documents in store-defined order.
	// Returns an empty slice if no documents exist.
	FindAll(ctx context.Context) ([]Warehouse, error)

	// DeleteByID removes the warehouse document with the given ID.
	// Deleting an absent ID is a no-op, never an error.
	DeleteByID(ctx context.Context, id string) error

	// FindByProductID returns all warehouse documents whose products list
	// contains an entry with the given productId, ordered by warehouse ID
	// ascending. Returns an empty slice if no document matches.
	FindByProductID(ctx context.Context, productID string) ([]Warehouse, error)
}
