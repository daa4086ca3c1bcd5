// Package service provides the implementation of warehouse-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	werrors "github.com/abgdnv/gowarehouse/internal/errors"
	"github.com/abgdnv/gowarehouse/internal/events"
	"github.com/abgdnv/gowarehouse/internal/store"
	"github.com/abgdnv/gowarehouse/pkg/messaging"
)

// WarehouseService defines the methods for managing warehouses and their products.
// It abstracts the underlying business logic and data access.
type WarehouseService interface {
	// AddWarehouse persists the given warehouse with full replace semantics
	// keyed by ID. The store assigns an ID when none is set.
	// Returns the persisted warehouse including any store-assigned ID.
	AddWarehouse(ctx context.Context, warehouse WarehouseDto) (*WarehouseDto, error)

	// FindAll returns all persisted warehouses in store-defined order.
	// Returns an empty slice if no warehouses exist.
	FindAll(ctx context.Context) ([]WarehouseDto, error)

	// FindByID retrieves a single warehouse by its unique identifier.
	// Returns ErrWarehouseNotFound if no warehouse exists with the given ID.
	FindByID(ctx context.Context, id string) (*WarehouseDto, error)

	// DeleteByID removes a warehouse by its ID.
	// Deleting a non-existent ID is a no-op, never an error.
	DeleteByID(ctx context.Context, id string) error

	// AddProduct appends the product to the end of the warehouse's product
	// list and persists the updated document. The append does not deduplicate
	// or merge by productId. Returns the updated warehouse.
	// Returns ErrWarehouseNotFound if no warehouse exists with the given ID;
	// no write is performed in that case.
	AddProduct(ctx context.Context, warehouseID string, product ProductDto) (*WarehouseDto, error)

	// FindProduct searches all warehouses for a product with the given ID and
	// returns the owning warehouse together with the product. When the ID
	// occurs in multiple warehouses the first match by warehouse ID order wins.
	// Returns ErrProductNotFound if no warehouse contains such a product.
	FindProduct(ctx context.Context, productID string) (*ProductLookupDto, error)

	// DeleteProduct removes the product with the given ID from the named
	// warehouse and persists the updated document. A missing warehouse or a
	// missing product is a no-op, never an error.
	DeleteProduct(ctx context.Context, warehouseID, productID string) error
}

// Service implements WarehouseService and provides methods to manage warehouses.
type Service struct {
	repository store.WarehouseStore
	publisher  messaging.Publisher
}

// NewService creates a new instance of WarehouseService with the provided repository.
// The publisher may be nil, in which case no events are emitted.
func NewService(repo store.WarehouseStore, publisher messaging.Publisher) *Service {
	return &Service{
		repository: repo,
		publisher:  publisher,
	}
}

// ProductDto represents the data transfer object for a product.
// Field contents are not validated: quantity may be zero or negative and
// productId uniqueness is not enforced.
type ProductDto struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// WarehouseDto represents the data transfer object for a warehouse.
type WarehouseDto struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Products []ProductDto `json:"products"`
}

// ProductLookupDto is the composite result of a product search: the product
// together with its owning warehouse.
type ProductLookupDto struct {
	Warehouse WarehouseDto `json:"warehouse"`
	Product   ProductDto   `json:"product"`
}

// AddWarehouse persists the given warehouse and returns it as a WarehouseDto.
// Returns an error if the warehouse cannot be persisted.
func (s *Service) AddWarehouse(ctx context.Context, warehouse WarehouseDto) (*WarehouseDto, error) {
	saved, err := s.repository.Save(ctx, toDocument(warehouse))
	if err != nil {
		return nil, fmt.Errorf("failed to save warehouse: %w", err)
	}
	s.publish(ctx, events.WarehouseCreatedEvent{
		WarehouseID:  saved.ID,
		Name:         saved.Name,
		Location:     saved.Location,
		ProductCount: len(saved.Products),
		CreatedAt:    time.Now().UTC(),
	})
	return toDto(saved), nil
}

// FindAll retrieves all warehouses and returns them as WarehouseDtos.
// Returns an empty slice if no warehouses exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]WarehouseDto, error) {
	warehouses, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouses: %w", err)
	}
	dtos := make([]WarehouseDto, len(warehouses))
	for i, w := range warehouses {
		dtos[i] = *toDto(&w)
	}
	return dtos, nil
}

// FindByID retrieves a warehouse by its ID and returns it as a WarehouseDto.
// Returns ErrWarehouseNotFound if no warehouse exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id string) (*WarehouseDto, error) {
	warehouse, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouse by ID %s: %w", id, err)
	}
	return toDto(warehouse), nil
}

// DeleteByID deletes a warehouse by its ID. Absent IDs are a no-op.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete warehouse by ID %s: %w", id, err)
	}
	return nil
}

// AddProduct appends the product to the warehouse's product list and persists
// the updated document. The sequence is read-modify-write: no locking is
// applied, so concurrent appends to the same warehouse can lose updates.
// Returns ErrWarehouseNotFound if no warehouse exists with the given ID.
func (s *Service) AddProduct(ctx context.Context, warehouseID string, product ProductDto) (*WarehouseDto, error) {
	warehouse, err := s.repository.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouse by ID %s: %w", warehouseID, err)
	}
	warehouse.Products = append(warehouse.Products, store.Product(product))
	updated, err := s.repository.Save(ctx, *warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to save warehouse %s: %w", warehouseID, err)
	}
	s.publish(ctx, events.ProductAddedEvent{
		WarehouseID: updated.ID,
		ProductID:   product.ProductID,
		Quantity:    product.Quantity,
		AddedAt:     time.Now().UTC(),
	})
	return toDto(updated), nil
}

// FindProduct searches all warehouses for a product with the given ID and
// returns the first match by warehouse ID order together with its warehouse.
// Returns ErrProductNotFound if no warehouse contains such a product.
func (s *Service) FindProduct(ctx context.Context, productID string) (*ProductLookupDto, error) {
	warehouses, err := s.repository.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to search warehouses for product %s: %w", productID, err)
	}
	for _, w := range warehouses {
		for _, p := range w.Products {
			if p.ProductID == productID {
				return &ProductLookupDto{
					Warehouse: *toDto(&w),
					Product:   ProductDto(p),
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to find product %s: %w", productID, werrors.ErrProductNotFound)
}

// DeleteProduct removes the product with the given ID from the named warehouse
// and persists the updated document. Missing warehouse or product is a no-op.
func (s *Service) DeleteProduct(ctx context.Context, warehouseID, productID string) error {
	warehouse, err := s.repository.FindByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, werrors.ErrWarehouseNotFound) {
			return nil
		}
		return fmt.Errorf("failed to fetch warehouse by ID %s: %w", warehouseID, err)
	}
	kept := make([]store.Product, 0, len(warehouse.Products))
	removed := false
	for _, p := range warehouse.Products {
		if p.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}
	warehouse.Products = kept
	if _, err := s.repository.Save(ctx, *warehouse); err != nil {
		return fmt.Errorf("failed to save warehouse %s: %w", warehouseID, err)
	}
	return nil
}

// publish emits the event when a publisher is configured. Publish failures are
// logged, never surfaced: events are outside the persistence contract.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

// toDocument converts a WarehouseDto to a store.Warehouse.
func toDocument(dto WarehouseDto) store.Warehouse {
	products := make([]store.Product, len(dto.Products))
	for i, p := range dto.Products {
		products[i] = store.Product(p)
	}
	return store.Warehouse{
		ID:       dto.ID,
		Name:     dto.Name,
		Location: dto.Location,
		Products: products,
	}
}

// toDto converts a store.Warehouse to a WarehouseDto.
func toDto(warehouse *store.Warehouse) *WarehouseDto {
	products := make([]ProductDto, len(warehouse.Products))
	for i, p := range warehouse.Products {
		products[i] = ProductDto(p)
	}
	return &WarehouseDto{
		ID:       warehouse.ID,
		Name:     warehouse.Name,
		Location: warehouse.Location,
		Products: products,
	}
}
