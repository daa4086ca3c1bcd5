package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	werrors "github.com/abgdnv/gowarehouse/internal/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements WarehouseStore using PostgreSQL as the document store.
// Each warehouse is a single JSONB document in the warehouses table.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of WarehouseStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// Save persists the full warehouse document, replacing any existing document with the same ID.
// Assigns a random UUID when the ID is empty.
func (p *PgStore) Save(ctx context.Context, warehouse Warehouse) (*Warehouse, error) {
	if warehouse.ID == "" {
		warehouse.ID = uuid.NewString()
	}
	if warehouse.Products == nil {
		warehouse.Products = []Product{}
	}
	doc, err := json.Marshal(warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal warehouse document: %w", err)
	}
	_, err = p.db.Exec(ctx,
		`INSERT INTO warehouses (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		warehouse.ID, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to save warehouse: %w", err)
	}
	return &warehouse, nil
}

// FindByID retrieves a warehouse document by its unique identifier.
// Returns ErrWarehouseNotFound if no document exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id string) (*Warehouse, error) {
	var doc []byte
	err := p.db.QueryRow(ctx, `SELECT doc FROM warehouses WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, werrors.ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("failed to find warehouse by ID: %w", err)
	}
	return unmarshalWarehouse(doc)
}

// FindAll retrieves all warehouse documents ordered by ID.
// It returns a slice of warehouses, which may be empty if no documents exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Warehouse, error) {
	rows, err := p.db.Query(ctx, `SELECT doc FROM warehouses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all warehouses: %w", err)
	}
	defer rows.Close()
	return collectWarehouses(rows)
}

// DeleteByID removes the warehouse document with the given ID.
// Deleting an absent ID is a no-op.
func (p *PgStore) DeleteByID(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete warehouse by ID: %w", err)
	}
	return nil
}

// FindByProductID returns all warehouse documents whose products list contains
// an entry with the given productId, ordered by warehouse ID ascending.
func (p *PgStore) FindByProductID(ctx context.Context, productID string) ([]Warehouse, error) {
	needle, err := json.Marshal([]map[string]string{{"productId": productID}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal containment query: %w", err)
	}
	rows, err := p.db.Query(ctx,
		`SELECT doc FROM warehouses WHERE doc->'products' @> $1::jsonb ORDER BY id`, needle)
	if err != nil {
		return nil, fmt.Errorf("failed to find warehouses by product ID: %w", err)
	}
	defer rows.Close()
	return collectWarehouses(rows)
}

// collectWarehouses scans all rows into warehouse documents.
func collectWarehouses(rows pgx.Rows) ([]Warehouse, error) {
	list := make([]Warehouse, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse document: %w", err)
		}
		w, err := unmarshalWarehouse(doc)
		if err != nil {
			return nil, err
		}
		list = append(list, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate warehouse documents: %w", err)
	}
	return list, nil
}

func unmarshalWarehouse(doc []byte) (*Warehouse, error) {
	var w Warehouse
	if err := json.Unmarshal(doc, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal warehouse document: %w", err)
	}
	if w.Products == nil {
		w.Products = []Product{}
	}
	return &w, nil
}
