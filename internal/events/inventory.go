// Package events defines the inventory change events published by the service.
package events

import (
	"encoding/json"
	"time"
)

const (
	WarehouseCreatedSubject = "inventory.warehouse.created"
	ProductAddedSubject     = "inventory.product.added"
)

type WarehouseCreatedEvent struct {
	WarehouseID  string    `json:"warehouse_id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e WarehouseCreatedEvent) Subject() string {
	return WarehouseCreatedSubject
}

func (e WarehouseCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductAddedEvent struct {
	WarehouseID string    `json:"warehouse_id"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

func (e ProductAddedEvent) Subject() string {
	return ProductAddedSubject
}

func (e ProductAddedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
