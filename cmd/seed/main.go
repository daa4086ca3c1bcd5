// Package main seeds the warehouse store with demo data: ten products in
// three categories split across two warehouses. All existing documents are
// wiped first.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/gowarehouse/internal/config"
	"github.com/abgdnv/gowarehouse/internal/store"
	"github.com/abgdnv/gowarehouse/pkg/bootstrap"
	"github.com/abgdnv/gowarehouse/pkg/config/configloader"
)

const serviceName = "warehouse"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := configloader.Load[*config.Config](serviceName)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("failed to create database connection pool: %w", err)
	}
	defer dbPool.Close()

	warehouseStore := store.NewPgStore(dbPool)

	// Wipe all existing documents before seeding.
	existing, err := warehouseStore.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list warehouses: %w", err)
	}
	for _, w := range existing {
		if err := warehouseStore.DeleteByID(ctx, w.ID); err != nil {
			return fmt.Errorf("failed to delete warehouse %s: %w", w.ID, err)
		}
	}

	// 10 products in 3 categories
	products := []store.Product{
		{ProductID: "p1", Name: "Schraube", Category: "Baumaterial", Quantity: 100},
		{ProductID: "p2", Name: "Nagel", Category: "Baumaterial", Quantity: 200},
		{ProductID: "p3", Name: "Hammer", Category: "Werkzeug", Quantity: 50},
		{ProductID: "p4", Name: "Säge", Category: "Werkzeug", Quantity: 30},
		{ProductID: "p5", Name: "Bohrer", Category: "Werkzeug", Quantity: 40},
		{ProductID: "p6", Name: "Holzplatte", Category: "Baumaterial", Quantity: 80},
		{ProductID: "p7", Name: "Ziegel", Category: "Baumaterial", Quantity: 500},
		{ProductID: "p8", Name: "Farbeimer", Category: "Malerei", Quantity: 60},
		{ProductID: "p9", Name: "Pinsel", Category: "Malerei", Quantity: 120},
		{ProductID: "p10", Name: "Rolle", Category: "Malerei", Quantity: 90},
	}

	warehouses := []store.Warehouse{
		{ID: "warehouse1", Name: "Lager Nord", Location: "Berlin", Products: products[0:5]},
		{ID: "warehouse2", Name: "Lager Süd", Location: "München", Products: products[5:10]},
	}
	for _, w := range warehouses {
		if _, err := warehouseStore.Save(ctx, w); err != nil {
			return fmt.Errorf("failed to seed warehouse %s: %w", w.ID, err)
		}
	}

	log.Printf("Seeded %d products across %d warehouses.", len(products), len(warehouses))
	return nil
}
