// Package rest provides HTTP handlers for warehouse-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	werrors "github.com/abgdnv/gowarehouse/internal/errors"
	"github.com/abgdnv/gowarehouse/internal/service"
	"github.com/abgdnv/gowarehouse/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service service.WarehouseService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the warehouse API with the provided service.
func NewHandler(service service.WarehouseService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the warehouse service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/", h.AddWarehouse)
		r.Get("/warehouse", h.FindAll)
		r.Get("/warehouses/{id}", h.FindByID)
		r.Delete("/warehouse/{id}", h.DeleteByID)

		r.Post("/product/{warehouseId}", h.AddProduct)
		r.Get("/product/{id}", h.FindProduct)
		r.Delete("/product/{warehouseId}/{productId}", h.DeleteProduct)
	})

	r.Get("/healthz", h.HealthCheck)
}

// AddWarehouse handles the creation (or full replacement) of a warehouse.
func (h *Handler) AddWarehouse(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var warehouseDto service.WarehouseDto
	if err := json.NewDecoder(r.Body).Decode(&warehouseDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to add warehouse", "ID", warehouseDto.ID)

	saved, err := h.service.AddWarehouse(r.Context(), warehouseDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error saving warehouse", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to save warehouse")
		return
	}
	mLogger.InfoContext(r.Context(), "Warehouse saved successfully", "ID", saved.ID, "Name", saved.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, saved)
}

// FindAll retrieves a list of all warehouses.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all warehouses")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving warehouse list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch warehouses")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved warehouse list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a warehouse by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParsePathValue(w, r, mLogger, "id")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find warehouse by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, werrors.ErrWarehouseNotFound) {
			mLogger.WarnContext(r.Context(), "Warehouse not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Warehouse with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving warehouse", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve warehouse with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved warehouse", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// DeleteByID deletes a warehouse by its ID. The operation is idempotent:
// deleting an absent warehouse responds 200 as well.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParsePathValue(w, r, mLogger, "id")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete warehouse", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting warehouse", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete warehouse with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Warehouse deleted", "ID", id)
	w.WriteHeader(http.StatusOK)
}

// AddProduct appends a product to the named warehouse.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	warehouseID, ok := web.ParsePathValue(w, r, mLogger, "warehouseId")
	if !ok {
		return
	}
	var productDto service.ProductDto
	if err := json.NewDecoder(r.Body).Decode(&productDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to add product", "warehouseID", warehouseID, "productID", productDto.ProductID)

	updated, err := h.service.AddProduct(r.Context(), warehouseID, productDto)
	if err != nil {
		if errors.Is(err, werrors.ErrWarehouseNotFound) {
			mLogger.WarnContext(r.Context(), "Warehouse not found for product add", "ID", warehouseID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Warehouse with ID %s not found", warehouseID))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error adding product to warehouse", "ID", warehouseID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to add product to warehouse with ID %s", warehouseID))
		return
	}
	mLogger.InfoContext(r.Context(), "Product added successfully", "warehouseID", updated.ID, "productID", productDto.ProductID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// FindProduct searches all warehouses for a product by its ID and responds
// with the owning warehouse and the product.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParsePathValue(w, r, mLogger, "id")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, werrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", id, "warehouseID", found.Warehouse.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// DeleteProduct removes a product from the named warehouse. The operation is
// idempotent: a missing warehouse or product responds 204 as well.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	warehouseID, ok := web.ParsePathValue(w, r, mLogger, "warehouseId")
	if !ok {
		return
	}
	productID, ok := web.ParsePathValue(w, r, mLogger, "productId")
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "warehouseID", warehouseID, "productID", productID)
	if err := h.service.DeleteProduct(r.Context(), warehouseID, productID); err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting product", "warehouseID", warehouseID, "productID", productID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %s", productID))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted", "warehouseID", warehouseID, "productID", productID)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
