package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	werrors "github.com/abgdnv/gowarehouse/internal/errors"
	"github.com/abgdnv/gowarehouse/internal/service"
	"github.com/stretchr/testify/assert"
)

// mockWarehouseService is a mock implementation of the WarehouseService interface
type mockWarehouseService struct {
	warehouse  *service.WarehouseDto
	warehouses []service.WarehouseDto
	lookup     *service.ProductLookupDto
	error      error
}

func (m *mockWarehouseService) AddWarehouse(_ context.Context, _ service.WarehouseDto) (*service.WarehouseDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.warehouse, nil
}

func (m *mockWarehouseService) FindAll(_ context.Context) ([]service.WarehouseDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.warehouses, nil
}

func (m *mockWarehouseService) FindByID(_ context.Context, _ string) (*service.WarehouseDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.warehouse, nil
}

func (m *mockWarehouseService) DeleteByID(_ context.Context, _ string) error {
	return m.error
}

func (m *mockWarehouseService) AddProduct(_ context.Context, _ string, _ service.ProductDto) (*service.WarehouseDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.warehouse, nil
}

func (m *mockWarehouseService) FindProduct(_ context.Context, _ string) (*service.ProductLookupDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.lookup, nil
}

func (m *mockWarehouseService) DeleteProduct(_ context.Context, _, _ string) error {
	return m.error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestHandler(svc service.WarehouseService) *Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(svc, logger)
}

func Test_WarehouseAPI_FindByID(t *testing.T) {
	warehouse := service.WarehouseDto{ID: "w1", Name: "Lager Nord", Location: "Berlin", Products: []service.ProductDto{}}
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		warehouseID  string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - warehouse found",
			mockService:  mockWarehouseService{warehouse: &warehouse},
			warehouseID:  "w1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, warehouse),
		},
		{
			name:         "Error - warehouse not found",
			mockService:  mockWarehouseService{error: werrors.ErrWarehouseNotFound},
			warehouseID:  "missing",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Warehouse with ID missing not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("service unavailable")},
			warehouseID:  "w1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve warehouse with ID w1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/warehouses/"+tc.warehouseID, nil)
			req.SetPathValue("id", tc.warehouseID)
			rr := httptest.NewRecorder()

			// when
			api.FindByID(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_WarehouseAPI_FindAll(t *testing.T) {
	warehouses := []service.WarehouseDto{
		{ID: "w1", Name: "Lager Nord", Location: "Berlin", Products: []service.ProductDto{}},
		{ID: "w2", Name: "Lager Süd", Location: "München", Products: []service.ProductDto{}},
	}
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - warehouses found",
			mockService:  mockWarehouseService{warehouses: warehouses},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, warehouses),
		},
		{
			name:         "Success - empty list",
			mockService:  mockWarehouseService{warehouses: []service.WarehouseDto{}},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("service unavailable")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch warehouses"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/warehouse", nil)
			rr := httptest.NewRecorder()

			// when
			api.FindAll(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_WarehouseAPI_AddWarehouse(t *testing.T) {
	warehouse := service.WarehouseDto{ID: "w1", Name: "Lager Nord", Location: "Berlin", Products: []service.ProductDto{}}
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - warehouse saved",
			mockService:  mockWarehouseService{warehouse: &warehouse},
			body:         toJSON(t, warehouse),
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, warehouse),
		},
		{
			name:         "Error - malformed body",
			mockService:  mockWarehouseService{},
			body:         "{not json",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("store down")},
			body:         toJSON(t, warehouse),
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to save warehouse"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			api.AddWarehouse(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_WarehouseAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		expectedCode int
	}{
		{
			name:         "Success - delete responds 200 with empty body",
			mockService:  mockWarehouseService{},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("store down")},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/api/warehouse/w1", nil)
			req.SetPathValue("id", "w1")
			rr := httptest.NewRecorder()

			// when
			api.DeleteByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedCode == http.StatusOK {
				assert.Empty(t, rr.Body.String(), "successful delete should have an empty body")
			}
		})
	}
}

func Test_WarehouseAPI_AddProduct(t *testing.T) {
	product := service.ProductDto{ProductID: "p2", Name: "Nail", Category: "Building", Quantity: 10}
	updated := service.WarehouseDto{ID: "w1", Name: "Lager Nord", Location: "Berlin", Products: []service.ProductDto{product}}
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		warehouseID  string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product appended",
			mockService:  mockWarehouseService{warehouse: &updated},
			warehouseID:  "w1",
			body:         toJSON(t, product),
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, updated),
		},
		{
			name:         "Error - warehouse not found",
			mockService:  mockWarehouseService{error: werrors.ErrWarehouseNotFound},
			warehouseID:  "missing",
			body:         toJSON(t, product),
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Warehouse with ID missing not found"}),
		},
		{
			name:         "Error - malformed body",
			mockService:  mockWarehouseService{},
			warehouseID:  "w1",
			body:         "{not json",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("store down")},
			warehouseID:  "w1",
			body:         toJSON(t, product),
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to add product to warehouse with ID w1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/product/"+tc.warehouseID, strings.NewReader(tc.body))
			req.SetPathValue("warehouseId", tc.warehouseID)
			rr := httptest.NewRecorder()

			// when
			api.AddProduct(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_WarehouseAPI_FindProduct(t *testing.T) {
	lookup := service.ProductLookupDto{
		Warehouse: service.WarehouseDto{ID: "w2", Name: "Lager Süd", Location: "München", Products: []service.ProductDto{
			{ProductID: "p1", Name: "Schraube", Category: "Baumaterial", Quantity: 100},
		}},
		Product: service.ProductDto{ProductID: "p1", Name: "Schraube", Category: "Baumaterial", Quantity: 100},
	}
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockWarehouseService{lookup: &lookup},
			productID:    "p1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, lookup),
		},
		{
			name:         "Error - product not found",
			mockService:  mockWarehouseService{error: werrors.ErrProductNotFound},
			productID:    "px",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID px not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("store down")},
			productID:    "p1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product with ID p1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/product/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.FindProduct(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_WarehouseAPI_DeleteProduct(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockWarehouseService
		expectedCode int
	}{
		{
			name:         "Success - delete responds 204 with empty body",
			mockService:  mockWarehouseService{},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Error - service error",
			mockService:  mockWarehouseService{error: errors.New("store down")},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/api/product/w1/p1", nil)
			req.SetPathValue("warehouseId", "w1")
			req.SetPathValue("productId", "p1")
			rr := httptest.NewRecorder()

			// when
			api.DeleteProduct(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedCode == http.StatusNoContent {
				assert.Empty(t, rr.Body.String(), "successful delete should have an empty body")
			}
		})
	}
}
