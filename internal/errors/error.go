// Package errors provides custom error types for warehouse-related operations.
package errors

import "errors"

var ErrWarehouseNotFound = errors.New("warehouse not found")
var ErrProductNotFound = errors.New("product not found")
