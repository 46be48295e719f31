package domain

import (
	"fmt"
	"strings"
)

// ValidationError rejects a malformed or out-of-range sale request.
// Not retryable; the request itself must change.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ProductsNotFoundError reports every referenced product id with no match,
// so a caller can correct the whole request in one round trip.
type ProductsNotFoundError struct {
	MissingIDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.MissingIDs, ", "))
}

// MissingStockError flags a product that exists without a stock record,
// which is an upstream data integrity problem.
type MissingStockError struct {
	ProductName string
}

func (e *MissingStockError) Error() string {
	return fmt.Sprintf("product %q has no stock record", e.ProductName)
}

// InsufficientStockError rejects a line item asking for more than is
// available at pre-check time.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d", e.ProductName, e.Available)
}

// StockConflictError means the authoritative in-transaction re-check found
// less stock than the pre-check did, because a concurrent sale committed in
// between. The attempt left no partial writes, so it is safe to retry.
type StockConflictError struct{}

func (e *StockConflictError) Error() string {
	return "stock levels changed, please refresh and try again"
}

// DuplicateReceiptError rejects a receipt number that already belongs to a
// persisted sale.
type DuplicateReceiptError struct {
	ReceiptNumber string
}

func (e *DuplicateReceiptError) Error() string {
	return fmt.Sprintf("receipt number %q already exists", e.ReceiptNumber)
}
