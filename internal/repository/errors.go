package repository

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrDuplicateTransaction   = errors.New("transaction with this id already exists")
	ErrUnexpectedNumericValue = errors.New("stored amount has unexpected precision")
)

// StockConflictError is returned from CreateTransaction when a guarded
// decrement matched zero rows, meaning stock changed concurrently between
// validation and commit. The whole unit is rolled back before it surfaces.
type StockConflictError struct {
	ProductID int64
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock changed concurrently for product %d", e.ProductID)
}
