package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

// ValidationError reports every failed cart line at once so the caller can
// correct the cart and resubmit.
type ValidationError struct {
	Lines []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Lines, "; ")
}

// InsufficientPaymentError is returned when the cash tendered does not cover
// the grand total. The check runs server-side after tax; client-computed
// totals are advisory only.
type InsufficientPaymentError struct {
	Received decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: received %s, required %s",
		e.Received.StringFixed(2), e.Required.StringFixed(2))
}

// StockConflictError means a guarded decrement lost a concurrent race after
// validation had passed. The commit was rolled back; resubmitting the cart is
// safe and is the caller's call to make.
type StockConflictError struct {
	ProductID int64
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock for product %d was taken by a concurrent sale, please retry", e.ProductID)
}

// PersistenceError wraps an infrastructure failure during the atomic commit.
// Nothing was persisted, so retrying the whole operation is safe.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist transaction: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
