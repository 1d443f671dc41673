package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/tax"
)

// ProcessRequest is the caller's input: the raw cart plus cash tendered.
type ProcessRequest struct {
	Items          []domain.CartLine
	AmountReceived decimal.Decimal
}

// Service is the only component that creates transactions and mutates stock.
type Service struct {
	validator *Validator
	store     TransactionStore
	calc      *tax.Calculator
	log       *logrus.Logger
}

func NewService(catalog Catalog, store TransactionStore, calc *tax.Calculator, log *logrus.Logger) *Service {
	return &Service{
		validator: NewValidator(catalog),
		store:     store,
		calc:      calc,
		log:       log,
	}
}

// Process runs the full checkout sequence: validate the cart, compute
// subtotal, tax, grand total and change, then commit the record and the
// guarded stock decrements as one unit. Failures map to exactly one of
// ValidationError, InsufficientPaymentError, StockConflictError or
// PersistenceError; no raw infrastructure error escapes.
func (s *Service) Process(ctx context.Context, req *ProcessRequest) (*domain.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	validation, err := s.validator.Validate(ctx, req.Items)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if !validation.Valid() {
		lines := validation.Errors
		if len(lines) == 0 {
			// every line was skipped without producing an error string
			lines = []string{"no valid items in cart"}
		}
		return nil, &ValidationError{Lines: lines}
	}

	subtotal := validation.Subtotal
	taxAmount := s.calc.Tax(subtotal)
	grandTotal := subtotal.Add(taxAmount)

	if req.AmountReceived.LessThan(grandTotal) {
		return nil, &InsufficientPaymentError{
			Received: req.AmountReceived,
			Required: grandTotal,
		}
	}

	transaction := &domain.Transaction{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
		AmountReceived: req.AmountReceived,
		ChangeAmount:   s.calc.Change(grandTotal, req.AmountReceived),
		Items:          validation.Items,
	}

	if err := s.store.CreateTransaction(ctx, transaction, validation.Decrements); err != nil {
		var conflict *repository.StockConflictError
		if errors.As(err, &conflict) {
			s.log.WithField("product_id", conflict.ProductID).
				Warn("checkout lost stock race, rolled back")
			return nil, &StockConflictError{ProductID: conflict.ProductID}
		}
		return nil, &PersistenceError{Err: fmt.Errorf("commit sale: %w", err)}
	}

	s.log.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"grand_total":    transaction.GrandTotal.StringFixed(2),
		"items":          len(transaction.Items),
	}).Info("transaction committed")

	return transaction, nil
}
