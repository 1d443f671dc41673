package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/checkout"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

// CheckoutService processes a cart into a committed transaction.
type CheckoutService interface {
	Process(ctx context.Context, req *checkout.ProcessRequest) (*domain.Transaction, error)
}

// TransactionReader is the read side used by GET endpoints.
type TransactionReader interface {
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]*domain.Transaction, error)
}

type TransactionsHandler struct {
	service CheckoutService
	reader  TransactionReader
	timeout time.Duration
	log     *logrus.Logger
}

func NewTransactionsHandler(service CheckoutService, reader TransactionReader, timeout time.Duration, log *logrus.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		service: service,
		reader:  reader,
		timeout: timeout,
		log:     log,
	}
}

type CartLineDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type ProcessTransactionDTO struct {
	Items          []CartLineDTO    `json:"items"`
	AmountReceived *decimal.Decimal `json:"amount_received"`
}

type TransactionItemDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

type TransactionResponseDTO struct {
	ID             string               `json:"id"`
	CreatedAt      string               `json:"created_at"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	GrandTotal     decimal.Decimal      `json:"grand_total"`
	AmountReceived decimal.Decimal      `json:"amount_received"`
	ChangeAmount   decimal.Decimal      `json:"change_amount"`
	Items          []TransactionItemDTO `json:"items"`
}

// POST /api/v1/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto ProcessTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(dto.Items) == 0 {
		respondError(w, http.StatusBadRequest, "items array is required and must not be empty")
		return
	}
	if dto.AmountReceived == nil {
		respondError(w, http.StatusBadRequest, "amount_received is required and must be a number")
		return
	}

	lines := make([]domain.CartLine, 0, len(dto.Items))
	for _, item := range dto.Items {
		lines = append(lines, domain.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	transaction, err := h.service.Process(ctx, &checkout.ProcessRequest{
		Items:          lines,
		AmountReceived: *dto.AmountReceived,
	})
	if err != nil {
		h.handleProcessError(w, r, err)
		return
	}

	respondData(w, http.StatusCreated, convertTransaction(transaction))
}

// GET /api/v1/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	transactions, err := h.reader.ListTransactions(ctx)
	if err != nil {
		h.log.WithError(err).Error("failed to list transactions")
		respondError(w, http.StatusInternalServerError, "failed to fetch transactions")
		return
	}

	dtos := make([]TransactionResponseDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, convertTransaction(t))
	}
	respondData(w, http.StatusOK, dtos)
}

// GET /api/v1/transactions/{transaction_id}
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "transaction_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	transaction, err := h.reader.GetTransactionByID(ctx, id)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("failed to fetch transaction")
		respondError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}

	respondData(w, http.StatusOK, convertTransaction(transaction))
}

func (h *TransactionsHandler) handleProcessError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *checkout.ValidationError
	var payment *checkout.InsufficientPaymentError
	var conflict *checkout.StockConflictError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.As(err, &validation),
		errors.As(err, &payment),
		errors.As(err, &conflict):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).
			WithField("request_id", getRequestID(r.Context())).
			WithField("user_id", getUserIDFromContext(r.Context())).
			Error("failed to process transaction")
		respondError(w, http.StatusInternalServerError, "failed to process transaction")
	}
}

func convertTransaction(t *domain.Transaction) TransactionResponseDTO {
	items := make([]TransactionItemDTO, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, TransactionItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}

	return TransactionResponseDTO{
		ID:             t.ID.String(),
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		Subtotal:       t.Subtotal,
		TaxAmount:      t.TaxAmount,
		GrandTotal:     t.GrandTotal,
		AmountReceived: t.AmountReceived,
		ChangeAmount:   t.ChangeAmount,
		Items:          items,
	}
}
