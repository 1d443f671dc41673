package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

// ReportService is the aggregation read path over committed transactions.
type ReportService interface {
	TodaySales(ctx context.Context) (*domain.DailySales, error)
	SalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.DailySales, error)
	TodayTransactions(ctx context.Context) ([]*domain.Transaction, error)
}

type ReportsHandler struct {
	service ReportService
	timeout time.Duration
	log     *logrus.Logger
}

func NewReportsHandler(service ReportService, timeout time.Duration, log *logrus.Logger) *ReportsHandler {
	return &ReportsHandler{
		service: service,
		timeout: timeout,
		log:     log,
	}
}

// GET /api/v1/reports/today
func (h *ReportsHandler) TodaySales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.service.TodaySales(ctx)
	if err != nil {
		h.log.WithError(err).Error("failed to build today report")
		respondError(w, http.StatusInternalServerError, "failed to fetch report")
		return
	}

	respondData(w, http.StatusOK, summary)
}

// GET /api/v1/reports/sales?start=2026-01-01&end=2026-01-31
func (h *ReportsHandler) SalesByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "start must be a date in YYYY-MM-DD format")
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "end must be a date in YYYY-MM-DD format")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	rows, err := h.service.SalesByDateRange(ctx, start, end)
	if err != nil {
		h.log.WithError(err).Error("failed to build sales report")
		respondError(w, http.StatusInternalServerError, "failed to fetch report")
		return
	}

	if rows == nil {
		rows = []domain.DailySales{}
	}
	respondData(w, http.StatusOK, rows)
}

// GET /api/v1/reports/today/transactions
func (h *ReportsHandler) TodayTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	transactions, err := h.service.TodayTransactions(ctx)
	if err != nil {
		h.log.WithError(err).Error("failed to fetch today transactions")
		respondError(w, http.StatusInternalServerError, "failed to fetch transactions")
		return
	}

	dtos := make([]TransactionResponseDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, convertTransaction(t))
	}
	respondData(w, http.StatusOK, dtos)
}
