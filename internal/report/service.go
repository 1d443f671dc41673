package report

import (
	"context"
	"fmt"
	"time"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

// Store is the reporting read surface over committed transactions.
type Store interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*domain.DailySales, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]domain.DailySales, error)
	ListTransactionsByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error)
}

// Service exposes the pure read/aggregation queries the POS dashboard uses.
// No core logic lives here; the rows are immutable once committed.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// TodaySales returns the aggregate for the current calendar day.
func (s *Service) TodaySales(ctx context.Context) (*domain.DailySales, error) {
	from, to := dayBounds(s.now())
	summary, err := s.store.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("today sales summary: %w", err)
	}
	summary.Date = from.Format("2006-01-02")
	return summary, nil
}

// SalesByDateRange returns per-day aggregates over [start, end] where both
// bounds are calendar dates.
func (s *Service) SalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	from, _ := dayBounds(start)
	_, to := dayBounds(end)
	rows, err := s.store.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by date range: %w", err)
	}
	return rows, nil
}

// TodayTransactions returns every transaction committed today, newest first.
func (s *Service) TodayTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	from, to := dayBounds(s.now())
	transactions, err := s.store.ListTransactionsByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("today transactions: %w", err)
	}
	return transactions, nil
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
