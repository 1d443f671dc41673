package http

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/checkout"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

type mockCheckoutService struct {
	processFn func(ctx context.Context, req *checkout.ProcessRequest) (*domain.Transaction, error)
	lastReq   *checkout.ProcessRequest
}

func (m *mockCheckoutService) Process(ctx context.Context, req *checkout.ProcessRequest) (*domain.Transaction, error) {
	m.lastReq = req
	return m.processFn(ctx, req)
}

type mockTransactionReader struct {
	getFn  func(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	listFn func(ctx context.Context) ([]*domain.Transaction, error)
}

func (m *mockTransactionReader) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return m.getFn(ctx, id)
}

func (m *mockTransactionReader) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return m.listFn(ctx)
}

type mockProductReader struct {
	getFn  func(ctx context.Context, id int64) (*domain.Product, error)
	listFn func(ctx context.Context) ([]*domain.Product, error)
}

func (m *mockProductReader) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockProductReader) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return m.listFn(ctx)
}

type mockReportService struct {
	todayFn     func(ctx context.Context) (*domain.DailySales, error)
	rangeFn     func(ctx context.Context, start, end time.Time) ([]domain.DailySales, error)
	todayTxnsFn func(ctx context.Context) ([]*domain.Transaction, error)
	lastStart   time.Time
	lastEnd     time.Time
}

func (m *mockReportService) TodaySales(ctx context.Context) (*domain.DailySales, error) {
	return m.todayFn(ctx)
}

func (m *mockReportService) SalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	m.lastStart, m.lastEnd = start, end
	return m.rangeFn(ctx, start, end)
}

func (m *mockReportService) TodayTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return m.todayTxnsFn(ctx)
}

type mockSessionStore struct {
	getFn func(ctx context.Context, token string) (*domain.Session, error)
}

func (m *mockSessionStore) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	return m.getFn(ctx, token)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
