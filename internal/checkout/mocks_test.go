package checkout

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

// MockStore implements Catalog and TransactionStore over an in-memory
// catalog. CreateTransaction applies the same guarded two-pass check the
// postgres commit does, under one lock, so concurrent checkouts race the
// same way they do against the real store.
type MockStore struct {
	mu        sync.Mutex
	products  map[int64]*domain.Product
	created   []*domain.Transaction
	getErr    error
	createErr error
}

func NewMockStore(products ...*domain.Product) *MockStore {
	m := &MockStore{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		clone := *p
		if p.Stock != nil {
			stock := *p.Stock
			clone.Stock = &stock
		}
		m.products[p.ID] = &clone
	}
	return m
}

func (m *MockStore) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	if p.Stock != nil {
		stock := *p.Stock
		clone.Stock = &stock
	}
	return &clone, nil
}

func (m *MockStore) CreateTransaction(_ context.Context, t *domain.Transaction, decrements []domain.StockDecrement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}

	// first pass: every guarded decrement must still be coverable
	for _, d := range decrements {
		p, ok := m.products[d.ProductID]
		if !ok || (p.Stock != nil && *p.Stock < d.Quantity) {
			return &repository.StockConflictError{ProductID: d.ProductID}
		}
	}

	// second pass: apply
	for _, d := range decrements {
		p := m.products[d.ProductID]
		if p.Stock != nil {
			*p.Stock -= d.Quantity
		}
	}

	m.created = append(m.created, t)
	return nil
}

func (m *MockStore) StockOf(id int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.products[id].Stock
}

func (m *MockStore) Created() []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(store *MockStore) *Service {
	return NewService(store, store, testCalculator(), testLogger())
}
