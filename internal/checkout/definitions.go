package checkout

import (
	"context"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

// Catalog is the read side of the product store. GetProduct returns
// repository.ErrProductNotFound for unknown ids.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// TransactionStore commits one sale atomically: the record insert and every
// guarded stock decrement either all apply or none do. A guarded decrement
// losing a concurrent race surfaces as *repository.StockConflictError.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *domain.Transaction, decrements []domain.StockDecrement) error
}
