package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

// ValidationResult collects the outcome of one validation pass. Items carry
// name and price snapshots taken at validation time; Decrements lists only
// the stock-tracked items so unlimited products never get a guarded update.
type ValidationResult struct {
	Items      []domain.TransactionItem
	Decrements []domain.StockDecrement
	Errors     []string
	Subtotal   decimal.Decimal
}

// Valid requires no errors and at least one validated item, so an all-skipped
// cart can never read as valid.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0 && len(r.Items) > 0
}

// Validator checks a cart against current catalog state without mutating
// anything. Validation exists to fail fast with a friendly error; the
// authoritative stock check is the guarded decrement inside the commit.
type Validator struct {
	catalog Catalog
}

func NewValidator(catalog Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validate resolves each cart line against the catalog. Per-line problems
// (unknown product, bad quantity, not enough stock) are recorded as line
// errors and the line is skipped; only infrastructure failures return an
// error.
func (v *Validator) Validate(ctx context.Context, lines []domain.CartLine) (*ValidationResult, error) {
	result := &ValidationResult{Subtotal: decimal.Zero}

	for _, line := range lines {
		product, err := v.catalog.GetProduct(ctx, line.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("product with ID %d not found", line.ProductID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch product %d: %w", line.ProductID, err)
		}

		if line.Quantity <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid quantity for %s: %d", product.Name, line.Quantity))
			continue
		}

		if !product.HasStock(line.Quantity) {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"insufficient stock for %s: requested %d, available %d",
				product.Name, line.Quantity, *product.Stock))
			continue
		}

		total := product.Price.Mul(decimal.NewFromInt(line.Quantity))
		result.Items = append(result.Items, domain.TransactionItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Total:     total,
		})
		if product.Stock != nil {
			result.Decrements = append(result.Decrements, domain.StockDecrement{
				ProductID: product.ID,
				Quantity:  line.Quantity,
			})
		}
		result.Subtotal = result.Subtotal.Add(total)
	}

	return result, nil
}
