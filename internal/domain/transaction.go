package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a caller-supplied request for one product.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// TransactionItem is a validated cart line with the product name and unit
// price snapshotted at validation time. The snapshot is what gets persisted;
// later catalog edits must not change historical receipts.
type TransactionItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// Transaction is the durable record of one completed sale. It is written
// exactly once, in the same database transaction as the stock decrements,
// and never updated afterwards.
type Transaction struct {
	ID             uuid.UUID         `json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	GrandTotal     decimal.Decimal   `json:"grand_total"`
	AmountReceived decimal.Decimal   `json:"amount_received"`
	ChangeAmount   decimal.Decimal   `json:"change_amount"`
	Items          []TransactionItem `json:"items"`
}

// StockDecrement is one guarded stock mutation applied inside the commit.
type StockDecrement struct {
	ProductID int64
	Quantity  int64
}
