package domain

import "github.com/shopspring/decimal"

// DailySales is an aggregate over committed transactions for one calendar day
// (or one arbitrary range, for the summary queries).
type DailySales struct {
	Date              string          `json:"date"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalSubtotal     decimal.Decimal `json:"total_subtotal"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	TotalGrandTotal   decimal.Decimal `json:"total_grand_total"`
}
