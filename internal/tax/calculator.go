package tax

import "github.com/shopspring/decimal"

// Calculator computes tax and change on exact decimals. The rate is injected
// once at construction so a mid-run config change can never affect an
// in-flight transaction.
type Calculator struct {
	rate decimal.Decimal
}

func NewCalculator(rate decimal.Decimal) *Calculator {
	return &Calculator{rate: rate}
}

// Rate returns the configured tax rate.
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Tax returns subtotal * rate rounded half-up to two decimal places.
func (c *Calculator) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.rate).Round(2)
}

// Change returns amountReceived - grandTotal at two decimal places. The
// result may be negative; the commit path rejects insufficient payment before
// ever persisting it.
func (c *Calculator) Change(grandTotal, amountReceived decimal.Decimal) decimal.Decimal {
	return amountReceived.Sub(grandTotal).Round(2)
}
