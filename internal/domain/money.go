package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(18,2) and quantities as INTEGER
const (
	AmountScale = 2
	MaxQuantity = math.MaxInt32
)

// MaxAmount is the largest price or line total that can be stored
var MaxAmount = decimal.RequireFromString("9999999999999999.99")

func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return Invalid(MsgPriceNegative)
	case !price.Equal(price.Truncate(AmountScale)):
		return Invalid(MsgPriceScale)
	case price.GreaterThan(MaxAmount):
		return Invalid(MsgPriceTooLarge)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return Invalid(MsgQuantityInvalid)
	}
	if quantity > MaxQuantity {
		return Invalid(MsgQuantityTooLarge)
	}
	return nil
}

func lineTotal(quantity int, price decimal.Decimal) (decimal.Decimal, error) {
	total := price.Mul(decimal.NewFromInt(int64(quantity)))
	if total.GreaterThan(MaxAmount) {
		return decimal.Zero, Invalid(MsgLineTotalTooLarge)
	}
	return total, nil
}
