package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MoneyPlaces is the precision amounts are rounded to (paise).
const MoneyPlaces = 2

// Split is the supplier freight divided into the upfront advance and the
// balance released after delivery.
type Split struct {
	Advance decimal.Decimal `json:"advance"`
	Balance decimal.Decimal `json:"balance"`
}

// CheckPercentage rejects an advance percentage outside [0, 100].
func CheckPercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return NewValidationError("advance_percentage", ErrInvalidPercentage.Error(), ErrInvalidPercentage)
	}
	return nil
}

// ComputeAdvanceBalance splits supplierFreight. The advance is rounded to
// paise with banker's rounding and the balance takes the remainder, so the
// two always add up to supplierFreight exactly.
func ComputeAdvanceBalance(supplierFreight, advancePercentage decimal.Decimal) (Split, error) {
	v := &ValidationError{}
	if supplierFreight.IsNegative() {
		v.Add("supplier_freight", "must not be negative", ErrNegativeAmount)
	}
	v.Merge("advance_percentage", CheckPercentage(advancePercentage))
	if err := v.OrNil(); err != nil {
		return Split{}, err
	}

	advance := supplierFreight.Mul(advancePercentage).Div(hundred).RoundBank(MoneyPlaces)
	// supplierFreight with sub-paise digits can round the advance above it
	if advance.GreaterThan(supplierFreight) {
		advance = supplierFreight
	}
	return Split{
		Advance: advance,
		Balance: supplierFreight.Sub(advance),
	}, nil
}

// Margin is client freight minus supplier freight. It is not clamped.
func Margin(clientFreight, supplierFreight decimal.Decimal) decimal.Decimal {
	return clientFreight.Sub(supplierFreight)
}
