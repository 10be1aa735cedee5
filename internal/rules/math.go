package rules

import "github.com/shopspring/decimal"

// SafeDivide returns num/den, or a null decimal when the divisor is zero.
// Division never errors; a zero divisor is a data defect, not a failure.
func SafeDivide(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: num.Div(den), Valid: true}
}
