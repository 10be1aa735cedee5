package cleanse

import (
	"github.com/shopspring/decimal"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/rules"
)

// SalesItems decodes the 8-digit integer dates and reconciles the
// price/amount pair in one deterministic pass:
//
//  1. price: if null or non-positive, derive amount / quantity (null on a
//     zero or missing quantity); otherwise take the absolute value of the
//     given price.
//  2. amount: using the corrected price, recompute quantity * price when
//     the original amount is null, non-positive, or inconsistent with it;
//     otherwise keep the original.
//
// Price is always corrected from amount, never the other way around.
func SalesItems(raw []entity.RawSalesItem) []entity.SalesItem {
	out := make([]entity.SalesItem, 0, len(raw))
	for _, r := range raw {
		qty := decimal.Zero
		if r.Quantity.Valid {
			qty = decimal.NewFromInt(int64(r.Quantity.Int32))
		}

		price := r.Price
		if !price.Valid || !price.Decimal.IsPositive() {
			if r.Amount.Valid {
				price = rules.SafeDivide(r.Amount.Decimal, qty)
			} else {
				price = decimal.NullDecimal{}
			}
		} else {
			price.Decimal = price.Decimal.Abs()
		}

		amount := r.Amount
		if !amount.Valid || !amount.Decimal.IsPositive() || inconsistent(amount, qty, price) {
			if price.Valid {
				amount = decimal.NullDecimal{Decimal: qty.Mul(price.Decimal), Valid: true}
			} else {
				amount = decimal.NullDecimal{}
			}
		}

		out = append(out, entity.SalesItem{
			OrderNumber: text(r.OrderNumber),
			ProductKey:  text(r.ProductKey),
			CustomerID:  r.CustomerID.Int32,
			OrderDate:   rules.ParseYMD(r.OrderDate),
			ShipDate:    rules.ParseYMD(r.ShipDate),
			DueDate:     rules.ParseYMD(r.DueDate),
			Amount:      amount,
			Quantity:    r.Quantity,
			Price:       price,
		})
	}
	return out
}

// inconsistent reports whether amount disagrees with quantity * price.
// A null price makes the comparison impossible; the amount is then left
// to the null/non-positive branches.
func inconsistent(amount decimal.NullDecimal, qty decimal.Decimal, price decimal.NullDecimal) bool {
	if !price.Valid {
		return false
	}
	return !amount.Decimal.Equal(qty.Mul(price.Decimal))
}
