package dimension

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jlowell/salesdw/internal/entity"
)

// Sales resolves each cleansed sales line against the already-assembled
// dimensions. The fact keeps its grain — one row per line item — and a
// line referencing a retired product or unknown customer carries a null
// surrogate key instead of being dropped.
func Sales(items []entity.SalesItem, customers []entity.CustomerDim, products []entity.ProductDim) []entity.SalesFact {
	productSK := make(map[string]int64, len(products))
	for _, p := range products {
		productSK[p.Number] = p.ProductKey
	}
	customerSK := make(map[int32]int64, len(customers))
	for _, c := range customers {
		customerSK[c.ID] = c.CustomerKey
	}

	out := make([]entity.SalesFact, 0, len(items))
	for _, it := range items {
		f := entity.SalesFact{
			OrderNumber: it.OrderNumber,
			OrderDate:   it.OrderDate,
			ShipDate:    it.ShipDate,
			DueDate:     it.DueDate,
			Amount:      it.Amount,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
		if sk, ok := productSK[it.ProductKey]; ok {
			f.ProductKey = pgtype.Int8{Int64: sk, Valid: true}
		}
		if sk, ok := customerSK[it.CustomerID]; ok {
			f.CustomerKey = pgtype.Int8{Int64: sk, Valid: true}
		}
		out = append(out, f)
	}
	return out
}
