// Package quality runs the advisory invariant battery over the cleansed
// and dimensional snapshots. Checks are read-only and never fail a run:
// each returns the ordered set of violating rows, and callers decide what
// a non-empty set means.
package quality

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jlowell/salesdw/internal/entity"
)

// Violation identifies one offending row.
type Violation struct {
	Entity string `json:"entity"`
	Key    string `json:"key"`
	Detail string `json:"detail"`
}

// Date-range bounds for sales dates. Applied only here, not during
// cleansing: cleansed output may carry dates outside this window, and the
// asymmetry is deliberate.
var (
	minSalesDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxSalesDate = time.Date(2050, 1, 1, 0, 0, 0, 0, time.UTC)
)

func checkCustomerIDUniqueNonNull(customers []entity.Customer) []Violation {
	var out []Violation
	seen := make(map[int32]bool, len(customers))
	for _, c := range customers {
		key := fmt.Sprintf("%d", c.ID)
		switch {
		case c.ID == 0:
			out = append(out, Violation{Entity: "customers", Key: key, Detail: "missing business id"})
		case seen[c.ID]:
			out = append(out, Violation{Entity: "customers", Key: key, Detail: "duplicate business id"})
		default:
			seen[c.ID] = true
		}
	}
	return out
}

func checkCustomerWhitespace(customers []entity.Customer) []Violation {
	var out []Violation
	for _, c := range customers {
		fields := []struct {
			field string
			value string
		}{
			{"key", c.Key},
			{"first_name", c.FirstName},
			{"last_name", c.LastName},
		}
		for _, f := range fields {
			if f.value != strings.TrimSpace(f.value) {
				out = append(out, Violation{
					Entity: "customers",
					Key:    fmt.Sprintf("%d", c.ID),
					Detail: f.field + " has leading or trailing whitespace",
				})
			}
		}
	}
	return out
}

func checkProductKeys(products []entity.Product) []Violation {
	var out []Violation
	seenCurrent := make(map[string]bool, len(products))
	for _, p := range products {
		if p.Key == "" {
			out = append(out, Violation{Entity: "products", Key: fmt.Sprintf("%d", p.ID), Detail: "empty product key"})
			continue
		}
		if !p.EndDate.Valid {
			if seenCurrent[p.Key] {
				out = append(out, Violation{Entity: "products", Key: p.Key, Detail: "multiple current versions for product key"})
			}
			seenCurrent[p.Key] = true
		}
	}
	return out
}

func checkProductCost(products []entity.Product) []Violation {
	var out []Violation
	for _, p := range products {
		if p.Cost.IsNegative() {
			out = append(out, Violation{Entity: "products", Key: p.Key, Detail: "negative cost " + p.Cost.String()})
		}
	}
	return out
}

func checkProductDatesOrdered(products []entity.Product) []Violation {
	var out []Violation
	for _, p := range products {
		if p.StartDate.Valid && p.EndDate.Valid && p.EndDate.Time.Before(p.StartDate.Time) {
			out = append(out, Violation{Entity: "products", Key: p.Key, Detail: "end date before start date"})
		}
	}
	return out
}

func checkSalesPositive(items []entity.SalesItem) []Violation {
	var out []Violation
	for _, it := range items {
		key := it.OrderNumber + "/" + it.ProductKey
		if !it.Amount.Valid || !it.Amount.Decimal.IsPositive() {
			out = append(out, Violation{Entity: "sales_items", Key: key, Detail: "sales amount missing or non-positive"})
		}
		if !it.Quantity.Valid || it.Quantity.Int32 <= 0 {
			out = append(out, Violation{Entity: "sales_items", Key: key, Detail: "quantity missing or non-positive"})
		}
		if !it.Price.Valid || !it.Price.Decimal.IsPositive() {
			out = append(out, Violation{Entity: "sales_items", Key: key, Detail: "price missing or non-positive"})
		}
	}
	return out
}

func checkSalesConsistency(items []entity.SalesItem) []Violation {
	var out []Violation
	for _, it := range items {
		if !it.Amount.Valid || !it.Price.Valid || !it.Quantity.Valid {
			continue
		}
		expected := decimal.NewFromInt(int64(it.Quantity.Int32)).Mul(it.Price.Decimal)
		if !it.Amount.Decimal.Equal(expected) {
			out = append(out, Violation{
				Entity: "sales_items",
				Key:    it.OrderNumber + "/" + it.ProductKey,
				Detail: fmt.Sprintf("amount %s != quantity * price (%s)", it.Amount.Decimal, expected),
			})
		}
	}
	return out
}

func checkSalesDateRange(items []entity.SalesItem) []Violation {
	var out []Violation
	for _, it := range items {
		key := it.OrderNumber + "/" + it.ProductKey
		dates := []struct {
			name string
			date pgtype.Date
		}{
			{"order_date", it.OrderDate},
			{"ship_date", it.ShipDate},
			{"due_date", it.DueDate},
		}
		for _, d := range dates {
			if d.date.Valid && (d.date.Time.Before(minSalesDate) || d.date.Time.After(maxSalesDate)) {
				out = append(out, Violation{Entity: "sales_items", Key: key, Detail: d.name + " outside 1900-01-01..2050-01-01"})
			}
		}
	}
	return out
}

func checkSalesDateOrder(items []entity.SalesItem) []Violation {
	var out []Violation
	for _, it := range items {
		if !it.OrderDate.Valid {
			continue
		}
		key := it.OrderNumber + "/" + it.ProductKey
		if it.ShipDate.Valid && it.OrderDate.Time.After(it.ShipDate.Time) {
			out = append(out, Violation{Entity: "sales_items", Key: key, Detail: "order date after ship date"})
		}
		if it.DueDate.Valid && it.OrderDate.Time.After(it.DueDate.Time) {
			out = append(out, Violation{Entity: "sales_items", Key: key, Detail: "order date after due date"})
		}
	}
	return out
}

func checkCustomerDimSurrogates(dims []entity.CustomerDim) []Violation {
	var out []Violation
	seen := make(map[int64]bool, len(dims))
	for _, d := range dims {
		if seen[d.CustomerKey] {
			out = append(out, Violation{Entity: "dim_customers", Key: fmt.Sprintf("%d", d.CustomerKey), Detail: "duplicate surrogate key"})
		}
		seen[d.CustomerKey] = true
	}
	return out
}

func checkProductDimSurrogates(dims []entity.ProductDim) []Violation {
	var out []Violation
	seen := make(map[int64]bool, len(dims))
	for _, d := range dims {
		if seen[d.ProductKey] {
			out = append(out, Violation{Entity: "dim_products", Key: fmt.Sprintf("%d", d.ProductKey), Detail: "duplicate surrogate key"})
		}
		seen[d.ProductKey] = true
	}
	return out
}

func checkFactOrphans(facts []entity.SalesFact) []Violation {
	var out []Violation
	for _, f := range facts {
		if !f.ProductKey.Valid {
			out = append(out, Violation{Entity: "sales_facts", Key: f.OrderNumber, Detail: "unresolved product reference"})
		}
		if !f.CustomerKey.Valid {
			out = append(out, Violation{Entity: "sales_facts", Key: f.OrderNumber, Detail: "unresolved customer reference"})
		}
	}
	return out
}
