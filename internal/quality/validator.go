package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/store"
)

// CheckResult is the outcome of one named check. An empty Violations
// slice means the check passed.
type CheckResult struct {
	Name       string      `json:"name"`
	Violations []Violation `json:"violations"`
}

// Report is the full battery outcome, checks in their fixed order.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Results     []CheckResult `json:"results"`
}

// Clean reports whether every check passed.
func (r Report) Clean() bool {
	for _, res := range r.Results {
		if len(res.Violations) > 0 {
			return false
		}
	}
	return true
}

// Snapshot holds the rows the battery inspects. Validate operates on it
// directly so tests can assert single checks without a store.
type Snapshot struct {
	Customers    []entity.Customer
	Products     []entity.Product
	SalesItems   []entity.SalesItem
	CustomerDims []entity.CustomerDim
	ProductDims  []entity.ProductDim
	SalesFacts   []entity.SalesFact
}

// Validate runs the fixed battery over a snapshot.
func Validate(snap Snapshot, now time.Time) Report {
	return Report{
		GeneratedAt: now,
		Results: []CheckResult{
			{Name: "customer_id_unique_nonnull", Violations: checkCustomerIDUniqueNonNull(snap.Customers)},
			{Name: "customer_whitespace", Violations: checkCustomerWhitespace(snap.Customers)},
			{Name: "product_key_nonnull_unique_current", Violations: checkProductKeys(snap.Products)},
			{Name: "product_cost_nonnegative", Violations: checkProductCost(snap.Products)},
			{Name: "product_dates_ordered", Violations: checkProductDatesOrdered(snap.Products)},
			{Name: "sales_positive_fields", Violations: checkSalesPositive(snap.SalesItems)},
			{Name: "sales_consistency", Violations: checkSalesConsistency(snap.SalesItems)},
			{Name: "sales_date_range", Violations: checkSalesDateRange(snap.SalesItems)},
			{Name: "sales_date_order", Violations: checkSalesDateOrder(snap.SalesItems)},
			{Name: "dim_customer_surrogate_unique", Violations: checkCustomerDimSurrogates(snap.CustomerDims)},
			{Name: "dim_product_surrogate_unique", Violations: checkProductDimSurrogates(snap.ProductDims)},
			{Name: "fact_orphans", Violations: checkFactOrphans(snap.SalesFacts)},
		},
	}
}

// Validator reads the cleansed and dimensional stores and runs the
// battery. It never writes.
type Validator struct {
	Cleansed    store.Cleansed
	Dimensional store.Dimensional
}

// Run loads both layers and validates them. Only store reads can fail;
// the checks themselves always complete.
func (v Validator) Run(ctx context.Context, now time.Time) (Report, error) {
	var snap Snapshot
	var err error

	if snap.Customers, err = v.Cleansed.Customers.ReadAll(ctx); err != nil {
		return Report{}, fmt.Errorf("quality: read customers: %w", err)
	}
	if snap.Products, err = v.Cleansed.Products.ReadAll(ctx); err != nil {
		return Report{}, fmt.Errorf("quality: read products: %w", err)
	}
	if snap.SalesItems, err = v.Cleansed.SalesItems.ReadAll(ctx); err != nil {
		return Report{}, fmt.Errorf("quality: read sales items: %w", err)
	}
	if snap.CustomerDims, err = v.Dimensional.Customers.ReadAll(ctx); err != nil {
		return Report{}, fmt.Errorf("quality: read customer dimension: %w", err)
	}
	if snap.ProductDims, err = v.Dimensional.Products.ReadAll(ctx); err != nil {
		return Report{}, fmt.Errorf("quality: read product dimension: %w", err)
	}
	if snap.SalesFacts, err = v.Dimensional.Sales.ReadAll(ctx); err != nil {
		return Report{}, fmt.Errorf("quality: read sales facts: %w", err)
	}

	return Validate(snap, now), nil
}
