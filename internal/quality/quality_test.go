package quality

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jlowell/salesdw/internal/entity"
)

func date(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func dec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func i4(n int32) pgtype.Int4 {
	return pgtype.Int4{Int32: n, Valid: true}
}

// cleanItem satisfies every sales check.
func cleanItem() entity.SalesItem {
	return entity.SalesItem{
		OrderNumber: "SO1",
		ProductKey:  "FR-R92B-58",
		OrderDate:   date(2023, 1, 1),
		ShipDate:    date(2023, 1, 8),
		DueDate:     date(2023, 1, 15),
		Amount:      dec("20"),
		Quantity:    i4(2),
		Price:       dec("10"),
	}
}

func TestValidate_CleanSnapshot(t *testing.T) {
	snap := Snapshot{
		Customers: []entity.Customer{{ID: 1, Key: "AW1", FirstName: "Jon"}},
		Products: []entity.Product{
			{ID: 1, Key: "FR-R92B-58", StartDate: date(2022, 1, 1)},
		},
		SalesItems:   []entity.SalesItem{cleanItem()},
		CustomerDims: []entity.CustomerDim{{CustomerKey: 1, ID: 1}},
		ProductDims:  []entity.ProductDim{{ProductKey: 1, Number: "FR-R92B-58"}},
		SalesFacts: []entity.SalesFact{{
			OrderNumber: "SO1",
			ProductKey:  pgtype.Int8{Int64: 1, Valid: true},
			CustomerKey: pgtype.Int8{Int64: 1, Valid: true},
		}},
	}

	report := Validate(snap, time.Now())
	if !report.Clean() {
		for _, r := range report.Results {
			for _, v := range r.Violations {
				t.Errorf("%s: unexpected violation %+v", r.Name, v)
			}
		}
	}
	if len(report.Results) != 12 {
		t.Errorf("battery ran %d checks, want 12", len(report.Results))
	}
}

func TestValidate_FixedCheckOrder(t *testing.T) {
	want := []string{
		"customer_id_unique_nonnull",
		"customer_whitespace",
		"product_key_nonnull_unique_current",
		"product_cost_nonnegative",
		"product_dates_ordered",
		"sales_positive_fields",
		"sales_consistency",
		"sales_date_range",
		"sales_date_order",
		"dim_customer_surrogate_unique",
		"dim_product_surrogate_unique",
		"fact_orphans",
	}

	report := Validate(Snapshot{}, time.Now())
	if len(report.Results) != len(want) {
		t.Fatalf("battery ran %d checks, want %d", len(report.Results), len(want))
	}
	for i, name := range want {
		if report.Results[i].Name != name {
			t.Errorf("check %d = %q, want %q", i, report.Results[i].Name, name)
		}
	}
}

func TestCheckCustomerIDUniqueNonNull(t *testing.T) {
	customers := []entity.Customer{
		{ID: 1}, {ID: 1}, {ID: 0}, {ID: 2},
	}

	got := checkCustomerIDUniqueNonNull(customers)
	if len(got) != 2 {
		t.Fatalf("got %d violations, want 2: %+v", len(got), got)
	}
	if got[0].Detail != "duplicate business id" {
		t.Errorf("first violation = %q, want duplicate", got[0].Detail)
	}
	if got[1].Detail != "missing business id" {
		t.Errorf("second violation = %q, want missing", got[1].Detail)
	}
}

func TestCheckCustomerWhitespace(t *testing.T) {
	customers := []entity.Customer{
		{ID: 1, Key: "AW1", FirstName: " Jon", LastName: "Doe "},
		{ID: 2, Key: "AW2", FirstName: "Ana", LastName: "Ng"},
	}

	got := checkCustomerWhitespace(customers)
	if len(got) != 2 {
		t.Fatalf("got %d violations, want 2: %+v", len(got), got)
	}
}

func TestCheckProductKeys(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Key: ""},
		{ID: 2, Key: "X1"},                               // current
		{ID: 3, Key: "X1"},                               // second current version
		{ID: 4, Key: "X2", EndDate: date(2022, 12, 31)},  // retired, ok
		{ID: 5, Key: "X2"},                               // only current for X2
	}

	got := checkProductKeys(products)
	if len(got) != 2 {
		t.Fatalf("got %d violations, want 2: %+v", len(got), got)
	}
	if got[0].Detail != "empty product key" {
		t.Errorf("violation 0 = %q", got[0].Detail)
	}
	if got[1].Key != "X1" {
		t.Errorf("violation 1 key = %q, want X1", got[1].Key)
	}
}

func TestCheckSalesDateRange_Asymmetry(t *testing.T) {
	early := cleanItem()
	early.OrderDate = date(1899, 12, 31)
	late := cleanItem()
	late.DueDate = date(2050, 1, 2)
	boundary := cleanItem()
	boundary.OrderDate = date(1900, 1, 1)
	boundary.ShipDate = date(2050, 1, 1)
	boundary.DueDate = date(2050, 1, 1)

	if got := checkSalesDateRange([]entity.SalesItem{early}); len(got) != 1 {
		t.Errorf("pre-1900 date: got %d violations, want 1", len(got))
	}
	if got := checkSalesDateRange([]entity.SalesItem{late}); len(got) != 1 {
		t.Errorf("post-2050 date: got %d violations, want 1", len(got))
	}
	if got := checkSalesDateRange([]entity.SalesItem{boundary}); len(got) != 0 {
		t.Errorf("boundary dates: got %d violations, want 0: %+v", len(got), got)
	}
}

func TestCheckSalesDateOrder(t *testing.T) {
	item := cleanItem()
	item.ShipDate = date(2022, 12, 25) // before order date

	got := checkSalesDateOrder([]entity.SalesItem{item})
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1", len(got))
	}
	if got[0].Detail != "order date after ship date" {
		t.Errorf("detail = %q", got[0].Detail)
	}

	// A null order date disables the ordering checks entirely.
	item.OrderDate = pgtype.Date{}
	if got := checkSalesDateOrder([]entity.SalesItem{item}); len(got) != 0 {
		t.Errorf("null order date: got %d violations, want 0", len(got))
	}
}

func TestCheckSalesConsistency_SkipsNulls(t *testing.T) {
	inconsistent := cleanItem()
	inconsistent.Amount = dec("999")

	nullPrice := cleanItem()
	nullPrice.Price = decimal.NullDecimal{}

	if got := checkSalesConsistency([]entity.SalesItem{inconsistent}); len(got) != 1 {
		t.Errorf("inconsistent row: got %d violations, want 1", len(got))
	}
	if got := checkSalesConsistency([]entity.SalesItem{nullPrice}); len(got) != 0 {
		t.Errorf("null price row: got %d violations, want 0", len(got))
	}
}

func TestCheckFactOrphans(t *testing.T) {
	facts := []entity.SalesFact{
		{
			OrderNumber: "SO1",
			ProductKey:  pgtype.Int8{Int64: 1, Valid: true},
			CustomerKey: pgtype.Int8{Int64: 1, Valid: true},
		},
		{OrderNumber: "SO2", CustomerKey: pgtype.Int8{Int64: 1, Valid: true}},
		{OrderNumber: "SO3"},
	}

	got := checkFactOrphans(facts)
	if len(got) != 3 {
		t.Fatalf("got %d violations, want 3: %+v", len(got), got)
	}
	if got[0].Key != "SO2" || got[0].Detail != "unresolved product reference" {
		t.Errorf("violation 0 = %+v", got[0])
	}
	if got[1].Key != "SO3" || got[2].Key != "SO3" {
		t.Errorf("SO3 should report both unresolved references: %+v", got[1:])
	}
}

func TestCheckDimSurrogates(t *testing.T) {
	custDims := []entity.CustomerDim{{CustomerKey: 1}, {CustomerKey: 2}, {CustomerKey: 1}}
	if got := checkCustomerDimSurrogates(custDims); len(got) != 1 {
		t.Errorf("customer dims: got %d violations, want 1", len(got))
	}

	prodDims := []entity.ProductDim{{ProductKey: 1}, {ProductKey: 1}}
	if got := checkProductDimSurrogates(prodDims); len(got) != 1 {
		t.Errorf("product dims: got %d violations, want 1", len(got))
	}
}
