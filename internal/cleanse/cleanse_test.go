package cleanse

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jlowell/salesdw/internal/entity"
)

func txt(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func i4(n int32) pgtype.Int4 {
	return pgtype.Int4{Int32: n, Valid: true}
}

func date(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func dec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestCustomers_KeepsLatestCreateDate(t *testing.T) {
	raw := []entity.RawCustomerProfile{
		{ID: i4(11000), Key: txt("AW00011000"), FirstName: txt("Jon"), CreateDate: date(2023, 1, 1)},
		{ID: i4(11000), Key: txt("AW00011000"), FirstName: txt("Jonathan"), CreateDate: date(2023, 6, 1)},
	}

	got := Customers(raw)
	if len(got) != 1 {
		t.Fatalf("Customers() returned %d rows, want 1", len(got))
	}
	if got[0].FirstName != "Jonathan" {
		t.Errorf("kept FirstName = %q, want the later-created row", got[0].FirstName)
	}
}

func TestCustomers_TieKeepsEarlierInputRow(t *testing.T) {
	raw := []entity.RawCustomerProfile{
		{ID: i4(1), FirstName: txt("first"), CreateDate: date(2023, 1, 1)},
		{ID: i4(1), FirstName: txt("second"), CreateDate: date(2023, 1, 1)},
	}

	got := Customers(raw)
	if len(got) != 1 {
		t.Fatalf("Customers() returned %d rows, want 1", len(got))
	}
	if got[0].FirstName != "first" {
		t.Errorf("kept FirstName = %q, want the earlier input row on equal dates", got[0].FirstName)
	}
}

func TestCustomers_DropsRowsWithoutID(t *testing.T) {
	raw := []entity.RawCustomerProfile{
		{Key: txt("AW00099999"), FirstName: txt("ghost")},
		{ID: i4(2), FirstName: txt("real")},
	}

	got := Customers(raw)
	if len(got) != 1 {
		t.Fatalf("Customers() returned %d rows, want 1", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("kept ID = %d, want 2", got[0].ID)
	}
}

func TestCustomers_ExpandsCodesAndTrims(t *testing.T) {
	raw := []entity.RawCustomerProfile{
		{ID: i4(1), FirstName: txt("  Jon "), MaritalStatus: txt(" M "), Gender: txt("f")},
		{ID: i4(2), MaritalStatus: txt("X"), Gender: pgtype.Text{}},
	}

	got := Customers(raw)
	if len(got) != 2 {
		t.Fatalf("Customers() returned %d rows, want 2", len(got))
	}
	if got[0].FirstName != "Jon" {
		t.Errorf("FirstName = %q, want trimmed %q", got[0].FirstName, "Jon")
	}
	if got[0].MaritalStatus != "Married" {
		t.Errorf("MaritalStatus = %q, want Married", got[0].MaritalStatus)
	}
	if got[0].Gender != "Female" {
		t.Errorf("Gender = %q, want Female", got[0].Gender)
	}
	if got[1].MaritalStatus != entity.NA {
		t.Errorf("unknown code MaritalStatus = %q, want %q", got[1].MaritalStatus, entity.NA)
	}
	if got[1].Gender != entity.NA {
		t.Errorf("null Gender = %q, want %q", got[1].Gender, entity.NA)
	}
}

func TestProducts_SplitsCompositeKey(t *testing.T) {
	raw := []entity.RawProductCatalog{
		{ID: i4(1), Key: txt("CO-RF-FR-R92B-58")},
		{ID: i4(2), Key: txt("AB-C1")},
	}

	got := Products(raw)
	if len(got) != 2 {
		t.Fatalf("Products() returned %d rows, want 2", len(got))
	}

	byID := map[int32]entity.Product{got[0].ID: got[0], got[1].ID: got[1]}
	if p := byID[1]; p.CategoryID != "CO_RF" || p.Key != "FR-R92B-58" {
		t.Errorf("split = (%q, %q), want (CO_RF, FR-R92B-58)", p.CategoryID, p.Key)
	}
	if p := byID[2]; p.CategoryID != "AB_C1" || p.Key != "" {
		t.Errorf("short key split = (%q, %q), want (AB_C1, \"\")", p.CategoryID, p.Key)
	}
}

func TestProducts_ClosesLifecycleGap(t *testing.T) {
	raw := []entity.RawProductCatalog{
		{ID: i4(2), Key: txt("BK-M8-R92B-58"), StartDate: date(2022, 1, 1)},
		{ID: i4(1), Key: txt("BK-M8-R92B-58"), StartDate: date(2021, 1, 1),
			EndDate: date(2030, 12, 31)}, // raw end date is ignored
	}

	got := Products(raw)
	if len(got) != 2 {
		t.Fatalf("Products() returned %d rows, want 2", len(got))
	}

	// Sorted by (key, start date): the 2021 version comes first.
	first, second := got[0], got[1]
	if !first.EndDate.Valid {
		t.Fatal("superseded version should have a closed end date")
	}
	if want := date(2021, 12, 31).Time; !first.EndDate.Time.Equal(want) {
		t.Errorf("EndDate = %v, want %v (day before successor start)", first.EndDate.Time, want)
	}
	if second.EndDate.Valid {
		t.Errorf("current version EndDate = %v, want null", second.EndDate.Time)
	}
}

func TestProducts_NullCostBecomesZero(t *testing.T) {
	raw := []entity.RawProductCatalog{{ID: i4(1), Key: txt("BK-M8-X1")}}

	got := Products(raw)
	if !got[0].Cost.Equal(decimal.Zero) {
		t.Errorf("Cost = %v, want 0", got[0].Cost)
	}
}

func TestSalesItems_PriceAndAmountReconciliation(t *testing.T) {
	tests := []struct {
		name       string
		qty        pgtype.Int4
		price      decimal.NullDecimal
		amount     decimal.NullDecimal
		wantPrice  decimal.NullDecimal
		wantAmount decimal.NullDecimal
	}{
		{
			name:       "consistent row unchanged",
			qty:        i4(2),
			price:      dec("10"),
			amount:     dec("20"),
			wantPrice:  dec("10"),
			wantAmount: dec("20"),
		},
		{
			name:       "zero price derived from amount",
			qty:        i4(2),
			price:      dec("0"),
			amount:     dec("50"),
			wantPrice:  dec("25"),
			wantAmount: dec("50"),
		},
		{
			name:       "inconsistent amount recomputed",
			qty:        i4(2),
			price:      dec("10"),
			amount:     dec("999"),
			wantPrice:  dec("10"),
			wantAmount: dec("20"),
		},
		{
			name:       "everything null stays null",
			qty:        pgtype.Int4{},
			price:      decimal.NullDecimal{},
			amount:     decimal.NullDecimal{},
			wantPrice:  decimal.NullDecimal{},
			wantAmount: decimal.NullDecimal{},
		},
		{
			name:       "zero quantity cannot derive price",
			qty:        i4(0),
			price:      decimal.NullDecimal{},
			amount:     dec("50"),
			wantPrice:  decimal.NullDecimal{},
			wantAmount: dec("50"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SalesItems([]entity.RawSalesItem{{
				OrderNumber: txt("SO100"),
				Quantity:    tt.qty,
				Price:       tt.price,
				Amount:      tt.amount,
			}})
			if len(got) != 1 {
				t.Fatalf("SalesItems() returned %d rows, want 1", len(got))
			}
			checkNullDecimal(t, "price", got[0].Price, tt.wantPrice)
			checkNullDecimal(t, "amount", got[0].Amount, tt.wantAmount)
		})
	}
}

func TestSalesItems_NegativePriceDerivedFromAmount(t *testing.T) {
	got := SalesItems([]entity.RawSalesItem{{
		Quantity: i4(4),
		Price:    dec("-5"),
		Amount:   dec("100"),
	}})

	checkNullDecimal(t, "price", got[0].Price, dec("25"))
	checkNullDecimal(t, "amount", got[0].Amount, dec("100"))
}

func checkNullDecimal(t *testing.T, field string, got, want decimal.NullDecimal) {
	t.Helper()
	if got.Valid != want.Valid {
		t.Errorf("%s validity = %v, want %v", field, got.Valid, want.Valid)
		return
	}
	if got.Valid && !got.Decimal.Equal(want.Decimal) {
		t.Errorf("%s = %v, want %v", field, got.Decimal, want.Decimal)
	}
}

func TestSalesItems_DecodesIntegerDates(t *testing.T) {
	got := SalesItems([]entity.RawSalesItem{{
		OrderDate: i4(20230615),
		ShipDate:  i4(20230231), // not a real calendar day
		DueDate:   pgtype.Int4{},
	}})

	if !got[0].OrderDate.Valid {
		t.Error("OrderDate should decode")
	} else if want := date(2023, 6, 15).Time; !got[0].OrderDate.Time.Equal(want) {
		t.Errorf("OrderDate = %v, want %v", got[0].OrderDate.Time, want)
	}
	if got[0].ShipDate.Valid {
		t.Errorf("ShipDate = %v, want null for an invalid calendar day", got[0].ShipDate.Time)
	}
	if got[0].DueDate.Valid {
		t.Error("null DueDate should stay null")
	}
}

func TestDemographicsRows(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	raw := []entity.RawDemographics{
		{ID: txt("NAS11000"), BirthDate: date(1970, 5, 2), Gender: txt(" F e male\t")},
		{ID: txt("11001"), BirthDate: date(2030, 1, 1), Gender: txt("nonbinary")},
	}

	got := DemographicsRows(raw, now)
	if len(got) != 2 {
		t.Fatalf("DemographicsRows() returned %d rows, want 2", len(got))
	}

	if got[0].ID != "11000" {
		t.Errorf("ID = %q, want legacy prefix stripped", got[0].ID)
	}
	if got[0].Gender != "Female" {
		t.Errorf("Gender = %q, want Female after whitespace strip", got[0].Gender)
	}
	if !got[0].BirthDate.Valid {
		t.Error("past birthdate should survive")
	}

	if got[1].ID != "11001" {
		t.Errorf("ID = %q, want unchanged when no prefix", got[1].ID)
	}
	if got[1].BirthDate.Valid {
		t.Errorf("future birthdate = %v, want null", got[1].BirthDate.Time)
	}
	if got[1].Gender != entity.NA {
		t.Errorf("unmatched gender = %q, want %q", got[1].Gender, entity.NA)
	}
}

func TestLocations(t *testing.T) {
	raw := []entity.RawLocation{
		{ID: txt("AW-000-11000"), Country: txt("US")},
		{ID: txt("11001"), Country: txt("United\r States\n")},
		{ID: txt("11002"), Country: txt("de")},
		{ID: txt("11003"), Country: pgtype.Text{}},
		{ID: txt("11004"), Country: txt("Australia")},
	}

	got := Locations(raw)
	want := []entity.Location{
		{ID: "AW00011000", Country: "United States"},
		{ID: "11001", Country: "United States"},
		{ID: "11002", Country: "Germany"},
		{ID: "11003", Country: entity.NA},
		{ID: "11004", Country: "Australia"},
	}

	if len(got) != len(want) {
		t.Fatalf("Locations() returned %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategories_PassThrough(t *testing.T) {
	raw := []entity.RawCategory{
		{ID: txt("CO_RF"), Category: txt("Components"), Subcategory: txt("Road Frames"), Maintenance: txt("Yes")},
	}

	got := Categories(raw)
	if len(got) != 1 {
		t.Fatalf("Categories() returned %d rows, want 1", len(got))
	}
	want := entity.Category{ID: "CO_RF", Category: "Components", Subcategory: "Road Frames", Maintenance: "Yes"}
	if got[0] != want {
		t.Errorf("row = %+v, want %+v", got[0], want)
	}
}
