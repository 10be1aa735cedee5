// Package entity defines the row types for the three warehouse layers.
//
// Raw rows mirror the source extracts byte-for-byte: nothing is trimmed,
// decoded, or defaulted at this layer. Nullable columns use pgtype values
// so a missing cell and an empty cell stay distinguishable, and money
// columns use shopspring decimals so later arithmetic is exact.
package entity

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// RawCustomerProfile is a CRM customer master record as extracted.
type RawCustomerProfile struct {
	ID            pgtype.Int4 // business id, may be absent on junk rows
	Key           pgtype.Text // alternate key, joins to ERP extracts
	FirstName     pgtype.Text
	LastName      pgtype.Text
	MaritalStatus pgtype.Text // single-letter code, often padded
	Gender        pgtype.Text // single-letter code, often padded
	CreateDate    pgtype.Date
}

// RawProductCatalog is a CRM product version record. The composite Key
// carries a category prefix; EndDate is frequently wrong or missing and
// is recomputed during cleansing.
type RawProductCatalog struct {
	ID        pgtype.Int4
	Key       pgtype.Text // composite: 5-char category prefix + product key
	Name      pgtype.Text
	Cost      decimal.NullDecimal
	Line      pgtype.Text // single-letter product line code
	StartDate pgtype.Date
	EndDate   pgtype.Date
}

// RawSalesItem is one CRM sales order line. Dates arrive as 8-digit
// integers (YYYYMMDD); amount, quantity and price are mutually
// inconsistent often enough that cleansing reconciles them.
type RawSalesItem struct {
	OrderNumber pgtype.Text
	ProductKey  pgtype.Text
	CustomerID  pgtype.Int4
	OrderDate   pgtype.Int4
	ShipDate    pgtype.Int4
	DueDate     pgtype.Int4
	Amount      decimal.NullDecimal
	Quantity    pgtype.Int4
	Price       decimal.NullDecimal
}

// RawDemographics is an ERP customer demographics record. IDs may carry
// a legacy prefix and the gender column is free text with embedded
// control characters.
type RawDemographics struct {
	ID        pgtype.Text
	BirthDate pgtype.Date
	Gender    pgtype.Text
}

// RawLocation is an ERP customer country record. IDs are hyphenated and
// the country column is free text with embedded control characters.
type RawLocation struct {
	ID      pgtype.Text
	Country pgtype.Text
}

// RawCategory is an ERP product category record; verified clean upstream.
type RawCategory struct {
	ID          pgtype.Text
	Category    pgtype.Text
	Subcategory pgtype.Text
	Maintenance pgtype.Text
}
