package entity

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// CustomerDim is one row per distinct business id, merged from the CRM
// profile and the ERP demographics/location extracts. CRM values win on
// conflict; the surrogate CustomerKey is assigned per run in ascending
// business-id order starting at 1.
type CustomerDim struct {
	CustomerKey   int64 // surrogate
	ID            int32 // business id
	Number        string
	FirstName     string
	LastName      string
	Country       string
	MaritalStatus string
	Gender        string
	BirthDate     pgtype.Date
	CreateDate    pgtype.Date
}

// ProductDim is one row per currently-active product version, enriched
// with the category hierarchy. Retired versions (closed end date) are
// filtered out before surrogate keys are assigned in ascending
// (start date, product key) order.
type ProductDim struct {
	ProductKey  int64 // surrogate
	ID          int32
	Number      string // cleansed product key
	Name        string
	CategoryID  string
	Category    string
	Subcategory string
	Maintenance string
	Cost        decimal.Decimal
	Line        string
	StartDate   pgtype.Date
}

// SalesFact is one row per cleansed sales line. Dimension references are
// resolved at assembly time; a line whose product or customer has no
// current dimension row keeps its grain with a null foreign key.
type SalesFact struct {
	OrderNumber string
	ProductKey  pgtype.Int8 // null when the product is retired or unknown
	CustomerKey pgtype.Int8 // null when the customer is unknown
	OrderDate   pgtype.Date
	ShipDate    pgtype.Date
	DueDate     pgtype.Date
	Amount      decimal.NullDecimal
	Quantity    pgtype.Int4
	Price       decimal.NullDecimal
}
