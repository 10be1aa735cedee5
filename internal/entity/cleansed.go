package entity

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// NA is the sentinel label for values that could not be resolved to a
// known code. Cleansed rows never carry empty strings for coded columns.
const NA = "n/a"

// Customer is a cleansed customer profile: exactly one row per business
// id, codes expanded to labels, incidental whitespace removed.
type Customer struct {
	ID            int32  // business id, required and unique
	Key           string // alternate key
	FirstName     string
	LastName      string
	MaritalStatus string // "Single", "Married" or NA
	Gender        string // "Female", "Male" or NA
	CreateDate    pgtype.Date
}

// Product is a cleansed product version with the composite key split and
// the lifecycle end date recomputed from the next version's start date.
// EndDate is null for the current version of each product key.
type Product struct {
	ID         int32
	CategoryID string // first 5 chars of the composite key, dash → underscore
	Key        string // remainder of the composite key
	Name       string
	Cost       decimal.Decimal // null cost coerces to 0
	Line       string          // expanded product line label or NA
	StartDate  pgtype.Date
	EndDate    pgtype.Date
}

// SalesItem is a cleansed sales line with dates decoded and the
// price/amount pair reconciled. Grain is unchanged from the raw layer.
type SalesItem struct {
	OrderNumber string
	ProductKey  string
	CustomerID  int32
	OrderDate   pgtype.Date
	ShipDate    pgtype.Date
	DueDate     pgtype.Date
	Amount      decimal.NullDecimal
	Quantity    pgtype.Int4
	Price       decimal.NullDecimal
}

// Demographics is a cleansed ERP demographics record keyed to match the
// profile alternate key (legacy prefix stripped).
type Demographics struct {
	ID        string
	BirthDate pgtype.Date // nulled when in the future
	Gender    string      // "Female", "Male" or NA
}

// Location is a cleansed ERP country record keyed to match the profile
// alternate key (hyphens stripped).
type Location struct {
	ID      string
	Country string // full country name or NA
}

// Category passes through from the raw layer unchanged.
type Category struct {
	ID          string
	Category    string
	Subcategory string
	Maintenance string
}
