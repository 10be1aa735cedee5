// Package store provides the persistence collaborators for the three
// warehouse layers. Each layer table exposes exactly two operations:
// ReadAll returns the full snapshot in a deterministic order, and
// ReplaceAll atomically swaps the snapshot for a new one. There is no
// incremental merge; a failed ReplaceAll leaves the prior snapshot intact.
package store

import (
	"context"

	"github.com/jlowell/salesdw/internal/entity"
)

// Table is one layer table holding rows of a single entity type.
type Table[T any] interface {
	ReadAll(ctx context.Context) ([]T, error)
	ReplaceAll(ctx context.Context, rows []T) (int64, error)
}

// Raw groups the six source-entity tables of the raw layer.
type Raw struct {
	CustomerProfiles Table[entity.RawCustomerProfile]
	ProductCatalog   Table[entity.RawProductCatalog]
	SalesItems       Table[entity.RawSalesItem]
	Demographics     Table[entity.RawDemographics]
	Locations        Table[entity.RawLocation]
	Categories       Table[entity.RawCategory]
}

// Cleansed groups the six cleansed-layer tables.
type Cleansed struct {
	Customers    Table[entity.Customer]
	Products     Table[entity.Product]
	SalesItems   Table[entity.SalesItem]
	Demographics Table[entity.Demographics]
	Locations    Table[entity.Location]
	Categories   Table[entity.Category]
}

// Dimensional groups the dimension and fact tables.
type Dimensional struct {
	Customers Table[entity.CustomerDim]
	Products  Table[entity.ProductDim]
	Sales     Table[entity.SalesFact]
}
