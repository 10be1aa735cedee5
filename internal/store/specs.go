package store

// specs.go wires every layer table to its Postgres relation. Schemas
// mirror the layers: raw, cleansed, dim. Column order here must match
// sql/schema.sql; Values and Scan are exact inverses of each other.
//
// Every OrderBy must be a total order: the cleansing tie-breaks depend on
// a reproducible read sequence, and Postgres's sort is not stable. Raw
// tables order by load_seq, a bigserial the COPY protocol fills in row
// input order, so ReadAll returns exactly the file order the loader saw.
// Derived tables whose sort keys can repeat list every column instead, so
// tied rows are identical rows and any ordering of them is the same
// snapshot.

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jlowell/salesdw/internal/entity"
)

// NewPostgresRaw builds the raw layer over a connection pool.
func NewPostgresRaw(db *pgxpool.Pool) Raw {
	return Raw{
		CustomerProfiles: NewPostgres(db, rawCustomerProfileSpec),
		ProductCatalog:   NewPostgres(db, rawProductCatalogSpec),
		SalesItems:       NewPostgres(db, rawSalesItemSpec),
		Demographics:     NewPostgres(db, rawDemographicsSpec),
		Locations:        NewPostgres(db, rawLocationSpec),
		Categories:       NewPostgres(db, rawCategorySpec),
	}
}

// NewPostgresCleansed builds the cleansed layer over a connection pool.
func NewPostgresCleansed(db *pgxpool.Pool) Cleansed {
	return Cleansed{
		Customers:    NewPostgres(db, customerSpec),
		Products:     NewPostgres(db, productSpec),
		SalesItems:   NewPostgres(db, salesItemSpec),
		Demographics: NewPostgres(db, demographicsSpec),
		Locations:    NewPostgres(db, locationSpec),
		Categories:   NewPostgres(db, categorySpec),
	}
}

// NewPostgresDimensional builds the dimensional layer over a connection pool.
func NewPostgresDimensional(db *pgxpool.Pool) Dimensional {
	return Dimensional{
		Customers: NewPostgres(db, customerDimSpec),
		Products:  NewPostgres(db, productDimSpec),
		Sales:     NewPostgres(db, salesFactSpec),
	}
}

var rawCustomerProfileSpec = Spec[entity.RawCustomerProfile]{
	Name:    pgx.Identifier{"raw", "customer_profiles"},
	Columns: []string{"customer_id", "customer_key", "first_name", "last_name", "marital_status", "gender", "create_date"},
	OrderBy: "load_seq",
	Values: func(r entity.RawCustomerProfile) []any {
		return []any{r.ID, r.Key, r.FirstName, r.LastName, r.MaritalStatus, r.Gender, r.CreateDate}
	},
	Scan: func(row pgx.CollectableRow) (entity.RawCustomerProfile, error) {
		var r entity.RawCustomerProfile
		err := row.Scan(&r.ID, &r.Key, &r.FirstName, &r.LastName, &r.MaritalStatus, &r.Gender, &r.CreateDate)
		return r, err
	},
}

var rawProductCatalogSpec = Spec[entity.RawProductCatalog]{
	Name:    pgx.Identifier{"raw", "product_catalog"},
	Columns: []string{"product_id", "product_key", "product_name", "cost", "product_line", "start_date", "end_date"},
	OrderBy: "load_seq",
	Values: func(r entity.RawProductCatalog) []any {
		return []any{r.ID, r.Key, r.Name, r.Cost, r.Line, r.StartDate, r.EndDate}
	},
	Scan: func(row pgx.CollectableRow) (entity.RawProductCatalog, error) {
		var r entity.RawProductCatalog
		err := row.Scan(&r.ID, &r.Key, &r.Name, &r.Cost, &r.Line, &r.StartDate, &r.EndDate)
		return r, err
	},
}

var rawSalesItemSpec = Spec[entity.RawSalesItem]{
	Name:    pgx.Identifier{"raw", "sales_items"},
	Columns: []string{"order_number", "product_key", "customer_id", "order_date", "ship_date", "due_date", "sales_amount", "quantity", "price"},
	OrderBy: "load_seq",
	Values: func(r entity.RawSalesItem) []any {
		return []any{r.OrderNumber, r.ProductKey, r.CustomerID, r.OrderDate, r.ShipDate, r.DueDate, r.Amount, r.Quantity, r.Price}
	},
	Scan: func(row pgx.CollectableRow) (entity.RawSalesItem, error) {
		var r entity.RawSalesItem
		err := row.Scan(&r.OrderNumber, &r.ProductKey, &r.CustomerID, &r.OrderDate, &r.ShipDate, &r.DueDate, &r.Amount, &r.Quantity, &r.Price)
		return r, err
	},
}

var rawDemographicsSpec = Spec[entity.RawDemographics]{
	Name:    pgx.Identifier{"raw", "customer_demographics"},
	Columns: []string{"customer_id", "birth_date", "gender"},
	OrderBy: "load_seq",
	Values: func(r entity.RawDemographics) []any {
		return []any{r.ID, r.BirthDate, r.Gender}
	},
	Scan: func(row pgx.CollectableRow) (entity.RawDemographics, error) {
		var r entity.RawDemographics
		err := row.Scan(&r.ID, &r.BirthDate, &r.Gender)
		return r, err
	},
}

var rawLocationSpec = Spec[entity.RawLocation]{
	Name:    pgx.Identifier{"raw", "customer_locations"},
	Columns: []string{"customer_id", "country"},
	OrderBy: "load_seq",
	Values: func(r entity.RawLocation) []any {
		return []any{r.ID, r.Country}
	},
	Scan: func(row pgx.CollectableRow) (entity.RawLocation, error) {
		var r entity.RawLocation
		err := row.Scan(&r.ID, &r.Country)
		return r, err
	},
}

var rawCategorySpec = Spec[entity.RawCategory]{
	Name:    pgx.Identifier{"raw", "product_categories"},
	Columns: []string{"category_id", "category", "subcategory", "maintenance"},
	OrderBy: "load_seq",
	Values: func(r entity.RawCategory) []any {
		return []any{r.ID, r.Category, r.Subcategory, r.Maintenance}
	},
	Scan: func(row pgx.CollectableRow) (entity.RawCategory, error) {
		var r entity.RawCategory
		err := row.Scan(&r.ID, &r.Category, &r.Subcategory, &r.Maintenance)
		return r, err
	},
}

var customerSpec = Spec[entity.Customer]{
	Name:    pgx.Identifier{"cleansed", "customers"},
	Columns: []string{"customer_id", "customer_key", "first_name", "last_name", "marital_status", "gender", "create_date"},
	OrderBy: "customer_id",
	Values: func(c entity.Customer) []any {
		return []any{c.ID, c.Key, c.FirstName, c.LastName, c.MaritalStatus, c.Gender, c.CreateDate}
	},
	Scan: func(row pgx.CollectableRow) (entity.Customer, error) {
		var c entity.Customer
		err := row.Scan(&c.ID, &c.Key, &c.FirstName, &c.LastName, &c.MaritalStatus, &c.Gender, &c.CreateDate)
		return c, err
	},
}

var productSpec = Spec[entity.Product]{
	Name:    pgx.Identifier{"cleansed", "products"},
	Columns: []string{"product_id", "category_id", "product_key", "product_name", "cost", "product_line", "start_date", "end_date"},
	OrderBy: "product_key, start_date, product_id, category_id, product_name, cost, product_line, end_date",
	Values: func(p entity.Product) []any {
		return []any{p.ID, p.CategoryID, p.Key, p.Name, p.Cost, p.Line, p.StartDate, p.EndDate}
	},
	Scan: func(row pgx.CollectableRow) (entity.Product, error) {
		var p entity.Product
		err := row.Scan(&p.ID, &p.CategoryID, &p.Key, &p.Name, &p.Cost, &p.Line, &p.StartDate, &p.EndDate)
		return p, err
	},
}

var salesItemSpec = Spec[entity.SalesItem]{
	Name:    pgx.Identifier{"cleansed", "sales_items"},
	Columns: []string{"order_number", "product_key", "customer_id", "order_date", "ship_date", "due_date", "sales_amount", "quantity", "price"},
	OrderBy: "order_number, product_key, customer_id, order_date, ship_date, due_date, sales_amount, quantity, price",
	Values: func(s entity.SalesItem) []any {
		return []any{s.OrderNumber, s.ProductKey, s.CustomerID, s.OrderDate, s.ShipDate, s.DueDate, s.Amount, s.Quantity, s.Price}
	},
	Scan: func(row pgx.CollectableRow) (entity.SalesItem, error) {
		var s entity.SalesItem
		err := row.Scan(&s.OrderNumber, &s.ProductKey, &s.CustomerID, &s.OrderDate, &s.ShipDate, &s.DueDate, &s.Amount, &s.Quantity, &s.Price)
		return s, err
	},
}

var demographicsSpec = Spec[entity.Demographics]{
	Name:    pgx.Identifier{"cleansed", "customer_demographics"},
	Columns: []string{"customer_id", "birth_date", "gender"},
	OrderBy: "customer_id, birth_date, gender",
	Values: func(d entity.Demographics) []any {
		return []any{d.ID, d.BirthDate, d.Gender}
	},
	Scan: func(row pgx.CollectableRow) (entity.Demographics, error) {
		var d entity.Demographics
		err := row.Scan(&d.ID, &d.BirthDate, &d.Gender)
		return d, err
	},
}

var locationSpec = Spec[entity.Location]{
	Name:    pgx.Identifier{"cleansed", "customer_locations"},
	Columns: []string{"customer_id", "country"},
	OrderBy: "customer_id, country",
	Values: func(l entity.Location) []any {
		return []any{l.ID, l.Country}
	},
	Scan: func(row pgx.CollectableRow) (entity.Location, error) {
		var l entity.Location
		err := row.Scan(&l.ID, &l.Country)
		return l, err
	},
}

var categorySpec = Spec[entity.Category]{
	Name:    pgx.Identifier{"cleansed", "product_categories"},
	Columns: []string{"category_id", "category", "subcategory", "maintenance"},
	OrderBy: "category_id, category, subcategory, maintenance",
	Values: func(c entity.Category) []any {
		return []any{c.ID, c.Category, c.Subcategory, c.Maintenance}
	},
	Scan: func(row pgx.CollectableRow) (entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Category, &c.Subcategory, &c.Maintenance)
		return c, err
	},
}

var customerDimSpec = Spec[entity.CustomerDim]{
	Name:    pgx.Identifier{"dim", "customers"},
	Columns: []string{"customer_sk", "customer_id", "customer_number", "first_name", "last_name", "country", "marital_status", "gender", "birth_date", "create_date"},
	OrderBy: "customer_sk",
	Values: func(c entity.CustomerDim) []any {
		return []any{c.CustomerKey, c.ID, c.Number, c.FirstName, c.LastName, c.Country, c.MaritalStatus, c.Gender, c.BirthDate, c.CreateDate}
	},
	Scan: func(row pgx.CollectableRow) (entity.CustomerDim, error) {
		var c entity.CustomerDim
		err := row.Scan(&c.CustomerKey, &c.ID, &c.Number, &c.FirstName, &c.LastName, &c.Country, &c.MaritalStatus, &c.Gender, &c.BirthDate, &c.CreateDate)
		return c, err
	},
}

var productDimSpec = Spec[entity.ProductDim]{
	Name:    pgx.Identifier{"dim", "products"},
	Columns: []string{"product_sk", "product_id", "product_number", "product_name", "category_id", "category", "subcategory", "maintenance", "cost", "product_line", "start_date"},
	OrderBy: "product_sk",
	Values: func(p entity.ProductDim) []any {
		return []any{p.ProductKey, p.ID, p.Number, p.Name, p.CategoryID, p.Category, p.Subcategory, p.Maintenance, p.Cost, p.Line, p.StartDate}
	},
	Scan: func(row pgx.CollectableRow) (entity.ProductDim, error) {
		var p entity.ProductDim
		err := row.Scan(&p.ProductKey, &p.ID, &p.Number, &p.Name, &p.CategoryID, &p.Category, &p.Subcategory, &p.Maintenance, &p.Cost, &p.Line, &p.StartDate)
		return p, err
	},
}

var salesFactSpec = Spec[entity.SalesFact]{
	Name:    pgx.Identifier{"dim", "sales_facts"},
	Columns: []string{"order_number", "product_sk", "customer_sk", "order_date", "ship_date", "due_date", "sales_amount", "quantity", "price"},
	OrderBy: "order_number, product_sk, customer_sk, order_date, ship_date, due_date, sales_amount, quantity, price",
	Values: func(f entity.SalesFact) []any {
		return []any{f.OrderNumber, f.ProductKey, f.CustomerKey, f.OrderDate, f.ShipDate, f.DueDate, f.Amount, f.Quantity, f.Price}
	},
	Scan: func(row pgx.CollectableRow) (entity.SalesFact, error) {
		var f entity.SalesFact
		err := row.Scan(&f.OrderNumber, &f.ProductKey, &f.CustomerKey, &f.OrderDate, &f.ShipDate, &f.DueDate, &f.Amount, &f.Quantity, &f.Price)
		return f, err
	},
}
