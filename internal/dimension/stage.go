package dimension

import (
	"context"
	"fmt"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/run"
	"github.com/jlowell/salesdw/internal/store"
)

// Stage materializes the dimensional layer from the cleansed layer.
// Both dimensions are assembled before the fact: the fact reads their
// surrogate keys, which only exist once the dimension snapshots are
// computed. That edge is a hard ordering dependency, not a cycle.
type Stage struct {
	In  store.Cleansed
	Out store.Dimensional
}

// Run assembles customers, then products, then the sales fact.
func (s Stage) Run(ctx context.Context, rc *run.Context) error {
	customers, err := s.assembleCustomers(ctx, rc)
	if err != nil {
		return err
	}
	products, err := s.assembleProducts(ctx, rc)
	if err != nil {
		return err
	}
	return s.assembleSales(ctx, rc, customers, products)
}

func (s Stage) assembleCustomers(ctx context.Context, rc *run.Context) ([]entity.CustomerDim, error) {
	const stage = "dimension.customers"
	start := rc.Now()

	profiles, err := s.In.Customers.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: read customers: %w", stage, err)
	}
	demo, err := s.In.Demographics.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: read demographics: %w", stage, err)
	}
	loc, err := s.In.Locations.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: read locations: %w", stage, err)
	}

	rows := Customers(profiles, demo, loc)
	n, err := s.Out.Customers.ReplaceAll(ctx, rows)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: replace: %w", stage, err)
	}

	rc.Complete(ctx, stage, start, n)
	return rows, nil
}

func (s Stage) assembleProducts(ctx context.Context, rc *run.Context) ([]entity.ProductDim, error) {
	const stage = "dimension.products"
	start := rc.Now()

	products, err := s.In.Products.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: read products: %w", stage, err)
	}
	cats, err := s.In.Categories.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: read categories: %w", stage, err)
	}

	rows := Products(products, cats)
	n, err := s.Out.Products.ReplaceAll(ctx, rows)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return nil, fmt.Errorf("%s: replace: %w", stage, err)
	}

	rc.Complete(ctx, stage, start, n)
	return rows, nil
}

func (s Stage) assembleSales(ctx context.Context, rc *run.Context, customers []entity.CustomerDim, products []entity.ProductDim) error {
	const stage = "dimension.sales_facts"
	start := rc.Now()

	items, err := s.In.SalesItems.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return fmt.Errorf("%s: read sales items: %w", stage, err)
	}

	n, err := s.Out.Sales.ReplaceAll(ctx, Sales(items, customers, products))
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return fmt.Errorf("%s: replace: %w", stage, err)
	}

	rc.Complete(ctx, stage, start, n)
	return nil
}
