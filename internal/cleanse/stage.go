package cleanse

import (
	"context"
	"fmt"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/run"
	"github.com/jlowell/salesdw/internal/store"
)

// Stage runs the six entity transforms, replacing each cleansed table
// with a freshly computed snapshot. The transforms are mutually
// independent; they run sequentially here because the row volumes never
// justify fan-out.
type Stage struct {
	Raw store.Raw
	Out store.Cleansed
}

// Run executes every transform, recording one stage metric per entity.
// The first infrastructure failure aborts the stage; already-replaced
// entities keep their new snapshots, pending ones keep their old.
func (s Stage) Run(ctx context.Context, rc *run.Context) error {
	if err := transform(ctx, rc, "cleanse.customers", s.Raw.CustomerProfiles, s.Out.Customers, Customers); err != nil {
		return err
	}
	if err := transform(ctx, rc, "cleanse.products", s.Raw.ProductCatalog, s.Out.Products, Products); err != nil {
		return err
	}
	if err := transform(ctx, rc, "cleanse.sales_items", s.Raw.SalesItems, s.Out.SalesItems, SalesItems); err != nil {
		return err
	}
	demographics := func(rows []entity.RawDemographics) []entity.Demographics {
		return DemographicsRows(rows, rc.Now())
	}
	if err := transform(ctx, rc, "cleanse.demographics", s.Raw.Demographics, s.Out.Demographics, demographics); err != nil {
		return err
	}
	if err := transform(ctx, rc, "cleanse.locations", s.Raw.Locations, s.Out.Locations, Locations); err != nil {
		return err
	}
	return transform(ctx, rc, "cleanse.categories", s.Raw.Categories, s.Out.Categories, Categories)
}

// transform reads a full raw snapshot, applies fn, and replaces the
// cleansed snapshot, bracketing the work with a stage metric.
func transform[R, C any](
	ctx context.Context,
	rc *run.Context,
	stage string,
	in store.Table[R],
	out store.Table[C],
	fn func([]R) []C,
) error {
	start := rc.Now()

	rows, err := in.ReadAll(ctx)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return fmt.Errorf("%s: read: %w", stage, err)
	}

	n, err := out.ReplaceAll(ctx, fn(rows))
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return fmt.Errorf("%s: replace: %w", stage, err)
	}

	rc.Complete(ctx, stage, start, n)
	return nil
}
