package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jlowell/salesdw/internal/run"
	"github.com/jlowell/salesdw/internal/store"
)

// Loader ingests the six source extracts from a directory into the raw
// layer. Each entity expects one file named <entity>.csv; a missing file
// is an infrastructure failure (the scheduler guarantees full extracts),
// a malformed row inside a file is not.
type Loader struct {
	Raw store.Raw
	Dir string
}

// Run loads every extract, replacing each raw table. One stage metric is
// recorded per file under "load.<entity>".
func (l Loader) Run(ctx context.Context, rc *run.Context) ([]FileResult, error) {
	var results []FileResult

	collect := func(res FileResult, err error) error {
		if err != nil {
			return err
		}
		results = append(results, res)
		if res.Skipped > 0 {
			slog.Warn("skipped structurally broken rows",
				"entity", res.Entity, "skipped", res.Skipped)
		}
		return nil
	}

	if err := collect(loadFile(ctx, rc, l.Dir, customerProfileSpec, l.Raw.CustomerProfiles)); err != nil {
		return results, err
	}
	if err := collect(loadFile(ctx, rc, l.Dir, productCatalogSpec, l.Raw.ProductCatalog)); err != nil {
		return results, err
	}
	if err := collect(loadFile(ctx, rc, l.Dir, salesItemSpec, l.Raw.SalesItems)); err != nil {
		return results, err
	}
	if err := collect(loadFile(ctx, rc, l.Dir, demographicsSpec, l.Raw.Demographics)); err != nil {
		return results, err
	}
	if err := collect(loadFile(ctx, rc, l.Dir, locationSpec, l.Raw.Locations)); err != nil {
		return results, err
	}
	if err := collect(loadFile(ctx, rc, l.Dir, categorySpec, l.Raw.Categories)); err != nil {
		return results, err
	}
	return results, nil
}

func loadFile[T any](
	ctx context.Context,
	rc *run.Context,
	dir string,
	spec Spec[T],
	dest store.Table[T],
) (FileResult, error) {
	stage := "load." + spec.Entity
	start := rc.Now()
	path := filepath.Join(dir, spec.Entity+".csv")

	rows, skipped, err := readFile(path, spec)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return FileResult{}, fmt.Errorf("%s: %w", stage, err)
	}

	n, err := dest.ReplaceAll(ctx, rows)
	if err != nil {
		rc.Fail(ctx, stage, start, err)
		return FileResult{}, fmt.Errorf("%s: replace: %w", stage, err)
	}

	rc.Complete(ctx, stage, start, n)
	return FileResult{Entity: spec.Entity, Rows: n, Skipped: skipped}, nil
}
