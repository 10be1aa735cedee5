// Package dimension assembles the analytics-ready model from cleansed
// rows: the customer and product dimensions with per-run surrogate keys,
// then the sales fact that references them. Assembly order matters — the
// fact reads both dimensions' surrogate keys — and is enforced by Stage.
package dimension

import (
	"cmp"
	"slices"

	"github.com/jlowell/salesdw/internal/entity"
)

// Customers merges the cleansed profile, demographics, and location rows
// into one dimension row per business id. Every profile row survives even
// without an ERP match; CRM values win on conflict, so gender falls back
// to demographics only when the profile says n/a. Surrogate keys follow
// ascending business id, starting at 1, dense.
func Customers(profiles []entity.Customer, demo []entity.Demographics, loc []entity.Location) []entity.CustomerDim {
	demoByID := make(map[string]entity.Demographics, len(demo))
	for _, d := range demo {
		demoByID[d.ID] = d
	}
	locByID := make(map[string]entity.Location, len(loc))
	for _, l := range loc {
		locByID[l.ID] = l
	}

	ordered := slices.Clone(profiles)
	slices.SortStableFunc(ordered, func(a, b entity.Customer) int {
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]entity.CustomerDim, 0, len(ordered))
	for i, p := range ordered {
		row := entity.CustomerDim{
			CustomerKey:   int64(i + 1),
			ID:            p.ID,
			Number:        p.Key,
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			Country:       entity.NA,
			MaritalStatus: p.MaritalStatus,
			Gender:        p.Gender,
			CreateDate:    p.CreateDate,
		}

		if d, ok := demoByID[p.Key]; ok {
			row.BirthDate = d.BirthDate
			if row.Gender == entity.NA && d.Gender != "" {
				row.Gender = d.Gender
			}
		}
		if l, ok := locByID[p.Key]; ok && l.Country != "" {
			row.Country = l.Country
		}

		out = append(out, row)
	}
	return out
}
