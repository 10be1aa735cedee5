package dimension

import (
	"cmp"
	"slices"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jlowell/salesdw/internal/entity"
)

// Products keeps only the current version of each product key (open-ended
// lifecycle, null end date), enriches it with the category hierarchy, and
// assigns surrogate keys by ascending (start date, product key) order.
// An unmatched category id leaves the hierarchy columns empty.
func Products(products []entity.Product, cats []entity.Category) []entity.ProductDim {
	catByID := make(map[string]entity.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	current := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if !p.EndDate.Valid {
			current = append(current, p)
		}
	}

	slices.SortStableFunc(current, func(a, b entity.Product) int {
		if c := compareDates(a.StartDate, b.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})

	out := make([]entity.ProductDim, 0, len(current))
	for i, p := range current {
		row := entity.ProductDim{
			ProductKey: int64(i + 1),
			ID:         p.ID,
			Number:     p.Key,
			Name:       p.Name,
			CategoryID: p.CategoryID,
			Cost:       p.Cost,
			Line:       p.Line,
			StartDate:  p.StartDate,
		}
		if c, ok := catByID[p.CategoryID]; ok {
			row.Category = c.Category
			row.Subcategory = c.Subcategory
			row.Maintenance = c.Maintenance
		}
		out = append(out, row)
	}
	return out
}

// compareDates orders dates ascending with nulls first.
func compareDates(a, b pgtype.Date) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	}
	return a.Time.Compare(b.Time)
}
