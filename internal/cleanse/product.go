package cleanse

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/rules"
)

var productLine = rules.NewCodeTable(entity.NA, map[string]string{
	"M": "Mountain",
	"R": "Road",
	"S": "Other Sales",
	"T": "Touring",
})

// categoryPrefixLen is how many characters of the composite product key
// encode the category id.
const categoryPrefixLen = 5

// Products splits the composite product key, expands the product-line
// code, defaults missing cost to zero, and recomputes the lifecycle end
// date as one day before the next version's start date for the same
// product key. The raw end date is ignored entirely; the most recent
// version of each key keeps an open (null) end date.
func Products(raw []entity.RawProductCatalog) []entity.Product {
	out := make([]entity.Product, 0, len(raw))
	for _, r := range raw {
		catID, key := splitProductKey(text(r.Key))

		cost := decimal.Zero
		if r.Cost.Valid {
			cost = r.Cost.Decimal
		}

		out = append(out, entity.Product{
			ID:         r.ID.Int32,
			CategoryID: catID,
			Key:        key,
			Name:       text(r.Name),
			Cost:       cost,
			Line:       productLine.Label(text(r.Line)),
			StartDate:  r.StartDate,
		})
	}

	// Close-the-gap: stable sort by (key, start date) and look at the next
	// row in each partition. A null start date sorts first so it can never
	// shadow a dated version.
	slices.SortStableFunc(out, func(a, b entity.Product) int {
		if c := cmp.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return compareDates(a.StartDate, b.StartDate)
	})

	for i := range out {
		if i+1 < len(out) && out[i+1].Key == out[i].Key && out[i+1].StartDate.Valid {
			out[i].EndDate = pgtype.Date{
				Time:  out[i+1].StartDate.Time.AddDate(0, 0, -1),
				Valid: true,
			}
		}
	}
	return out
}

// splitProductKey separates the composite key into the category id prefix
// (dashes converted to underscores) and the product's own key. Keys
// shorter than the prefix yield an empty product key; the quality checks
// surface those rows.
func splitProductKey(composite string) (categoryID, key string) {
	if len(composite) <= categoryPrefixLen {
		return strings.ReplaceAll(composite, "-", "_"), ""
	}
	prefix := composite[:categoryPrefixLen]
	return strings.ReplaceAll(prefix, "-", "_"), composite[categoryPrefixLen+1:]
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
