package cleanse

import "github.com/jlowell/salesdw/internal/entity"

// Categories passes the category hierarchy through unchanged; the extract
// is validated clean upstream.
func Categories(raw []entity.RawCategory) []entity.Category {
	out := make([]entity.Category, 0, len(raw))
	for _, r := range raw {
		out = append(out, entity.Category{
			ID:          r.ID.String,
			Category:    r.Category.String,
			Subcategory: r.Subcategory.String,
			Maintenance: r.Maintenance.String,
		})
	}
	return out
}
