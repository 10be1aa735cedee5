package cleanse

import (
	"strings"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/rules"
)

// Locations strips the hyphens from ERP customer ids so they match the
// CRM alternate key, and normalizes the free-text country column.
//
// Country stripping removes only the line-break class: the extract embeds
// stray CR/LF bytes, but interior single spaces in multi-word names
// ("United States") must survive the else branch untouched.
func Locations(raw []entity.RawLocation) []entity.Location {
	out := make([]entity.Location, 0, len(raw))
	for _, r := range raw {
		out = append(out, entity.Location{
			ID:      strings.ReplaceAll(text(r.ID), "-", ""),
			Country: normalizeCountry(text(r.Country)),
		})
	}
	return out
}

func normalizeCountry(s string) string {
	s = strings.TrimSpace(rules.Strip(s, rules.LineBreaks))
	switch strings.ToUpper(s) {
	case "DE":
		return "Germany"
	case "US", "USA":
		return "United States"
	case "":
		return entity.NA
	}
	return s
}
