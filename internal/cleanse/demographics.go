package cleanse

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/rules"
)

// legacyIDPrefix is the 3-character system prefix some ERP customer ids
// still carry; stripping it yields the join key used by the CRM extract.
const legacyIDPrefix = "NAS"

// genderText matches the stripped free-text gender values. Unlike the CRM
// single-letter codes, the ERP extract spells the words out.
var genderText = rules.NewCodeTable(entity.NA, map[string]string{
	"F":      "Female",
	"FEMALE": "Female",
	"M":      "Male",
	"MALE":   "Male",
})

// DemographicsRows strips the legacy id prefix, nulls birthdates that lie
// in the future relative to now, and normalizes the free-text gender
// column. Gender matching runs on the value with all whitespace and
// control characters removed, since the extract embeds both.
func DemographicsRows(raw []entity.RawDemographics, now time.Time) []entity.Demographics {
	out := make([]entity.Demographics, 0, len(raw))
	for _, r := range raw {
		id := strings.TrimPrefix(text(r.ID), legacyIDPrefix)

		birth := r.BirthDate
		if birth.Valid && birth.Time.After(now) {
			birth = pgtype.Date{}
		}

		gender := genderText.Label(rules.Strip(text(r.Gender), rules.WhitespaceAndControl))

		out = append(out, entity.Demographics{
			ID:        id,
			BirthDate: birth,
			Gender:    gender,
		})
	}
	return out
}
