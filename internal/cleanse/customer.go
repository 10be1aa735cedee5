// Package cleanse implements the per-entity transformations from the raw
// layer to the cleansed layer. Each transform is a pure, total function of
// the full raw row set for its entity: malformed values coerce to a
// sentinel (null, n/a, 0) and never surface as errors.
package cleanse

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jlowell/salesdw/internal/entity"
	"github.com/jlowell/salesdw/internal/rules"
)

var (
	maritalStatus = rules.NewCodeTable(entity.NA, map[string]string{
		"S": "Single",
		"M": "Married",
	})
	genderCode = rules.NewCodeTable(entity.NA, map[string]string{
		"F": "Female",
		"M": "Male",
	})
)

// Customers keeps exactly one row per business id (most recent creation
// date wins, earlier input row on ties), expands the marital-status and
// gender codes, and trims incidental whitespace. Rows without a business
// id are dropped: they cannot satisfy the one-row-per-id invariant.
func Customers(raw []entity.RawCustomerProfile) []entity.Customer {
	keyed := make([]entity.RawCustomerProfile, 0, len(raw))
	for _, r := range raw {
		if r.ID.Valid {
			keyed = append(keyed, r)
		}
	}

	latest := rules.KeepFirst(keyed,
		func(r entity.RawCustomerProfile) int32 { return r.ID.Int32 },
		func(a, b entity.RawCustomerProfile) bool { return dateAfter(a.CreateDate, b.CreateDate) },
	)

	out := make([]entity.Customer, 0, len(latest))
	for _, r := range latest {
		out = append(out, entity.Customer{
			ID:            r.ID.Int32,
			Key:           text(r.Key),
			FirstName:     text(r.FirstName),
			LastName:      text(r.LastName),
			MaritalStatus: maritalStatus.Label(text(r.MaritalStatus)),
			Gender:        genderCode.Label(text(r.Gender)),
			CreateDate:    r.CreateDate,
		})
	}
	return out
}

// text unwraps a nullable text value and trims surrounding whitespace.
func text(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return strings.TrimSpace(t.String)
}

// dateAfter reports whether a is strictly later than b; a null date sorts
// before any valid one.
func dateAfter(a, b pgtype.Date) bool {
	if !a.Valid {
		return false
	}
	if !b.Valid {
		return true
	}
	return a.Time.After(b.Time)
}
