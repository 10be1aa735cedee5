package rules

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const ymdLayout = "20060102"

// ParseYMD decodes a date encoded as an 8-digit YYYYMMDD integer.
// Zero, wrong-length, and calendar-impossible values coerce to a null
// date rather than an error; the raw layer keeps whatever the source sent.
func ParseYMD(n pgtype.Int4) pgtype.Date {
	if !n.Valid || n.Int32 == 0 {
		return pgtype.Date{}
	}
	s := strconv.FormatInt(int64(n.Int32), 10)
	if len(s) != 8 {
		return pgtype.Date{}
	}
	t, err := time.Parse(ymdLayout, s)
	if err != nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}
