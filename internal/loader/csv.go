// Package loader bulk-loads source CSV extracts into the raw layer.
// The raw layer mirrors the files: cell text is kept verbatim (including
// embedded control characters — cleansing deals with those); only typed
// columns (integers, dates, numerics) are parsed, and unparseable typed
// cells load as null. Structurally broken rows (wrong column count) are
// skipped and counted, never fatal.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// HeaderIndex maps lowercased column names to their position in the row.
type HeaderIndex map[string]int

// Spec describes one raw entity's file: its expected columns and the
// function building a raw row from a record.
type Spec[T any] struct {
	Entity  string   // file stem and metric label, e.g. "customer_profiles"
	Columns []string // required header columns
	Build   func(row []string, idx HeaderIndex) T
}

// FileResult reports one loaded file.
type FileResult struct {
	Entity  string
	Rows    int64
	Skipped int
}

// readFile parses one CSV extract into raw rows. Windows extracts often
// carry a UTF-8 BOM and the ERP files occasionally contain invalid byte
// sequences; the x/text decoder strips the former and substitutes the
// latter without losing embedded control characters.
func readFile[T any](path string, spec Spec[T]) ([]T, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", spec.Entity, err)
	}
	defer f.Close()

	return readRecords(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()), spec)
}

func readRecords[T any](r io.Reader, spec Spec[T]) ([]T, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column-count defects are handled per row
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: read header: %w", spec.Entity, err)
	}
	idx, err := matchHeader(header, spec.Columns)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", spec.Entity, err)
	}

	var (
		rows    []T
		skipped int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: read row: %w", spec.Entity, err)
		}
		if emptyRecord(record) {
			continue
		}
		if len(record) < len(header) {
			skipped++
			continue
		}
		rows = append(rows, spec.Build(record, idx))
	}
	return rows, skipped, nil
}

// matchHeader validates that every expected column is present and returns
// the position index. Matching is case-insensitive on trimmed names.
func matchHeader(header, expected []string) (HeaderIndex, error) {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range expected {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func emptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cell returns the verbatim cell value for a column, empty when absent.
func cell(row []string, idx HeaderIndex, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// asText keeps the cell verbatim; only a fully empty cell becomes null.
func asText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// asInt4 parses an integer column; unparseable cells load as null.
func asInt4(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int4{}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(n), Valid: true}
}

// asDecimal parses a numeric column; unparseable cells load as null.
func asDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// dateLayouts covers the formats the two source systems emit.
var dateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006", "2006/01/02"}

// asDate parses a date column; unparseable cells load as null.
func asDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}
	return pgtype.Date{}
}
