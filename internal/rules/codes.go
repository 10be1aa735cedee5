// Package rules supplies the transformation primitives shared by the
// cleansing stage and the quality checks: code-to-label mapping,
// character-class stripping, safe division, most-recent-wins
// deduplication, and compact date decoding.
//
// Every primitive is a pure function (or value) with no entity knowledge,
// so each is unit-testable on its own.
package rules

import "strings"

// CodeTable maps source codes to display labels with an explicit default
// for anything unrecognized. Lookups trim surrounding whitespace and
// compare case-insensitively; the mapping itself is exact-match.
type CodeTable struct {
	labels  map[string]string
	missing string
}

// NewCodeTable builds a code table. Codes are matched uppercased; the
// default label is returned for empty or unmapped input.
func NewCodeTable(missing string, labels map[string]string) CodeTable {
	up := make(map[string]string, len(labels))
	for code, label := range labels {
		up[strings.ToUpper(code)] = label
	}
	return CodeTable{labels: up, missing: missing}
}

// Label resolves a raw code to its label, falling back to the default.
func (t CodeTable) Label(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return t.missing
	}
	if label, ok := t.labels[code]; ok {
		return label
	}
	return t.missing
}
