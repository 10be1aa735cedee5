package rules

import (
	"cmp"
	"slices"
)

// KeepFirst groups rows by key, orders each group so the preferred row
// comes first, and keeps exactly that row per group. The sort is stable,
// so rows the comparator considers equal keep their input order and the
// result is deterministic. Output is ordered by ascending key.
//
// better(a, b) must report whether a should win over b; a comparator that
// returns false for equal rows makes the earliest input row the
// tie-breaker.
func KeepFirst[T any, K cmp.Ordered](rows []T, key func(T) K, better func(a, b T) bool) []T {
	if len(rows) == 0 {
		return nil
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if c := cmp.Compare(key(a), key(b)); c != 0 {
			return c
		}
		if better(a, b) {
			return -1
		}
		if better(b, a) {
			return 1
		}
		return 0
	})

	out := make([]T, 0, len(sorted))
	for i, row := range sorted {
		if i == 0 || key(row) != key(sorted[i-1]) {
			out = append(out, row)
		}
	}
	return out
}
