package basic

import (
	"slices"
	"strings"
)

func Sum[T int | float64](xs []T) (s T) {
	for i := range len(xs) { // want "range_over_int requires go1.22"
		s += xs[i]
	}

	return min(s, 100) // want "min_max_builtins requires go1.21"
}

func Has(xs []string, x string) bool {
	return slices.Contains(xs, x) // want "slices requires go1.21" "slices.Contains requires go1.21"
}

func Key(s string) (string, bool) {
	before, _, found := strings.Cut(s, "=")

	return before, found
}

func Reset(m map[string]int) {
	clear(m) //nolint:minver
}

func Find(xs []string, x string) int {
	return slices.Index(xs, x) // want "slices requires go1.21"
}
