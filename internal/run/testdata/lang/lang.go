package lang

import "slices"

func Has(xs []int, n int) bool {
	return slices.Contains(xs, min(n, 10))
}
