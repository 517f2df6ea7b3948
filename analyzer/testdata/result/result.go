package result

import "slices"

func Len(xs []int) (n int) {
	for range slices.Values(xs) {
		n++
	}

	return n
}

func Contains(xs []int, x int) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}

	return false
}

var _ = Contains([]int{1}, 1)
