package b

import "slices"

func Reset(m map[string]int, keys []string) bool {
	clear(m)

	return slices.Contains(keys, "")
}
