//go:build go1.22

package versions

func Count(n int) (c int) {
	for range n {
		c++
	}

	return c
}
