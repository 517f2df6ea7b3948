// Code generated by hand. DO NOT EDIT.

package basic

func Largest(a, b int) int {
	return max(a, b)
}
