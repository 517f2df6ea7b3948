package guarded

func Bounded(n int) int {
	return min(Count(n), 10) // want "min_max_builtins requires go1.21"
}
