package versions

func Bounded(n int) int {
	return min(Count(n), 10)
}
