package internal

// Reversed returns a reversed copy of path. A nil path stays nil.
func Reversed[T any](path []T) []T {
	if path == nil {
		return nil
	}
	out := make([]T, len(path))
	for i, j := 0, len(path)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = path[j]
	}
	return out
}

// Cost sums step(a, b) over consecutive pairs of path.
func Cost[T any](path []T, step func(a, b T) float64) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += step(path[i-1], path[i])
	}
	return total
}
