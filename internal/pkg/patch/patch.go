package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalesceSlice treats a nil slice as absent. An empty, non-nil slice clears the value.
func CoalesceSlice[T any](s []T, fallback []T) []T {
	if s != nil {
		return s
	}
	return fallback
}
