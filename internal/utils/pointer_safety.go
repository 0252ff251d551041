package utils

// Ptr returns a pointer to a copy of v, so callers hand out pointers
// without exposing internal state.
func Ptr[T any](v T) *T {
	return &v
}
