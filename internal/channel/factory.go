//go:build !debug

package channel

// New creates a new channel with the given buffer size.
// In production builds this returns a buffered channel so slow sinks do
// not stall classification.
func New[T any](size int) Channel[T] {
	return NewBuffered[T](size)
}
