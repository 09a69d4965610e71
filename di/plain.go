package di

// Plain is a construction-only holder: no reference tracking, no injectors.
// Collaborators are wired by assigning through Val or by passing them to the
// constructor.
type Plain[T any] struct {
	Val *T
}

// New constructs a Plain by calling ctor.
func New[T any](ctor func() *T) Plain[T] {
	return Plain[T]{Val: ctor()}
}
