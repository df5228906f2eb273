package progcalc

import "errors"

// Fatal errors. They denote a defect in the calculator, not a user error.
var (
	ErrStackEmpty = errors.New("stack empty")
	ErrStackFull  = errors.New("stack full")
)

// stack is a bounded LIFO. Popped items remain in their slot until
// overwritten by a push and can still be read with at.
type stack[T any] struct {
	items []T
	n     int
}

func newStack[T any](size int) *stack[T] {
	return &stack[T]{items: make([]T, size)}
}

func (s *stack[T]) len() int { return s.n }

func (s *stack[T]) reset() { s.n = 0 }

func (s *stack[T]) push(v T) error {
	if s.n == len(s.items) {
		return ErrStackFull
	}
	s.items[s.n] = v
	s.n++
	return nil
}

func (s *stack[T]) pop() (T, error) {
	if s.n == 0 {
		var z T
		return z, ErrStackEmpty
	}
	s.n--
	return s.items[s.n], nil
}

func (s *stack[T]) peek() (T, error) {
	if s.n == 0 {
		var z T
		return z, ErrStackEmpty
	}
	return s.items[s.n-1], nil
}

// at returns the raw slot i, regardless of the stack length.
func (s *stack[T]) at(i int) T { return s.items[i] }

// set overwrites the raw slot i.
func (s *stack[T]) set(i int, v T) { s.items[i] = v }

// fill sets every slot to v.
func (s *stack[T]) fill(v func() T) {
	for i := range s.items {
		s.items[i] = v()
	}
}
