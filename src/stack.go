package pushvm

import (
	"fmt"
	"strings"
)

// Stack is a LIFO container with deep, position-indexed access. The top of
// the stack is depth 0. Depths are clamped into range; operations on an
// empty stack do nothing.
type Stack[T any] struct {
	items  []T
	format func(T) string
}

// NewStack creates an empty stack that renders its elements with format
func NewStack[T any](format func(T) string) *Stack[T] {
	if format == nil {
		format = func(v T) string { return fmt.Sprint(v) }
	}
	return &Stack[T]{format: format}
}

// Size returns the number of elements
func (s *Stack[T]) Size() int {
	return len(s.items)
}

// Flush removes every element
func (s *Stack[T]) Flush() {
	clear(s.items)
	s.items = s.items[:0]
}

// Push puts v on top
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// PushMany pushes vs in order so the last element ends on top
func (s *Stack[T]) PushMany(vs []T) {
	s.items = append(s.items, vs...)
}

// Pop removes and returns the top element
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// PopMany removes the top n elements and returns them ordered bottom to top.
// Nothing is removed unless at least n elements exist.
func (s *Stack[T]) PopMany(n int) ([]T, bool) {
	vs, ok := s.CopyMany(n)
	if !ok {
		return nil, false
	}
	s.items = s.items[:len(s.items)-n]
	return vs, true
}

// CopyMany returns the top n elements ordered bottom to top without
// removing them
func (s *Stack[T]) CopyMany(n int) ([]T, bool) {
	if n < 0 || n > len(s.items) {
		return nil, false
	}
	vs := make([]T, n)
	copy(vs, s.items[len(s.items)-n:])
	return vs, true
}

// Clamp corrects depth into [0, size-1]
func (s *Stack[T]) Clamp(depth int) int {
	if depth > len(s.items)-1 {
		depth = len(s.items) - 1
	}
	if depth < 0 {
		depth = 0
	}
	return depth
}

// Peek returns the element at depth (0 is the top) without removing it
func (s *Stack[T]) Peek(depth int) (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1-s.Clamp(depth)], true
}

// Top is Peek(0)
func (s *Stack[T]) Top() (T, bool) {
	return s.Peek(0)
}

// Replace overwrites the element at depth
func (s *Stack[T]) Replace(depth int, v T) bool {
	if len(s.items) == 0 {
		return false
	}
	s.items[len(s.items)-1-s.Clamp(depth)] = v
	return true
}

// Yank removes the element at depth and pushes it on top, preserving the
// order of the rest
func (s *Stack[T]) Yank(depth int) {
	if len(s.items) == 0 {
		return
	}
	i := len(s.items) - 1 - s.Clamp(depth)
	v := s.items[i]
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = v
}

// Shove removes the top element and reinserts it so that it ends up depth
// positions below the new top
func (s *Stack[T]) Shove(depth int) {
	if len(s.items) == 0 {
		return
	}
	top := len(s.items) - 1
	i := top - s.Clamp(depth)
	v := s.items[top]
	copy(s.items[i+1:], s.items[i:top])
	s.items[i] = v
}

// Items returns a snapshot of the stack, top first
func (s *Stack[T]) Items() []T {
	out := make([]T, len(s.items))
	for i, v := range s.items {
		out[len(s.items)-1-i] = v
	}
	return out
}

// String renders the elements top first, separated by spaces
func (s *Stack[T]) String() string {
	parts := make([]string, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		parts = append(parts, s.format(s.items[i]))
	}
	return strings.Join(parts, " ")
}
