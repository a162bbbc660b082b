package pushvm

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intStack builds a stack whose rendering (top first) lists vs in order
func intStack(vs ...int) *Stack[int] {
	s := NewStack(strconv.Itoa)
	for i := len(vs) - 1; i >= 0; i-- {
		s.Push(vs[i])
	}
	return s
}

func TestStackPushPop(t *testing.T) {
	s := NewStack(strconv.Itoa)
	_, ok := s.Pop()
	assert.False(t, ok, "pop on empty stack")

	s.Push(1)
	s.Push(2)
	s.PushMany([]int{3, 4})
	assert.Equal(t, "4 3 2 1", s.String())
	assert.Equal(t, 4, s.Size())

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, []int{3, 2, 1}, s.Items())
}

func TestStackPopMany(t *testing.T) {
	s := intStack(1, 2, 3)

	_, ok := s.PopMany(4)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Size(), "nothing removed on underflow")

	vs, ok := s.PopMany(2)
	require.True(t, ok)
	assert.Equal(t, []int{2, 1}, vs, "bottom to top")
	assert.Equal(t, "3", s.String())

	vs, ok = s.CopyMany(1)
	require.True(t, ok)
	assert.Equal(t, []int{3}, vs)
	assert.Equal(t, 1, s.Size())
}

func TestStackPeekAndReplace(t *testing.T) {
	s := intStack(1, 2, 3)
	v, _ := s.Peek(1)
	assert.Equal(t, 2, v)
	v, _ = s.Peek(10)
	assert.Equal(t, 3, v, "depth clamped to the bottom")
	v, _ = s.Peek(-4)
	assert.Equal(t, 1, v, "negative depth clamped to the top")

	require.True(t, s.Replace(0, 9))
	assert.Equal(t, "9 2 3", s.String())

	empty := NewStack(strconv.Itoa)
	_, ok := empty.Peek(0)
	assert.False(t, ok)
	assert.False(t, empty.Replace(0, 1))
}

func TestStackYank(t *testing.T) {
	s := intStack(1, 2, 3, 4, 5)
	s.Yank(3)
	assert.Equal(t, "4 1 2 3 5", s.String())

	s = intStack(1, 2, 3)
	s.Yank(2)
	assert.Equal(t, "3 1 2", s.String(), "rot")

	s = intStack(1, 2, 3)
	s.Yank(0)
	assert.Equal(t, "1 2 3", s.String(), "yank(0) is identity")

	s = intStack(1, 2, 3)
	s.Yank(99)
	assert.Equal(t, "3 1 2", s.String(), "depth clamped")

	NewStack(strconv.Itoa).Yank(1)
}

func TestStackShove(t *testing.T) {
	s := intStack(1, 2, 3, 4)
	s.Shove(2)
	assert.Equal(t, "2 3 1 4", s.String())

	s = intStack(1, 2)
	s.Shove(1)
	assert.Equal(t, "2 1", s.String(), "swap")

	s = intStack(1, 2, 3)
	s.Shove(-5)
	assert.Equal(t, "1 2 3", s.String())

	NewStack(strconv.Itoa).Shove(1)
}

func TestStackShoveYankRestoresTop(t *testing.T) {
	for d := 0; d < 6; d++ {
		s := intStack(1, 2, 3, 4, 5)
		s.Shove(d)
		s.Yank(d)
		assert.Equal(t, "1 2 3 4 5", s.String(), "depth %d", d)
	}
}

func TestStackFlush(t *testing.T) {
	s := intStack(1, 2, 3)
	s.Flush()
	assert.Zero(t, s.Size())
	assert.Equal(t, "", s.String())
	s.Push(7)
	assert.Equal(t, "7", s.String())
}

func TestIndexPair(t *testing.T) {
	p := NewIndexPair(3)
	assert.Equal(t, "0/3", p.String())
	assert.False(t, p.Done())
	p.Current = 3
	assert.True(t, p.Done())
}
