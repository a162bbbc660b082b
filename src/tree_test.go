package pushvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// item parses a single item from src
func item(t *testing.T, src string) Item {
	t.Helper()
	program, err := Parse(src, nil)
	require.NoError(t, err)
	require.Len(t, program.Items, 1)
	return program.Items[0]
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, Size(EmptyList()))
	assert.Equal(t, 1, Size(NewInt(4)))
	assert.Equal(t, 6, Size(item(t, "( 1 2 ( 3 ) 4 )")))

	a, b := item(t, "( 1 ( 2 ) )"), NewInstruction("CODE.CONS")
	assert.Equal(t, 1+Size(a)+Size(b), Size(NewList(a, b)))
}

func TestShallowSizeAndLength(t *testing.T) {
	tree := item(t, "( 1 2 ( 3 ) 4 )")
	assert.Equal(t, 5, ShallowSize(tree))
	assert.Equal(t, 4, Length(tree))
	assert.Equal(t, 1, ShallowSize(NewBool(true)))
	assert.Equal(t, 1, Length(NewBool(true)))
	assert.Equal(t, 0, Length(EmptyList()))
}

func TestNormalizeIndex(t *testing.T) {
	tests := []struct {
		index, size, want int
	}{
		{0, 6, 0},
		{5, 6, 5},
		{6, 6, 0},
		{10, 6, 4},
		{-1, 6, 5},
		{-13, 6, 5},
		{3, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIndex(tt.index, tt.size), "NormalizeIndex(%d, %d)", tt.index, tt.size)
	}
}

func TestTraverse(t *testing.T) {
	tree := item(t, "( 1 2 ( 3 ) 4 )")

	t.Run("index zero is the whole tree", func(t *testing.T) {
		for _, src := range []string{"( 1 2 ( 3 ) 4 )", "5", "( )", "CODE.CONS"} {
			it := item(t, src)
			assert.Equal(t, it.String(), Traverse(it, 0).String())
		}
	})

	t.Run("depth first points", func(t *testing.T) {
		want := []string{"( 1 2 ( 3 ) 4 )", "1", "2", "( 3 )", "3", "4"}
		for i, w := range want {
			assert.Equal(t, w, Traverse(tree, i).String(), "point %d", i)
		}
	})

	t.Run("normalization is periodic", func(t *testing.T) {
		s := Size(tree)
		for k := -20; k <= 20; k++ {
			assert.Equal(t, Traverse(tree, NormalizeIndex(k, s)).String(), Traverse(tree, k).String(), "index %d", k)
		}
		assert.Equal(t, Traverse(tree, 4).String(), Traverse(tree, 10).String())
		assert.Equal(t, "3", Traverse(tree, 10).String())
	})

	t.Run("result is a copy", func(t *testing.T) {
		sub := Traverse(tree, 3).(List)
		sub.Items[0] = NewInt(99)
		assert.Equal(t, "( 1 2 ( 3 ) 4 )", tree.String())
	})
}

func TestNth(t *testing.T) {
	tree := item(t, "( 1 2 ( 3 ) 4 )")
	assert.Equal(t, tree.String(), Nth(tree, 0).String())
	assert.Equal(t, "1", Nth(tree, 1).String())
	assert.Equal(t, "( 3 )", Nth(tree, 3).String())
	assert.Equal(t, "4", Nth(tree, 9).String())
	assert.Equal(t, "7", Nth(NewInt(7), 3).String())
	assert.Equal(t, "( )", Nth(EmptyList(), 5).String())
}

func TestInsert(t *testing.T) {
	tree := item(t, "( 1 2 ( 3 ) 4 )")

	t.Run("replaces the addressed point", func(t *testing.T) {
		got, ok := Insert(tree, NewInt(5), 4)
		require.True(t, ok)
		assert.Equal(t, "( 1 2 ( 5 ) 4 )", got.String())
		assert.Equal(t, "( 1 2 ( 3 ) 4 )", tree.String(), "original untouched")
	})

	t.Run("index zero replaces the root", func(t *testing.T) {
		got, ok := Insert(tree, NewName("x"), 0)
		require.True(t, ok)
		assert.Equal(t, "x", got.String())
	})

	t.Run("round trip with extraction", func(t *testing.T) {
		for _, x := range []Item{NewInt(9), item(t, "( 7 ( 8 ) )")} {
			for i := 0; i < Size(tree); i++ {
				got, ok := Insert(tree, x, i)
				require.True(t, ok)
				assert.Equal(t, x.String(), Traverse(got, i).String(), "insert %s at %d", x, i)
			}
		}
	})

	t.Run("indices wrap", func(t *testing.T) {
		a, _ := Insert(tree, NewInt(0), 10)
		b, _ := Insert(tree, NewInt(0), 4)
		assert.Equal(t, b.String(), a.String())
	})
}

func TestContains(t *testing.T) {
	tree := item(t, "( 1 2 ( 3 ) 4 )")

	pos, ok := Contains(tree, NewInt(3))
	assert.True(t, ok)
	assert.Equal(t, 4, pos)

	pos, ok = Contains(tree, item(t, "( 3 )"))
	assert.True(t, ok)
	assert.Equal(t, 3, pos)

	pos, ok = Contains(tree, tree)
	assert.True(t, ok)
	assert.Equal(t, 0, pos)

	pos, ok = Contains(tree, NewInt(7))
	assert.False(t, ok)
	assert.Equal(t, -1, pos)

	pos, ok = Contains(item(t, "( ( 1 1 ) 2 )"), NewInt(2))
	assert.True(t, ok)
	assert.Equal(t, 4, pos)
}

func TestContainer(t *testing.T) {
	haystack := item(t, "( 5 4 ( 3 ( 3 3 ) ( 2 1 ) 3 ) )")

	c, ok := Container(haystack, item(t, "( 2 1 )"))
	require.True(t, ok)
	assert.Equal(t, "( 3 ( 3 3 ) ( 2 1 ) 3 )", c.String())

	c, ok = Container(haystack, NewInt(3))
	require.True(t, ok)
	assert.Equal(t, "( 3 3 )", c.String())

	_, ok = Container(haystack, NewInt(5))
	assert.False(t, ok, "top-level occurrence has no container")

	_, ok = Container(item(t, "( 1 2 )"), NewInt(1))
	assert.False(t, ok)

	c, ok = Container(item(t, "( 1 ( 1 ) )"), NewInt(1))
	require.True(t, ok)
	assert.Equal(t, "( 1 )", c.String(), "nested occurrence still found")

	_, ok = Container(haystack, NewInt(42))
	assert.False(t, ok)

	_, ok = Container(NewInt(5), NewInt(5))
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"( 1 ( 2 3 ) )", "( 1 ( 2 3 ) )", true},
		{"( 1 ( 2 3 ) )", "( 1 ( 2 4 ) )", false},
		{"( 1 2 )", "( 1 2 3 )", false},
		{"( )", "( )", true},
		{"( 1 )", "1", false},
		{"1.0001", "1.0", true},
		{"INTEGER.+", "INTEGER.+", true},
		{"INTEGER.+", "INTEGER.-", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(item(t, tt.a), item(t, tt.b)))
		})
	}
}

func TestSearchDeepTree(t *testing.T) {
	deep := Item(NewInt(7))
	for i := 0; i < 3000; i++ {
		deep = List{Items: []Item{NewInt(1), deep}}
	}

	pos, ok := Contains(deep, NewInt(7))
	require.True(t, ok)
	assert.Equal(t, Size(deep)-1, pos)

	c, ok := Container(deep, NewInt(7))
	require.True(t, ok)
	assert.Equal(t, "( 1 7 )", c.String())

	got, root := Substitute(deep, NewInt(7), NewInt(8))
	assert.False(t, root)
	_, ok = Contains(got, NewInt(8))
	assert.True(t, ok)
}

func TestDiscrepancy(t *testing.T) {
	assert.Equal(t, 1, Discrepancy(item(t, "( 1 2 )"), item(t, "( 0 2 )")))
	assert.Equal(t, 1, Discrepancy(item(t, "( 1 2 3 )"), item(t, "( 1 2 )")))
	assert.Equal(t, 1, Discrepancy(NewInt(1), NewInt(2)))
	assert.Equal(t, 1, Discrepancy(NewInt(1), item(t, "( 1 )")))

	for _, src := range []string{"( )", "7", "( 1 ( 2 3 ) TRUE )"} {
		it := item(t, src)
		assert.Zero(t, Discrepancy(it, it), src)
	}
}

func TestSubstitute(t *testing.T) {
	target := item(t, "( 1 2 ( 3 ) ( ) )")

	got, root := Substitute(target, EmptyList(), NewInt(4))
	assert.False(t, root)
	assert.Equal(t, "( 1 2 ( 3 ) 4 )", got.String())

	got, root = Substitute(item(t, "( 3 ( 3 ) )"), NewInt(3), NewName("x"))
	assert.False(t, root)
	assert.Equal(t, "( x ( x ) )", got.String())

	got, root = Substitute(target, target, NewInt(4))
	assert.True(t, root)
	assert.Equal(t, "4", got.String())

	assert.Equal(t, "( 1 2 ( 3 ) ( ) )", target.String(), "original untouched")
}

func TestCopyIsDeep(t *testing.T) {
	orig := item(t, "( 1 ( 2 ) )").(List)
	dup := Copy(orig).(List)
	dup.Items[1].(List).Items[0] = NewInt(9)
	assert.Equal(t, "( 1 ( 2 ) )", orig.String())

	n := NewInt(3)
	c := Copy(n).(Literal)
	c.Int.SetInt64(4)
	assert.Equal(t, "3", n.String())
}
