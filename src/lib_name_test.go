package pushvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameLiterals(t *testing.T) {
	in := runSource(t, "a b NAME.SWAP NAME.DUP")
	assert.Equal(t, "a a b", in.State().Name.String())

	in = runSource(t, "a a NAME.= a b NAME.=")
	assert.Equal(t, "FALSE TRUE", in.State().Boolean.String())
	assert.Zero(t, in.State().Name.Size())
}

func TestNameQuoteAppliesOnce(t *testing.T) {
	in := runSource(t, "1 x INTEGER.DEFINE NAME.QUOTE x x NAME.QUOTE")
	assert.Equal(t, "x", in.State().Name.String())
	assert.Equal(t, "1", in.State().Integer.String())

	in.Reset()
	_, err := in.Execute("1 y INTEGER.DEFINE NAME.QUOTE 5 y")
	require.NoError(t, err)
	assert.Equal(t, "y", in.State().Name.String(), "a non-name literal does not clear the quote")
	assert.Equal(t, "5", in.State().Integer.String())
}

func TestNameRand(t *testing.T) {
	in := runSource(t, "1 taken INTEGER.DEFINE NAME.RAND NAME.RAND")
	require.Equal(t, 2, in.State().Name.Size())
	for _, name := range in.State().Name.Items() {
		assert.True(t, strings.HasPrefix(name, "n"))
		assert.Len(t, name, 8)
		assert.NotEqual(t, "taken", name)
	}
}

func TestNameRandBoundName(t *testing.T) {
	in := runSource(t, "NAME.RANDBOUNDNAME")
	assert.Zero(t, in.State().Name.Size(), "nothing bound")

	in = runSource(t, "1 only INTEGER.DEFINE NAME.RANDBOUNDNAME")
	assert.Equal(t, "only", in.State().Name.String())
}
