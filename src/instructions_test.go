package pushvm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionSetLoad(t *testing.T) {
	set := NewInstructionSet(DefaultConfig(), NewLogger(false))
	for _, name := range []string{
		"INTEGER.+", "FLOAT.COS", "BOOLEAN.XOR", "NAME.QUOTE", "CODE.SUBST",
		"EXEC.Y", "INDEX.CURRENT", "CODE.YANKDUP", "EXEC.STACKDEPTH",
	} {
		assert.True(t, set.Has(name), name)
	}
	assert.False(t, set.Has("EXEC.CMD"))
	assert.False(t, set.Has("INDEX.YANK"))
	assert.Equal(t, set.Names(), set.EnabledNames())
	assert.True(t, sortedStrings(set.Names()))
}

func sortedStrings(names []string) bool {
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			return false
		}
	}
	return true
}

func TestInstructionSetSelectedTypes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnabledTypes = []string{"BOOLEAN"}
	set := NewInstructionSet(cfg, NewLogger(false))
	for _, name := range set.Names() {
		assert.True(t, strings.HasPrefix(name, "BOOLEAN."), name)
	}
	assert.False(t, set.IsEnabled(TypeInteger))
}

func TestInstructionCollisionKeepsLast(t *testing.T) {
	var warnings bytes.Buffer
	logger := NewLogger(false)
	logger.SetOutput(&bytes.Buffer{}, &warnings)
	set := NewEmptyInstructionSet(logger)

	var calls []string
	set.Register("X.GO", TypeCode, func(*Context) { calls = append(calls, "first") })
	set.Register("X.GO", TypeCode, func(*Context) { calls = append(calls, "second") })

	def, ok := set.Lookup("X.GO")
	require.True(t, ok)
	def.Handler(&Context{})
	assert.Equal(t, []string{"second"}, calls)
	assert.Contains(t, warnings.String(), "X.GO registered twice")
}

func TestInstructionDisable(t *testing.T) {
	in := newTestInterpreter(t)
	set := in.Instructions()

	set.Disable(TypeFloat)
	_, ok := set.Lookup("FLOAT.+")
	assert.False(t, ok)
	assert.True(t, set.Has("FLOAT.+"), "still registered")
	assert.NotContains(t, set.EnabledNames(), "FLOAT.+")

	_, err := in.Execute("1.0 2.0 FLOAT.+")
	require.NoError(t, err)
	assert.Equal(t, "2.000 1.000", in.State().Float.String(), "disabled instruction is a noop")

	set.Enable(TypeFloat)
	in.Reset()
	_, err = in.Execute("1.0 2.0 FLOAT.+")
	require.NoError(t, err)
	assert.Equal(t, "3.000", in.State().Float.String())
}

func TestInstructionUnregister(t *testing.T) {
	set := NewInstructionSet(DefaultConfig(), NewLogger(false))
	set.logger.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	assert.True(t, set.Unregister("INTEGER.+"))
	assert.False(t, set.Has("INTEGER.+"))
	assert.False(t, set.Unregister("INTEGER.+"))
}

func TestCustomInstruction(t *testing.T) {
	in := newTestInterpreter(t)
	in.Instructions().Register("INTEGER.DOUBLE", TypeInteger, func(ctx *Context) {
		if v, ok := ctx.State.Integer.Pop(); ok {
			ctx.State.Integer.Push(v.Lsh(v, 1))
		}
	})
	_, err := in.Execute("21 INTEGER.DOUBLE")
	require.NoError(t, err)
	assert.Equal(t, "42", in.State().Integer.String())
}
