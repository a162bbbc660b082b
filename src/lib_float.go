package pushvm

import (
	"math"
	"math/big"
)

func (set *InstructionSet) registerFloatInstructions() {
	registerStackInstructions(set, floatOps(), commonStackInstructions...)

	binary := func(name string, op func(a, b float64) float64) {
		set.Register("FLOAT."+name, TypeFloat, func(ctx *Context) {
			if vs, ok := ctx.State.Float.PopMany(2); ok {
				ctx.State.Float.Push(op(vs[0], vs[1]))
			}
		})
	}
	unary := func(name string, op func(v float64) float64) {
		set.Register("FLOAT."+name, TypeFloat, func(ctx *Context) {
			if v, ok := ctx.State.Float.Pop(); ok {
				ctx.State.Float.Push(op(v))
			}
		})
	}
	// guarded leaves both operands in place when the divisor is zero
	guarded := func(name string, op func(a, b float64) float64) {
		set.Register("FLOAT."+name, TypeFloat, func(ctx *Context) {
			if d, ok := ctx.State.Float.Top(); !ok || d == 0 {
				return
			}
			if vs, ok := ctx.State.Float.PopMany(2); ok {
				ctx.State.Float.Push(op(vs[0], vs[1]))
			}
		})
	}

	binary("+", func(a, b float64) float64 { return a + b })
	binary("-", func(a, b float64) float64 { return a - b })
	binary("*", func(a, b float64) float64 { return a * b })
	binary("MAX", math.Max)
	binary("MIN", math.Min)
	guarded("/", func(a, b float64) float64 { return a / b })
	guarded("%", floatFloorMod)

	for name, test := range map[string]func(a, b float64) bool{
		"<": func(a, b float64) bool { return a < b },
		">": func(a, b float64) bool { return a > b },
	} {
		test := test
		set.Register("FLOAT."+name, TypeFloat, func(ctx *Context) {
			if vs, ok := ctx.State.Float.PopMany(2); ok {
				ctx.State.Boolean.Push(test(vs[0], vs[1]))
			}
		})
	}

	unary("ABS", math.Abs)
	unary("NEG", func(v float64) float64 { return -v })
	unary("SIN", math.Sin)
	unary("COS", math.Cos)
	unary("TAN", math.Tan)

	set.Register("FLOAT.FROMBOOLEAN", TypeFloat, func(ctx *Context) {
		if b, ok := ctx.State.Boolean.Pop(); ok {
			if b {
				ctx.State.Float.Push(1)
			} else {
				ctx.State.Float.Push(0)
			}
		}
	})
	set.Register("FLOAT.FROMINTEGER", TypeFloat, func(ctx *Context) {
		if v, ok := ctx.State.Integer.Pop(); ok {
			f, _ := new(big.Float).SetInt(v).Float64()
			ctx.State.Float.Push(f)
		}
	})
	set.Register("FLOAT.RAND", TypeFloat, func(ctx *Context) {
		ctx.State.Float.Push(ctx.Generator().RandomFloat())
	})
}

// floatFloorMod returns a mod b with the sign of the divisor
func floatFloorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
