package pushvm

import (
	"math"
	"math/big"
)

// maxPowBits bounds the size of an INTEGER.POW result
const maxPowBits = 1 << 16

var (
	bigZero   = big.NewInt(0)
	bigOne    = big.NewInt(1)
	bigNegOne = big.NewInt(-1)
)

func (set *InstructionSet) registerIntegerInstructions() {
	registerStackInstructions(set, integerOps(), commonStackInstructions...)

	binary := func(name string, op func(a, b *big.Int) *big.Int) {
		set.Register("INTEGER."+name, TypeInteger, func(ctx *Context) {
			if vs, ok := ctx.State.Integer.PopMany(2); ok {
				ctx.State.Integer.Push(op(vs[0], vs[1]))
			}
		})
	}
	compare := func(name string, test func(c int) bool) {
		set.Register("INTEGER."+name, TypeInteger, func(ctx *Context) {
			if vs, ok := ctx.State.Integer.PopMany(2); ok {
				ctx.State.Boolean.Push(test(vs[0].Cmp(vs[1])))
			}
		})
	}
	unary := func(name string, op func(v *big.Int) *big.Int) {
		set.Register("INTEGER."+name, TypeInteger, func(ctx *Context) {
			if v, ok := ctx.State.Integer.Pop(); ok {
				ctx.State.Integer.Push(op(v))
			}
		})
	}

	binary("+", func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
	binary("-", func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
	binary("*", func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })
	binary("MAX", func(a, b *big.Int) *big.Int {
		if a.Cmp(b) > 0 {
			return a
		}
		return b
	})
	binary("MIN", func(a, b *big.Int) *big.Int {
		if a.Cmp(b) > 0 {
			return b
		}
		return a
	})
	binary("POW", integerPow)

	// Division by zero leaves both operands in place
	set.Register("INTEGER./", TypeInteger, func(ctx *Context) {
		if d, ok := ctx.State.Integer.Top(); !ok || d.Sign() == 0 {
			ctx.Logger.TraceCat(CatMath, "INTEGER./ skipped")
			return
		}
		if vs, ok := ctx.State.Integer.PopMany(2); ok {
			ctx.State.Integer.Push(new(big.Int).Quo(vs[0], vs[1]))
		}
	})
	set.Register("INTEGER.%", TypeInteger, func(ctx *Context) {
		if d, ok := ctx.State.Integer.Top(); !ok || d.Sign() == 0 {
			ctx.Logger.TraceCat(CatMath, "INTEGER.%% skipped")
			return
		}
		if vs, ok := ctx.State.Integer.PopMany(2); ok {
			ctx.State.Integer.Push(floorMod(vs[0], vs[1]))
		}
	})

	compare("<", func(c int) bool { return c < 0 })
	compare(">", func(c int) bool { return c > 0 })

	unary("ABS", func(v *big.Int) *big.Int { return new(big.Int).Abs(v) })
	unary("NEG", func(v *big.Int) *big.Int { return new(big.Int).Neg(v) })
	unary("SIGN", func(v *big.Int) *big.Int { return big.NewInt(int64(v.Sign())) })

	ddup := func(ctx *Context) {
		if vs, ok := ctx.State.Integer.CopyMany(2); ok {
			ctx.State.Integer.Push(cloneInt(vs[0]))
			ctx.State.Integer.Push(cloneInt(vs[1]))
		}
	}
	set.Register("INTEGER.DDUP", TypeInteger, ddup)
	set.Register("INTEGER.DUP2", TypeInteger, ddup)

	set.Register("INTEGER.FROMBOOLEAN", TypeInteger, func(ctx *Context) {
		if b, ok := ctx.State.Boolean.Pop(); ok {
			if b {
				ctx.State.Integer.Push(big.NewInt(1))
			} else {
				ctx.State.Integer.Push(big.NewInt(0))
			}
		}
	})
	set.Register("INTEGER.FROMFLOAT", TypeInteger, func(ctx *Context) {
		f, ok := ctx.State.Float.Top()
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return
		}
		ctx.State.Float.Pop()
		v, _ := big.NewFloat(math.Trunc(f)).Int(nil)
		ctx.State.Integer.Push(v)
	})
	set.Register("INTEGER.RAND", TypeInteger, func(ctx *Context) {
		ctx.State.Integer.Push(ctx.Generator().RandomInteger())
	})
}

// floorMod returns a mod b with the sign of the divisor
func floorMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Rem(a, b)
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		r.Add(r, b)
	}
	return r
}

// integerPow raises base to exp. Negative exponents truncate to zero except
// for the unit bases, and results that would exceed maxPowBits do the same.
func integerPow(base, exp *big.Int) *big.Int {
	if exp.Sign() >= 0 && exp.IsInt64() {
		e := exp.Int64()
		if e == 0 {
			return big.NewInt(1)
		}
		if bits := int64(base.BitLen()); bits > 0 && e <= maxPowBits/bits {
			return new(big.Int).Exp(base, exp, nil)
		}
	}
	switch {
	case base.Sign() == 0:
		return big.NewInt(0)
	case base.Cmp(bigOne) == 0:
		return big.NewInt(1)
	case base.Cmp(bigNegOne) == 0:
		if exp.Bit(0) == 0 {
			return big.NewInt(1)
		}
		return big.NewInt(-1)
	}
	return new(big.Int).Set(bigZero)
}
