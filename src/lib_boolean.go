package pushvm

func (set *InstructionSet) registerBooleanInstructions() {
	registerStackInstructions(set, booleanOps(), commonStackInstructions...)

	binary := func(name string, op func(a, b bool) bool) {
		set.Register("BOOLEAN."+name, TypeBoolean, func(ctx *Context) {
			if vs, ok := ctx.State.Boolean.PopMany(2); ok {
				ctx.State.Boolean.Push(op(vs[0], vs[1]))
			}
		})
	}
	binary("AND", func(a, b bool) bool { return a && b })
	binary("OR", func(a, b bool) bool { return a || b })
	binary("XOR", func(a, b bool) bool { return a != b })

	set.Register("BOOLEAN.NOT", TypeBoolean, func(ctx *Context) {
		if v, ok := ctx.State.Boolean.Pop(); ok {
			ctx.State.Boolean.Push(!v)
		}
	})
	set.Register("BOOLEAN.FROMINTEGER", TypeBoolean, func(ctx *Context) {
		if v, ok := ctx.State.Integer.Pop(); ok {
			ctx.State.Boolean.Push(v.Sign() != 0)
		}
	})
	set.Register("BOOLEAN.FROMFLOAT", TypeBoolean, func(ctx *Context) {
		if v, ok := ctx.State.Float.Pop(); ok {
			ctx.State.Boolean.Push(v != 0)
		}
	})
	set.Register("BOOLEAN.RAND", TypeBoolean, func(ctx *Context) {
		ctx.State.Boolean.Push(ctx.Generator().RandomBoolean())
	})
}
