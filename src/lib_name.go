package pushvm

func (set *InstructionSet) registerNameInstructions() {
	registerStackInstructions(set, nameOps(), commonStackInstructions...)

	// NAME.QUOTE makes the next NAME literal land on the NAME stack even
	// when it is bound
	set.Register("NAME.QUOTE", TypeName, func(ctx *Context) {
		ctx.State.quoteNextName = true
	})
	set.Register("NAME.RAND", TypeName, func(ctx *Context) {
		ctx.State.Name.Push(ctx.Generator().NewName())
	})
	set.Register("NAME.RANDBOUNDNAME", TypeName, func(ctx *Context) {
		if name, ok := ctx.Generator().RandomBoundName(); ok {
			ctx.State.Name.Push(name)
		}
	})
}
