package pushvm

func (set *InstructionSet) registerExecInstructions() {
	registerStackInstructions(set, execOps(), commonStackInstructions...)

	exec := func(name string, h Handler) {
		set.Register("EXEC."+name, TypeExec, h)
	}

	// IF keeps the top item when TRUE and the second when FALSE
	exec("IF", func(ctx *Context) {
		if ctx.State.Exec.Size() < 2 || ctx.State.Boolean.Size() == 0 {
			return
		}
		vs, _ := ctx.State.Exec.PopMany(2)
		cond, _ := ctx.State.Boolean.Pop()
		if cond {
			ctx.State.Exec.Push(vs[1])
		} else {
			ctx.State.Exec.Push(vs[0])
		}
	})

	// Combinators

	exec("K", func(ctx *Context) {
		if vs, ok := ctx.State.Exec.PopMany(2); ok {
			ctx.State.Exec.Push(vs[1])
		}
	})
	// S pops A, B and C (A on top) and leaves A, C, ( B C ) from the top
	exec("S", func(ctx *Context) {
		vs, ok := ctx.State.Exec.PopMany(3)
		if !ok {
			return
		}
		a, b, c := vs[2], vs[1], vs[0]
		ctx.State.Exec.Push(NewList(b, c))
		ctx.State.Exec.Push(Copy(c))
		ctx.State.Exec.Push(a)
	})
	// Y slips ( EXEC.Y top ) beneath the top item
	exec("Y", func(ctx *Context) {
		top, ok := ctx.State.Exec.Top()
		if !ok {
			return
		}
		ctx.State.Exec.Push(List{Items: []Item{NewInstruction("EXEC.Y"), Copy(top)}})
		ctx.State.Exec.Shove(1)
	})

	// Loops

	exec("LOOP", func(ctx *Context) {
		if ctx.State.Exec.Size() == 0 || ctx.State.Index.Size() == 0 {
			return
		}
		body, _ := ctx.State.Exec.Pop()
		loopStep(ctx, "EXEC.LOOP", body)
	})
	exec("DO*RANGE", func(ctx *Context) {
		if ctx.State.Exec.Size() == 0 || ctx.State.Integer.Size() < 2 {
			return
		}
		body, _ := ctx.State.Exec.Pop()
		vs, _ := ctx.State.Integer.PopMany(2)
		startRange(ctx, "EXEC.LOOP", body, vs[0], vs[1])
	})
	exec("DO*COUNT", func(ctx *Context) {
		if ctx.State.Exec.Size() == 0 || ctx.State.Integer.Size() == 0 {
			return
		}
		body, _ := ctx.State.Exec.Pop()
		n, _ := ctx.State.Integer.Pop()
		startCount(ctx, "EXEC.LOOP", withCounter(body), n)
	})
	exec("DO*TIMES", func(ctx *Context) {
		if ctx.State.Exec.Size() == 0 || ctx.State.Integer.Size() == 0 {
			return
		}
		body, _ := ctx.State.Exec.Pop()
		n, _ := ctx.State.Integer.Pop()
		startCount(ctx, "EXEC.LOOP", body, n)
	})
}
