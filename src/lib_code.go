package pushvm

import (
	"math/big"
)

// normalizeBig maps v onto [0, size) with the Euclidean remainder. size must
// be positive.
func normalizeBig(v *big.Int, size int) int {
	m := new(big.Int).Mod(v, big.NewInt(int64(size)))
	return int(m.Int64())
}

// concat joins two items into one list, wrapping non-lists first
func concat(first, second Item) List {
	a, b := AsList(first), AsList(second)
	items := make([]Item, 0, len(a.Items)+len(b.Items))
	for _, it := range a.Items {
		items = append(items, Copy(it))
	}
	for _, it := range b.Items {
		items = append(items, Copy(it))
	}
	return List{Items: items}
}

// withCounter wraps a loop body so the index is pushed after each pass
func withCounter(body Item) List {
	return List{Items: []Item{body, NewInstruction("INDEX.CURRENT")}}
}

func (set *InstructionSet) registerCodeInstructions() {
	registerStackInstructions(set, codeOps(), commonStackInstructions...)

	code := func(name string, h Handler) {
		set.Register("CODE."+name, TypeCode, h)
	}

	code("NOOP", func(ctx *Context) {})

	// APPEND joins the top item followed by the second
	code("APPEND", func(ctx *Context) {
		if vs, ok := ctx.State.Code.PopMany(2); ok {
			ctx.State.Code.Push(concat(vs[1], vs[0]))
		}
	})
	// CONS joins the second item followed by the top
	code("CONS", func(ctx *Context) {
		if vs, ok := ctx.State.Code.PopMany(2); ok {
			ctx.State.Code.Push(concat(vs[0], vs[1]))
		}
	})
	code("LIST", func(ctx *Context) {
		if vs, ok := ctx.State.Code.CopyMany(2); ok {
			ctx.State.Code.Push(NewList(vs[1], vs[0]))
		}
	})
	code("ATOM", func(ctx *Context) {
		if top, ok := ctx.State.Code.Top(); ok {
			ctx.State.Boolean.Push(!IsList(top))
		}
	})
	code("CAR", func(ctx *Context) {
		top, ok := ctx.State.Code.Pop()
		if !ok {
			return
		}
		switch l := top.(type) {
		case List:
			if len(l.Items) == 0 {
				ctx.State.Code.Push(EmptyList())
			} else {
				ctx.State.Code.Push(Copy(l.Items[0]))
			}
		default:
			ctx.State.Code.Push(top)
		}
	})
	code("CDR", func(ctx *Context) {
		top, ok := ctx.State.Code.Pop()
		if !ok {
			return
		}
		l, isList := top.(List)
		if !isList || len(l.Items) == 0 {
			ctx.State.Code.Push(EmptyList())
			return
		}
		ctx.State.Code.Push(NewList(l.Items[1:]...))
	})
	code("NULL", func(ctx *Context) {
		if top, ok := ctx.State.Code.Top(); ok {
			l, isList := top.(List)
			ctx.State.Boolean.Push(isList && len(l.Items) == 0)
		}
	})
	code("LENGTH", func(ctx *Context) {
		if top, ok := ctx.State.Code.Top(); ok {
			ctx.State.Integer.Push(big.NewInt(int64(Length(top))))
		}
	})
	code("SIZE", func(ctx *Context) {
		if top, ok := ctx.State.Code.Top(); ok {
			ctx.State.Integer.Push(big.NewInt(int64(Size(top))))
		}
	})

	// CONTAINS tests whether the second item occurs anywhere within the top
	code("CONTAINS", func(ctx *Context) {
		if vs, ok := ctx.State.Code.CopyMany(2); ok {
			_, found := Contains(vs[1], vs[0])
			ctx.State.Boolean.Push(found)
		}
	})
	// MEMBER tests whether the top item is a direct element of the second
	code("MEMBER", func(ctx *Context) {
		if vs, ok := ctx.State.Code.CopyMany(2); ok {
			found := false
			for _, it := range AsList(vs[0]).Items {
				if Equal(it, vs[1]) {
					found = true
					break
				}
			}
			ctx.State.Boolean.Push(found)
		}
	})
	code("CONTAINER", func(ctx *Context) {
		if vs, ok := ctx.State.Code.CopyMany(2); ok {
			if c, found := Container(vs[1], vs[0]); found {
				ctx.State.Code.Push(c)
			} else {
				ctx.State.Code.Push(EmptyList())
			}
		}
	})
	code("POSITION", func(ctx *Context) {
		if vs, ok := ctx.State.Code.CopyMany(2); ok {
			pos, _ := Contains(vs[1], vs[0])
			ctx.State.Integer.Push(big.NewInt(int64(pos)))
		}
	})
	code("DISCREPANCY", func(ctx *Context) {
		if vs, ok := ctx.State.Code.CopyMany(2); ok {
			ctx.State.Integer.Push(big.NewInt(int64(Discrepancy(vs[0], vs[1]))))
		}
	})

	code("EXTRACT", func(ctx *Context) {
		if ctx.State.Code.Size() == 0 || ctx.State.Integer.Size() == 0 {
			return
		}
		idx, _ := ctx.State.Integer.Pop()
		top, _ := ctx.State.Code.Top()
		ctx.State.Code.Push(Traverse(top, normalizeBig(idx, Size(top))))
	})
	code("INSERT", func(ctx *Context) {
		if ctx.State.Code.Size() < 2 || ctx.State.Integer.Size() == 0 {
			return
		}
		idx, _ := ctx.State.Integer.Pop()
		vs, _ := ctx.State.Code.CopyMany(2)
		point := normalizeBig(idx, Size(vs[1]))
		if updated, ok := Insert(vs[1], vs[0], point); ok {
			ctx.State.Code.Replace(0, updated)
			ctx.Logger.TraceCat(CatCode, "inserted %s at point %d", vs[0], point)
		}
	})
	code("NTH", func(ctx *Context) {
		if ctx.State.Code.Size() == 0 || ctx.State.Integer.Size() == 0 {
			return
		}
		idx, _ := ctx.State.Integer.Pop()
		top, _ := ctx.State.Code.Top()
		ctx.State.Code.Push(Nth(top, normalizeBig(idx, ShallowSize(top))))
	})
	code("SUBST", func(ctx *Context) {
		if vs, ok := ctx.State.Code.PopMany(3); ok {
			result, root := Substitute(vs[2], vs[0], vs[1])
			if root {
				ctx.Logger.TraceCat(CatCode, "substitution replaced the whole tree")
			}
			ctx.State.Code.Push(result)
		}
	})

	code("DEFINITION", func(ctx *Context) {
		name, ok := ctx.State.Name.Pop()
		if !ok {
			return
		}
		if item, bound := ctx.State.Definition(name); bound {
			ctx.State.Code.Push(item)
		}
	})
	code("QUOTE", func(ctx *Context) {
		if item, ok := ctx.State.Exec.Pop(); ok {
			ctx.State.Code.Push(item)
		}
	})
	code("PRINT", func(ctx *Context) {
		if ctx.State.Code.Size() > 0 {
			ctx.State.Name.Push(ctx.State.Code.String())
		}
	})
	code("RAND", func(ctx *Context) {
		v, ok := ctx.State.Integer.Pop()
		if !ok {
			return
		}
		if item, ok := ctx.Generator().RandomCode(saturatingInt(new(big.Int).Abs(v))); ok {
			ctx.State.Code.Push(item)
		}
	})

	code("FROMBOOLEAN", func(ctx *Context) {
		if v, ok := ctx.State.Boolean.Pop(); ok {
			ctx.State.Code.Push(NewBool(v))
		}
	})
	code("FROMFLOAT", func(ctx *Context) {
		if v, ok := ctx.State.Float.Pop(); ok {
			ctx.State.Code.Push(NewFloat(v))
		}
	})
	code("FROMINTEGER", func(ctx *Context) {
		if v, ok := ctx.State.Integer.Pop(); ok {
			ctx.State.Code.Push(Literal{Type: TypeInteger, Int: v})
		}
	})
	code("FROMNAME", func(ctx *Context) {
		if v, ok := ctx.State.Name.Pop(); ok {
			ctx.State.Code.Push(NewName(v))
		}
	})

	// Control flow

	code("DO", func(ctx *Context) {
		if top, ok := ctx.State.Code.Top(); ok {
			ctx.State.Exec.Push(NewInstruction("CODE.POP"))
			ctx.State.Exec.Push(Copy(top))
		}
	})
	code("DO*", func(ctx *Context) {
		if top, ok := ctx.State.Code.Top(); ok {
			ctx.State.Exec.Push(Copy(top))
			ctx.State.Exec.Push(NewInstruction("CODE.POP"))
		}
	})
	// IF runs the second item when TRUE and the top item when FALSE
	code("IF", func(ctx *Context) {
		if ctx.State.Code.Size() < 2 || ctx.State.Boolean.Size() == 0 {
			return
		}
		vs, _ := ctx.State.Code.PopMany(2)
		cond, _ := ctx.State.Boolean.Pop()
		if cond {
			ctx.State.Exec.Push(vs[0])
		} else {
			ctx.State.Exec.Push(vs[1])
		}
	})
	code("LOOP", func(ctx *Context) {
		if ctx.State.Code.Size() == 0 || ctx.State.Index.Size() == 0 {
			return
		}
		body, _ := ctx.State.Code.Pop()
		loopStep(ctx, "CODE.LOOP", body)
	})
	code("DO*RANGE", func(ctx *Context) {
		if ctx.State.Code.Size() == 0 || ctx.State.Integer.Size() < 2 {
			return
		}
		body, _ := ctx.State.Code.Pop()
		vs, _ := ctx.State.Integer.PopMany(2)
		startRange(ctx, "CODE.LOOP", body, vs[0], vs[1])
	})
	code("DO*COUNT", func(ctx *Context) {
		if ctx.State.Code.Size() == 0 || ctx.State.Integer.Size() == 0 {
			return
		}
		body, _ := ctx.State.Code.Pop()
		n, _ := ctx.State.Integer.Pop()
		startCount(ctx, "CODE.LOOP", withCounter(body), n)
	})
	code("DO*TIMES", func(ctx *Context) {
		if ctx.State.Code.Size() == 0 || ctx.State.Integer.Size() == 0 {
			return
		}
		body, _ := ctx.State.Code.Pop()
		n, _ := ctx.State.Integer.Pop()
		startCount(ctx, "CODE.LOOP", body, n)
	})
}
