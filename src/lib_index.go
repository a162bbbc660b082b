package pushvm

import (
	"math"
	"math/big"
)

func (set *InstructionSet) registerIndexInstructions() {
	registerStackInstructions(set, indexOps(), "POP", "FLUSH", "STACKDEPTH", "DUP", "SWAP")

	set.Register("INDEX.CURRENT", TypeIndex, func(ctx *Context) {
		if p, ok := ctx.State.Index.Top(); ok {
			ctx.State.Integer.Push(new(big.Int).SetUint64(p.Current))
		}
	})
	set.Register("INDEX.DESTINATION", TypeIndex, func(ctx *Context) {
		if p, ok := ctx.State.Index.Top(); ok {
			ctx.State.Integer.Push(new(big.Int).SetUint64(p.Destination))
		}
	})
	set.Register("INDEX.INCREASE", TypeIndex, func(ctx *Context) {
		if p, ok := ctx.State.Index.Top(); ok {
			if p.Current < math.MaxUint64 {
				p.Current++
			}
			ctx.State.Index.Replace(0, p)
		}
	})
	// INDEX.DEFINE pushes a pair running from the second INTEGER to the top one
	set.Register("INDEX.DEFINE", TypeIndex, func(ctx *Context) {
		if vs, ok := ctx.State.Integer.PopMany(2); ok {
			p := IndexPair{Current: clampUint64(vs[0]), Destination: clampUint64(vs[1])}
			ctx.State.Index.Push(p)
			ctx.Logger.TraceCat(CatIndex, "defined pair %s", p)
		}
	})
}

// clampUint64 converts v to a uint64, mapping negatives to 0 and saturating
// above
func clampUint64(v *big.Int) uint64 {
	if v.Sign() < 0 {
		return 0
	}
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}

// loopStep runs one iteration of LOOP for body. While the top index pair has
// not reached its destination the body is scheduled followed by a
// continuation that increases the index and loops again; otherwise the pair
// is retired. The caller guarantees an index pair exists.
func loopStep(ctx *Context, loop string, body Item) {
	p, _ := ctx.State.Index.Top()
	if p.Done() {
		ctx.State.Index.Pop()
		ctx.Logger.TraceCat(CatIndex, "%s retired pair %s", loop, p)
		return
	}
	ctx.State.Exec.Push(List{Items: []Item{NewInstruction("INDEX.INCREASE"), NewInstruction(loop), body}})
	ctx.State.Exec.Push(Copy(body))
}

// startRange pushes the index pair start/end and schedules the counted
// loop over body. A range running backwards retires the pair immediately.
func startRange(ctx *Context, loop string, body Item, start, end *big.Int) {
	ctx.State.Index.Push(IndexPair{Current: clampUint64(start), Destination: clampUint64(end)})
	if start.Cmp(end) > 0 {
		ctx.State.Index.Pop()
		return
	}
	scheduleCounted(ctx, loop, withCounter(body))
}

// startCount pushes the pair 0/(n-1) and schedules loop over body. Counts
// below one do nothing.
func startCount(ctx *Context, loop string, body Item, n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	last := new(big.Int).Sub(n, bigOne)
	ctx.State.Index.Push(NewIndexPair(clampUint64(last)))
	scheduleCounted(ctx, loop, body)
	return true
}

func scheduleCounted(ctx *Context, loop string, body Item) {
	ctx.State.Exec.Push(List{Items: []Item{NewInstruction("INDEX.INCREASE"), NewInstruction(loop), body}})
	ctx.Logger.TraceCat(CatFlow, "%s scheduled", loop)
}
