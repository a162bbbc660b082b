package pushvm

import (
	"math/big"
)

// stackOps describes one typed stack to the shared stack-manipulation
// instructions
type stackOps[T any] struct {
	typ   StackType
	id    int64
	stack func(*State) *Stack[T]
	clone func(T) T
	equal func(a, b T) bool
	item  func(T) Item // binding form for TYPE.DEFINE

	// keepOnCompare leaves both operands of TYPE.= in place
	keepOnCompare bool
}

// commonStackInstructions is the manipulation set every value stack carries
var commonStackInstructions = []string{
	"=", "DEFINE", "DUP", "DROP", "POP", "FLUSH", "ID", "NIP", "OVER", "ROT",
	"SHOVE", "STACKDEPTH", "SWAP", "TUCK", "YANK", "YANKDUP",
}

// registerStackInstructions registers the named manipulation instructions
// for the stack described by ops
func registerStackInstructions[T any](set *InstructionSet, ops stackOps[T], names ...string) {
	prefix := ops.typ.String() + "."
	for _, name := range names {
		var h Handler
		switch name {
		case "=":
			h = func(ctx *Context) {
				s := ops.stack(ctx.State)
				var vs []T
				var ok bool
				if ops.keepOnCompare {
					vs, ok = s.CopyMany(2)
				} else {
					vs, ok = s.PopMany(2)
				}
				if ok {
					ctx.State.Boolean.Push(ops.equal(vs[0], vs[1]))
				}
			}
		case "DEFINE":
			h = func(ctx *Context) {
				s := ops.stack(ctx.State)
				if ctx.State.Name.Size() == 0 || s.Size() == 0 {
					return
				}
				name, _ := ctx.State.Name.Pop()
				v, _ := s.Pop()
				ctx.State.Define(name, ops.item(v))
			}
		case "DUP":
			h = func(ctx *Context) {
				s := ops.stack(ctx.State)
				if v, ok := s.Top(); ok {
					s.Push(ops.clone(v))
				}
			}
		case "DROP", "POP":
			h = func(ctx *Context) {
				ops.stack(ctx.State).Pop()
			}
		case "FLUSH":
			h = func(ctx *Context) {
				ops.stack(ctx.State).Flush()
			}
		case "ID":
			h = func(ctx *Context) {
				ctx.State.Integer.Push(big.NewInt(ops.id))
			}
		case "NIP":
			h = func(ctx *Context) {
				s := ops.stack(ctx.State)
				if vs, ok := s.PopMany(2); ok {
					s.Push(vs[1])
				}
			}
		case "OVER":
			h = func(ctx *Context) {
				s := ops.stack(ctx.State)
				if v, ok := s.CopyMany(2); ok {
					s.Push(ops.clone(v[0]))
				}
			}
		case "ROT":
			h = func(ctx *Context) {
				ops.stack(ctx.State).Yank(2)
			}
		case "SHOVE":
			h = func(ctx *Context) {
				if depth, ok := ctx.State.popDepth(); ok {
					ops.stack(ctx.State).Shove(depth)
				}
			}
		case "STACKDEPTH":
			h = func(ctx *Context) {
				n := ops.stack(ctx.State).Size()
				ctx.State.Integer.Push(big.NewInt(int64(n)))
			}
		case "SWAP":
			h = func(ctx *Context) {
				ops.stack(ctx.State).Shove(1)
			}
		case "TUCK":
			h = func(ctx *Context) {
				s := ops.stack(ctx.State)
				if vs, ok := s.PopMany(2); ok {
					s.Push(ops.clone(vs[1]))
					s.Push(vs[0])
					s.Push(vs[1])
				}
			}
		case "YANK":
			h = func(ctx *Context) {
				if depth, ok := ctx.State.popDepth(); ok {
					ops.stack(ctx.State).Yank(depth)
				}
			}
		case "YANKDUP":
			h = func(ctx *Context) {
				if depth, ok := ctx.State.popDepth(); ok {
					s := ops.stack(ctx.State)
					if v, ok := s.Peek(depth); ok {
						s.Push(ops.clone(v))
					}
				}
			}
		default:
			set.logger.WarnCat(CatSystem, "no stack instruction %s%s", prefix, name)
			continue
		}
		set.Register(prefix+name, ops.typ, h)
	}
}

func cloneInt(v *big.Int) *big.Int { return new(big.Int).Set(v) }

func sameValue[T comparable](a, b T) bool { return a == b }

func integerOps() stackOps[*big.Int] {
	return stackOps[*big.Int]{
		typ:   TypeInteger,
		id:    IntegerStackID,
		stack: func(s *State) *Stack[*big.Int] { return s.Integer },
		clone: cloneInt,
		equal: func(a, b *big.Int) bool { return a.Cmp(b) == 0 },
		item:  func(v *big.Int) Item { return NewBigInt(v) },
	}
}

func floatOps() stackOps[float64] {
	return stackOps[float64]{
		typ:   TypeFloat,
		id:    FloatStackID,
		stack: func(s *State) *Stack[float64] { return s.Float },
		clone: func(v float64) float64 { return v },
		equal: sameValue[float64],
		item:  func(v float64) Item { return NewFloat(v) },
	}
}

func booleanOps() stackOps[bool] {
	return stackOps[bool]{
		typ:   TypeBoolean,
		id:    BooleanStackID,
		stack: func(s *State) *Stack[bool] { return s.Boolean },
		clone: func(v bool) bool { return v },
		equal: sameValue[bool],
		item:  func(v bool) Item { return NewBool(v) },
	}
}

func nameOps() stackOps[string] {
	return stackOps[string]{
		typ:   TypeName,
		id:    NameStackID,
		stack: func(s *State) *Stack[string] { return s.Name },
		clone: func(v string) string { return v },
		equal: sameValue[string],
		item:  func(v string) Item { return NewName(v) },
	}
}

func codeOps() stackOps[Item] {
	return stackOps[Item]{
		typ:           TypeCode,
		id:            CodeStackID,
		stack:         func(s *State) *Stack[Item] { return s.Code },
		clone:         Copy,
		equal:         Equal,
		item:          Copy,
		keepOnCompare: true,
	}
}

func execOps() stackOps[Item] {
	return stackOps[Item]{
		typ:           TypeExec,
		id:            ExecStackID,
		stack:         func(s *State) *Stack[Item] { return s.Exec },
		clone:         Copy,
		equal:         Equal,
		item:          Copy,
		keepOnCompare: true,
	}
}

func indexOps() stackOps[IndexPair] {
	return stackOps[IndexPair]{
		typ:   TypeIndex,
		id:    IndexStackID,
		stack: func(s *State) *Stack[IndexPair] { return s.Index },
		clone: func(v IndexPair) IndexPair { return v },
		equal: sameValue[IndexPair],
	}
}
