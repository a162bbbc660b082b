package pushvm

import (
	"math/big"
	"strconv"
	"strings"
)

// StackType identifies one of the typed stacks of the machine
type StackType int

const (
	TypeBoolean StackType = iota + 1
	TypeCode
	TypeExec
	TypeFloat
	TypeIndex
	TypeInteger
	TypeName
	TypeSystem // instructions with side effects outside the stacks (EXEC.CMD)
)

var stackTypeNames = map[StackType]string{
	TypeBoolean: "BOOLEAN",
	TypeCode:    "CODE",
	TypeExec:    "EXEC",
	TypeFloat:   "FLOAT",
	TypeIndex:   "INDEX",
	TypeInteger: "INTEGER",
	TypeName:    "NAME",
	TypeSystem:  "SYSTEM",
}

// String returns the mnemonic prefix of the stack type
func (t StackType) String() string {
	if name, ok := stackTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStackType resolves a mnemonic prefix such as "INTEGER" to its StackType
func ParseStackType(name string) (StackType, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for t, n := range stackTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Item is a node of a program tree. The set of implementations is closed:
// Literal, List and Instruction.
type Item interface {
	isItem()
	String() string
}

// Literal is a typed scalar that is pushed onto the stack matching Type
type Literal struct {
	Type  StackType
	Int   *big.Int
	Float float64
	Bool  bool
	Name  string
}

func (Literal) isItem() {}

// String renders the canonical form of the literal
func (l Literal) String() string {
	switch l.Type {
	case TypeInteger:
		if l.Int == nil {
			return "0"
		}
		return l.Int.String()
	case TypeFloat:
		return FormatFloat(l.Float)
	case TypeBoolean:
		return FormatBool(l.Bool)
	default:
		return l.Name
	}
}

// List is a parenthesized code block. Items are kept in textual order, which
// is also execution order: Items[0] runs first.
type List struct {
	Items []Item
}

func (List) isItem() {}

// String renders the list as "( a b c )"
func (l List) String() string {
	if len(l.Items) == 0 {
		return "( )"
	}
	var sb strings.Builder
	sb.WriteString("(")
	for _, it := range l.Items {
		sb.WriteString(" ")
		sb.WriteString(it.String())
	}
	sb.WriteString(" )")
	return sb.String()
}

// Len returns the number of direct children
func (l List) Len() int {
	return len(l.Items)
}

// Instruction references a dispatchable behavior by mnemonic
type Instruction struct {
	Name string
}

func (Instruction) isItem() {}

// String returns the mnemonic
func (i Instruction) String() string {
	return i.Name
}

// NewInt creates an INTEGER literal
func NewInt(v int64) Literal {
	return Literal{Type: TypeInteger, Int: big.NewInt(v)}
}

// NewBigInt creates an INTEGER literal holding a copy of v
func NewBigInt(v *big.Int) Literal {
	return Literal{Type: TypeInteger, Int: new(big.Int).Set(v)}
}

// NewFloat creates a FLOAT literal
func NewFloat(v float64) Literal {
	return Literal{Type: TypeFloat, Float: v}
}

// NewBool creates a BOOLEAN literal
func NewBool(v bool) Literal {
	return Literal{Type: TypeBoolean, Bool: v}
}

// NewName creates a NAME literal
func NewName(v string) Literal {
	return Literal{Type: TypeName, Name: v}
}

// NewInstruction creates an instruction reference
func NewInstruction(name string) Instruction {
	return Instruction{Name: name}
}

// NewList builds a list from copies of the given items
func NewList(items ...Item) List {
	children := make([]Item, len(items))
	for i, it := range items {
		children[i] = Copy(it)
	}
	return List{Items: children}
}

// EmptyList returns "( )"
func EmptyList() List {
	return List{Items: []Item{}}
}

// Copy returns a deep copy of an item so that no sub-tree is ever shared
func Copy(item Item) Item {
	switch v := item.(type) {
	case Literal:
		if v.Int != nil {
			v.Int = new(big.Int).Set(v.Int)
		}
		return v
	case List:
		return NewList(v.Items...)
	default:
		return item
	}
}

// Equal reports whether two items print the same. Lists are compared child
// by child and stop at the first difference; leaves compare by rendering.
func Equal(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	la, okA := a.(List)
	lb, okB := b.(List)
	switch {
	case okA && okB:
		if len(la.Items) != len(lb.Items) {
			return false
		}
		for i := range la.Items {
			if !Equal(la.Items[i], lb.Items[i]) {
				return false
			}
		}
		return true
	case okA || okB:
		return false
	}
	if isa, ok := a.(Instruction); ok {
		if isb, ok := b.(Instruction); ok {
			return isa.Name == isb.Name
		}
	}
	return a.String() == b.String()
}

// IsList reports whether the item is a List
func IsList(item Item) bool {
	_, ok := item.(List)
	return ok
}

// AsList coerces an item to a list, wrapping non-lists in a single-element list
func AsList(item Item) List {
	if l, ok := item.(List); ok {
		return l
	}
	return NewList(item)
}

// FormatFloat renders a float the way FLOAT literals print
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// FormatBool renders a boolean the way BOOLEAN literals print
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
