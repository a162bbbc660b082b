package pushvm

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"sort"
	"strings"
)

// Stack IDs pushed by the *.ID instructions
const (
	BooleanStackID = 1
	CodeStackID    = 2
	ExecStackID    = 3
	FloatStackID   = 4
	IndexStackID   = 5
	IntegerStackID = 6
	NameStackID    = 7
)

// State holds every stack, the name bindings and the numeric configuration
// of one program run. A State is owned by a single interpreter.
type State struct {
	Integer *Stack[*big.Int]
	Float   *Stack[float64]
	Boolean *Stack[bool]
	Name    *Stack[string]
	Code    *Stack[Item]
	Exec    *Stack[Item]
	Index   *Stack[IndexPair]

	Bindings map[string]Item

	Config *Config
	Rand   *rand.Rand

	// quoteNextName makes the next NAME literal land on the NAME stack even
	// when it is bound (NAME.QUOTE)
	quoteNextName bool
}

// NewState creates an empty state. A nil config uses DefaultConfig.
func NewState(config *Config) *State {
	if config == nil {
		config = DefaultConfig()
	}
	seed := config.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &State{
		Integer:  NewStack(func(v *big.Int) string { return v.String() }),
		Float:    NewStack(FormatFloat),
		Boolean:  NewStack(FormatBool),
		Name:     NewStack(func(v string) string { return v }),
		Code:     NewStack(func(v Item) string { return v.String() }),
		Exec:     NewStack(func(v Item) string { return v.String() }),
		Index:    NewStack(func(v IndexPair) string { return v.String() }),
		Bindings: make(map[string]Item),
		Config:   config,
		Rand:     rand.New(rand.NewSource(seed)),
	}
}

// Reset flushes every stack and drops all bindings
func (s *State) Reset() {
	s.ResetKeepBindings()
	s.Bindings = make(map[string]Item)
}

// ResetKeepBindings flushes every stack but keeps name bindings so a caller
// can carry definitions across runs
func (s *State) ResetKeepBindings() {
	s.Integer.Flush()
	s.Float.Flush()
	s.Boolean.Flush()
	s.Name.Flush()
	s.Code.Flush()
	s.Exec.Flush()
	s.Index.Flush()
	s.quoteNextName = false
}

// Define binds name to a copy of item. Redefinition replaces the binding.
func (s *State) Define(name string, item Item) {
	s.Bindings[name] = Copy(item)
}

// Definition returns a copy of the item bound to name
func (s *State) Definition(name string) (Item, bool) {
	item, ok := s.Bindings[name]
	if !ok {
		return nil, false
	}
	return Copy(item), true
}

// BoundNames returns the bound names in sorted order
func (s *State) BoundNames() []string {
	names := make([]string, 0, len(s.Bindings))
	for name := range s.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PushLiteral puts a literal onto the stack matching its type
func (s *State) PushLiteral(l Literal) {
	switch l.Type {
	case TypeInteger:
		v := new(big.Int)
		if l.Int != nil {
			v.Set(l.Int)
		}
		s.Integer.Push(v)
	case TypeFloat:
		s.Float.Push(l.Float)
	case TypeBoolean:
		s.Boolean.Push(l.Bool)
	case TypeName:
		s.Name.Push(l.Name)
	}
}

// ExecPoints returns the total number of points on the EXEC stack
func (s *State) ExecPoints() int {
	n := 0
	for _, it := range s.Exec.items {
		n += Size(it)
	}
	return n
}

// popDepth pops the top INTEGER for use as a stack depth. Values too large
// for an int saturate; the target stack clamps them afterwards.
func (s *State) popDepth() (int, bool) {
	v, ok := s.Integer.Pop()
	if !ok {
		return 0, false
	}
	return saturatingInt(v), true
}

// saturatingInt converts v to an int, saturating at the int bounds
func saturatingInt(v *big.Int) int {
	if v.IsInt64() {
		n := v.Int64()
		if n > math.MaxInt {
			return math.MaxInt
		}
		if n < math.MinInt {
			return math.MinInt
		}
		return int(n)
	}
	if v.Sign() < 0 {
		return math.MinInt
	}
	return math.MaxInt
}

// String renders every stack, one per line, in the order the CLI prints them
func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Exec stack: %s\n", s.Exec)
	fmt.Fprintf(&sb, "Code stack: %s\n", s.Code)
	fmt.Fprintf(&sb, "Integer stack: %s\n", s.Integer)
	fmt.Fprintf(&sb, "Float stack: %s\n", s.Float)
	fmt.Fprintf(&sb, "Boolean stack: %s\n", s.Boolean)
	fmt.Fprintf(&sb, "Name stack: %s\n", s.Name)
	fmt.Fprintf(&sb, "Index stack: %s\n", s.Index)
	return sb.String()
}
