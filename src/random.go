package pushvm

import (
	"math/big"
	"math/rand"
	"strings"
)

// ercKinds are the literal types that can appear as ephemeral random
// constants in generated code
var ercKinds = []StackType{TypeInteger, TypeFloat, TypeBoolean, TypeName}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz"

// CodeGenerator synthesizes random programs and values from a state's
// configuration and random source
type CodeGenerator struct {
	state *State
	set   *InstructionSet
	rand  *rand.Rand
}

// NewCodeGenerator creates a generator drawing from state's random source.
// A nil set generates literals only.
func NewCodeGenerator(state *State, set *InstructionSet) *CodeGenerator {
	return &CodeGenerator{state: state, set: set, rand: state.Rand}
}

// Generator returns a code generator over the handler's state
func (ctx *Context) Generator() *CodeGenerator {
	return NewCodeGenerator(ctx.State, ctx.Instructions)
}

// RandomCode returns a random program of at most budget points. The budget
// is clamped to MaxPointsInRandomExpressions and its absolute value used; a
// zero budget produces nothing.
func (g *CodeGenerator) RandomCode(budget int) (Item, bool) {
	limit := g.state.Config.MaxPointsInRandomExpressions
	if limit < 0 {
		limit = -limit
	}
	if budget > limit {
		budget = limit
	}
	if budget < -limit {
		budget = -limit
	}
	if budget < 0 {
		budget = -budget
	}
	if budget == 0 {
		return nil, false
	}
	points := g.rand.Intn(budget) + 1
	code := g.randomCodeWithSize(points, g.leafChoices())
	if g.logger() != nil {
		g.logger().TraceCat(CatRandom, "generated %d points: %s", points, code)
	}
	return code, true
}

func (g *CodeGenerator) logger() *Logger {
	if g.set == nil {
		return nil
	}
	return g.set.logger
}

// leafChoice is either an instruction mnemonic or an ERC kind
type leafChoice struct {
	instruction string
	erc         StackType
}

func (g *CodeGenerator) leafChoices() []leafChoice {
	var choices []leafChoice
	if g.set != nil {
		for _, name := range g.set.EnabledNames() {
			// never generate calls that leave the sandbox
			if def, _ := g.set.Lookup(name); def.Type == TypeSystem {
				continue
			}
			choices = append(choices, leafChoice{instruction: name})
		}
	}
	for _, kind := range ercKinds {
		if g.ercEnabled(kind) {
			choices = append(choices, leafChoice{erc: kind})
		}
	}
	return choices
}

// ercEnabled reports whether literals of kind may be generated. Without an
// instruction set every kind is allowed.
func (g *CodeGenerator) ercEnabled(kind StackType) bool {
	return g.set == nil || g.set.IsEnabled(kind)
}

func (g *CodeGenerator) randomCodeWithSize(points int, choices []leafChoice) Item {
	if points <= 1 {
		if len(choices) == 0 {
			return EmptyList()
		}
		c := choices[g.rand.Intn(len(choices))]
		if c.instruction != "" {
			return NewInstruction(c.instruction)
		}
		return g.RandomLiteral(c.erc)
	}
	parts := g.decompose(points-1, points-1)
	g.rand.Shuffle(len(parts), func(i, j int) { parts[i], parts[j] = parts[j], parts[i] })
	items := make([]Item, len(parts))
	for i, p := range parts {
		items[i] = g.randomCodeWithSize(p, choices)
	}
	return List{Items: items}
}

// decompose splits number into at most maxParts random positive parts
func (g *CodeGenerator) decompose(number, maxParts int) []int {
	var parts []int
	for number > 1 && maxParts > 1 {
		part := g.rand.Intn(number-1) + 1
		parts = append(parts, part)
		number -= part
		maxParts--
	}
	return append(parts, number)
}

// RandomLiteral returns an ephemeral random constant of the given kind
func (g *CodeGenerator) RandomLiteral(kind StackType) Item {
	switch kind {
	case TypeInteger:
		return Literal{Type: TypeInteger, Int: g.RandomInteger()}
	case TypeFloat:
		return NewFloat(g.RandomFloat())
	case TypeBoolean:
		return NewBool(g.RandomBoolean())
	default:
		return NewName(g.RandomName())
	}
}

// RandomInteger draws uniformly from [MinRandomInteger, MaxRandomInteger]
func (g *CodeGenerator) RandomInteger() *big.Int {
	lo := big.NewInt(g.state.Config.MinRandomInteger)
	hi := big.NewInt(g.state.Config.MaxRandomInteger)
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, bigOne)
	v := new(big.Int).Rand(g.rand, span)
	return v.Add(v, lo)
}

// RandomFloat draws uniformly from [MinRandomFloat, MaxRandomFloat)
func (g *CodeGenerator) RandomFloat() float64 {
	lo, hi := g.state.Config.MinRandomFloat, g.state.Config.MaxRandomFloat
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + g.rand.Float64()*(hi-lo)
}

// RandomBoolean flips a coin
func (g *CodeGenerator) RandomBoolean() bool {
	return g.rand.Intn(2) == 1
}

// RandomName returns an existing bound name, or a fresh one with
// probability NewERCNameProbability or when nothing is bound yet
func (g *CodeGenerator) RandomName() string {
	if g.rand.Float64() >= g.state.Config.NewERCNameProbability {
		if name, ok := g.RandomBoundName(); ok {
			return name
		}
	}
	return g.NewName()
}

// RandomBoundName picks one of the bound names
func (g *CodeGenerator) RandomBoundName() (string, bool) {
	names := g.state.BoundNames()
	if len(names) == 0 {
		return "", false
	}
	return names[g.rand.Intn(len(names))], true
}

// NewName returns a name that is not bound and is not an instruction
func (g *CodeGenerator) NewName() string {
	for {
		var sb strings.Builder
		sb.WriteByte('n')
		for i := 0; i < 7; i++ {
			sb.WriteByte(nameAlphabet[g.rand.Intn(len(nameAlphabet))])
		}
		name := sb.String()
		if _, bound := g.state.Bindings[name]; bound {
			continue
		}
		if g.set != nil && g.set.Has(name) {
			continue
		}
		return name
	}
}
