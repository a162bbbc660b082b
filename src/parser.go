package pushvm

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Parser turns program text into an Item tree while tracking positions for
// error reporting
type Parser struct {
	set    *InstructionSet
	runes  []rune
	pos    int
	line   int
	column int
}

// NewParser creates a parser for source. Registered mnemonics in set parse
// as instructions; set may be nil.
func NewParser(source string, set *InstructionSet) *Parser {
	return &Parser{set: set, runes: []rune(source), line: 1, column: 1}
}

// Parse parses source into a list of its top-level items
func Parse(source string, set *InstructionSet) (List, error) {
	return NewParser(source, set).Parse()
}

// MustParse is Parse for program text known to be valid
func MustParse(source string, set *InstructionSet) List {
	program, err := Parse(source, set)
	if err != nil {
		panic(err)
	}
	return program
}

// Parse reads the whole source
func (p *Parser) Parse() (List, error) {
	type frame struct {
		items        []Item
		line, column int
	}
	stack := []frame{{items: []Item{}}}

	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.runes) {
			break
		}
		line, column := p.line, p.column
		switch p.runes[p.pos] {
		case '(':
			p.advance()
			stack = append(stack, frame{items: []Item{}, line: line, column: column})
		case ')':
			p.advance()
			if len(stack) == 1 {
				return List{}, &ParseError{Message: "unexpected ')'", Line: line, Column: column}
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.items = append(parent.items, List{Items: done.items})
		default:
			top := &stack[len(stack)-1]
			top.items = append(top.items, p.classify(p.readAtom()))
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return List{}, &ParseError{Message: "unclosed '('", Line: open.line, Column: open.column}
	}
	return List{Items: stack[0].items}, nil
}

func (p *Parser) advance() {
	if p.runes[p.pos] == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	p.pos++
}

func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.runes) {
		r := p.runes[p.pos]
		switch {
		case unicode.IsSpace(r):
			p.advance()
		case r == ';':
			for p.pos < len(p.runes) && p.runes[p.pos] != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

func (p *Parser) readAtom() string {
	start := p.pos
	for p.pos < len(p.runes) {
		r := p.runes[p.pos]
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == ';' {
			break
		}
		p.advance()
	}
	return string(p.runes[start:p.pos])
}

// classify maps an atom to its item. Anything that is not a number, a
// boolean or a mnemonic is a NAME. Non-finite floats read back in the
// form FormatFloat prints them.
func (p *Parser) classify(atom string) Item {
	switch atom {
	case "TRUE":
		return NewBool(true)
	case "FALSE":
		return NewBool(false)
	case "+Inf":
		return NewFloat(math.Inf(1))
	case "-Inf":
		return NewFloat(math.Inf(-1))
	case "NaN":
		return NewFloat(math.NaN())
	}
	if looksNumeric(atom) {
		if v, ok := new(big.Int).SetString(atom, 10); ok {
			return Literal{Type: TypeInteger, Int: v}
		}
		if f, err := strconv.ParseFloat(atom, 64); err == nil {
			return NewFloat(f)
		}
	}
	if p.isMnemonic(atom) {
		return NewInstruction(atom)
	}
	return NewName(atom)
}

// isMnemonic reports whether atom names an instruction. Unregistered names
// with a stack type prefix still parse as instructions so that printed
// programs keep their meaning under a different instruction set.
func (p *Parser) isMnemonic(atom string) bool {
	if p.set != nil && p.set.Has(atom) {
		return true
	}
	prefix, rest, found := strings.Cut(atom, ".")
	if !found || rest == "" {
		return false
	}
	_, ok := ParseStackType(prefix)
	return ok && prefix == strings.ToUpper(prefix)
}

func looksNumeric(atom string) bool {
	s := strings.TrimLeft(atom, "+-")
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || (c == '.' && len(s) > 1)
}
