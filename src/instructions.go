package pushvm

import (
	"sort"
)

// Context is passed to instruction handlers
type Context struct {
	State        *State
	Instructions *InstructionSet
	Logger       *Logger
	Name         string // mnemonic being executed
}

// Handler implements one instruction. Handlers never fail: if their operands
// are missing they leave the state untouched.
type Handler func(*Context)

// InstructionDef is a registered instruction
type InstructionDef struct {
	Name    string
	Type    StackType
	Handler Handler
}

// InstructionSet maps mnemonics to handlers. It is built once per
// interpreter configuration and only read while programs run.
type InstructionSet struct {
	defs    map[string]*InstructionDef
	enabled map[StackType]bool
	logger  *Logger
}

// NewInstructionSet creates a set loaded with every type enabled by config
func NewInstructionSet(config *Config, logger *Logger) *InstructionSet {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = NewLoggerFromConfig(config)
	}
	set := NewEmptyInstructionSet(logger)
	set.Load(config.enabledTypes()...)
	return set
}

// NewEmptyInstructionSet creates a set with no instructions
func NewEmptyInstructionSet(logger *Logger) *InstructionSet {
	if logger == nil {
		logger = NewLogger(false)
	}
	return &InstructionSet{
		defs:    make(map[string]*InstructionDef),
		enabled: make(map[StackType]bool),
		logger:  logger,
	}
}

// Register adds an instruction. A second registration under the same name
// replaces the first and logs a warning.
func (set *InstructionSet) Register(name string, typ StackType, handler Handler) {
	if _, exists := set.defs[name]; exists {
		set.logger.WarnCat(CatSystem, "Instruction %s registered twice, keeping the last definition", name)
	}
	set.defs[name] = &InstructionDef{Name: name, Type: typ, Handler: handler}
	set.enabled[typ] = true
	set.logger.TraceCat(CatSystem, "Registered instruction: %s", name)
}

// Unregister removes an instruction
func (set *InstructionSet) Unregister(name string) bool {
	if _, exists := set.defs[name]; exists {
		delete(set.defs, name)
		return true
	}
	set.logger.WarnCat(CatSystem, "Attempted to unregister unknown instruction: %s", name)
	return false
}

// Lookup returns the definition for a mnemonic if it is registered and its
// type is enabled
func (set *InstructionSet) Lookup(name string) (*InstructionDef, bool) {
	def, ok := set.defs[name]
	if !ok || !set.enabled[def.Type] {
		return nil, false
	}
	return def, true
}

// Has reports whether name is a registered mnemonic, enabled or not
func (set *InstructionSet) Has(name string) bool {
	_, ok := set.defs[name]
	return ok
}

// Enable makes the instructions of a type available
func (set *InstructionSet) Enable(typ StackType) {
	set.enabled[typ] = true
}

// Disable hides the instructions of a type from dispatch and from random
// code generation
func (set *InstructionSet) Disable(typ StackType) {
	set.enabled[typ] = false
}

// IsEnabled reports whether a type's instructions are available
func (set *InstructionSet) IsEnabled(typ StackType) bool {
	return set.enabled[typ]
}

// Names returns every registered mnemonic in sorted order
func (set *InstructionSet) Names() []string {
	names := make([]string, 0, len(set.defs))
	for name := range set.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnabledNames returns the mnemonics available for dispatch, sorted
func (set *InstructionSet) EnabledNames() []string {
	names := make([]string, 0, len(set.defs))
	for name, def := range set.defs {
		if set.enabled[def.Type] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Load registers the instruction libraries of the given types
func (set *InstructionSet) Load(types ...StackType) {
	for _, typ := range types {
		switch typ {
		case TypeBoolean:
			set.registerBooleanInstructions()
		case TypeCode:
			set.registerCodeInstructions()
		case TypeExec:
			set.registerExecInstructions()
		case TypeFloat:
			set.registerFloatInstructions()
		case TypeIndex:
			set.registerIndexInstructions()
		case TypeInteger:
			set.registerIntegerInstructions()
		case TypeName:
			set.registerNameInstructions()
		case TypeSystem:
			set.registerSystemInstructions()
		}
	}
}
