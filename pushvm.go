// Package pushvm provides an interpreter for the Push language, a typed
// stack language whose programs are data, used for genetic programming.
//
// This package re-exports the public API from the implementation in src/.
// For full documentation, see the implementation package.
//
// Basic usage:
//
//	in := pushvm.New(pushvm.DefaultConfig())
//	status, err := in.Execute("( 2 3 INTEGER.* )")
//	fmt.Println(in.State())
package pushvm

import (
	"context"

	impl "github.com/phroun/pushvm/src"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Interpreter is the main interpreter instance.
type Interpreter = impl.Interpreter

// Config holds configuration options for the interpreter.
type Config = impl.Config

// State holds the stacks and name bindings of a run.
type State = impl.State

// Context is passed to instruction handlers during execution.
type Context = impl.Context

// Handler is the function signature for instruction handlers.
type Handler = impl.Handler

// InstructionSet maps mnemonics to handlers.
type InstructionSet = impl.InstructionSet

// RunStatus reports why a run stopped.
type RunStatus = impl.RunStatus

// =============================================================================
// PROGRAM ITEMS
// =============================================================================

// Item is a node of a program tree.
type Item = impl.Item

// Literal is a typed scalar.
type Literal = impl.Literal

// List is a parenthesized code block.
type List = impl.List

// Instruction references an instruction by mnemonic.
type Instruction = impl.Instruction

// StackType identifies a typed stack.
type StackType = impl.StackType

// IndexPair drives loop termination.
type IndexPair = impl.IndexPair

// CodeGenerator synthesizes random programs.
type CodeGenerator = impl.CodeGenerator

// Outcome is the result of one program of a population.
type Outcome = impl.Outcome

// SetupFunc prepares a state before its program runs.
type SetupFunc = impl.SetupFunc

// =============================================================================
// ERRORS AND LOGGING
// =============================================================================

// LimitError reports a run stopped at a ceiling.
type LimitError = impl.LimitError

// ParseError reports invalid program text.
type ParseError = impl.ParseError

// ConfigError reports an invalid configuration value.
type ConfigError = impl.ConfigError

// Logger handles interpreter logging.
type Logger = impl.Logger

// LogCategory names the subsystem producing a log message.
type LogCategory = impl.LogCategory

// Sentinel errors wrapped by LimitError.
var (
	ErrStepLimit = impl.ErrStepLimit
	ErrSizeLimit = impl.ErrSizeLimit
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	StatusHalted    = impl.StatusHalted
	StatusStepLimit = impl.StatusStepLimit
	StatusSizeLimit = impl.StatusSizeLimit
	StatusCanceled  = impl.StatusCanceled
)

// Log categories for Logger.EnableCategory and the categorized log methods.
const (
	CatParse  = impl.CatParse
	CatExec   = impl.CatExec
	CatCode   = impl.CatCode
	CatFlow   = impl.CatFlow
	CatIndex  = impl.CatIndex
	CatMath   = impl.CatMath
	CatRandom = impl.CatRandom
	CatIO     = impl.CatIO
	CatSystem = impl.CatSystem
	CatUser   = impl.CatUser
)

const (
	TypeBoolean = impl.TypeBoolean
	TypeCode    = impl.TypeCode
	TypeExec    = impl.TypeExec
	TypeFloat   = impl.TypeFloat
	TypeIndex   = impl.TypeIndex
	TypeInteger = impl.TypeInteger
	TypeName    = impl.TypeName
	TypeSystem  = impl.TypeSystem
)

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates an interpreter configured by config (nil uses defaults).
func New(config *Config) *Interpreter {
	return impl.New(config)
}

// NewWithInstructions creates an interpreter over an existing state and
// instruction set.
func NewWithInstructions(state *State, set *InstructionSet, logger *Logger) *Interpreter {
	return impl.NewWithInstructions(state, set, logger)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return impl.DefaultConfig()
}

// LoadConfig reads a TOML or YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	return impl.LoadConfig(path)
}

// NewState creates an empty program state.
func NewState(config *Config) *State {
	return impl.NewState(config)
}

// NewInstructionSet creates the instruction set described by config.
func NewInstructionSet(config *Config, logger *Logger) *InstructionSet {
	return impl.NewInstructionSet(config, logger)
}

// NewLogger creates a logger.
func NewLogger(enabled bool) *Logger {
	return impl.NewLogger(enabled)
}

// NewLoggerFromConfig creates a logger with the categories named in config.
func NewLoggerFromConfig(config *Config) *Logger {
	return impl.NewLoggerFromConfig(config)
}

// NewCodeGenerator creates a random program generator over state.
func NewCodeGenerator(state *State, set *InstructionSet) *CodeGenerator {
	return impl.NewCodeGenerator(state, set)
}

// NewList creates a list from items.
func NewList(items ...Item) List {
	return impl.NewList(items...)
}

// MustParse is Parse for program text known to be valid.
func MustParse(source string, set *InstructionSet) List {
	return impl.MustParse(source, set)
}

// Parse parses program text into its top-level items.
func Parse(source string, set *InstructionSet) (List, error) {
	return impl.Parse(source, set)
}

// EvaluatePopulation runs programs concurrently in independent interpreters.
func EvaluatePopulation(ctx context.Context, programs []List, config *Config, limit int, setup SetupFunc) ([]Outcome, error) {
	return impl.EvaluatePopulation(ctx, programs, config, limit, setup)
}

// =============================================================================
// TREE ALGORITHMS
// =============================================================================

// Size returns the number of points in item.
func Size(item Item) int { return impl.Size(item) }

// Traverse returns the sub-item at a depth-first point index.
func Traverse(tree Item, index int) Item { return impl.Traverse(tree, index) }

// Insert replaces the sub-item at a point index.
func Insert(tree, replacement Item, index int) (Item, bool) {
	return impl.Insert(tree, replacement, index)
}

// Contains returns the point index of needle within haystack.
func Contains(haystack, needle Item) (int, bool) { return impl.Contains(haystack, needle) }

// Container returns the smallest list holding needle.
func Container(haystack, needle Item) (List, bool) { return impl.Container(haystack, needle) }

// Discrepancy measures how different two items are.
func Discrepancy(a, b Item) int { return impl.Discrepancy(a, b) }

// Substitute replaces every occurrence of pattern within target.
func Substitute(target, pattern, replacement Item) (Item, bool) {
	return impl.Substitute(target, pattern, replacement)
}
