package pushvm

import (
	"context"
	"errors"
)

// RunStatus reports why Run stopped
type RunStatus int

const (
	StatusHalted    RunStatus = iota // EXEC stack emptied
	StatusStepLimit                  // EvalPushLimit steps executed
	StatusSizeLimit                  // EXEC stack grew past MaxExecPoints
	StatusCanceled                   // context canceled
)

func (s RunStatus) String() string {
	switch s {
	case StatusHalted:
		return "halted"
	case StatusStepLimit:
		return "step limit"
	case StatusSizeLimit:
		return "size limit"
	case StatusCanceled:
		return "canceled"
	}
	return "unknown"
}

// Interpreter is the main Push interpreter. It is not safe for concurrent
// use; run independent programs in independent interpreters.
type Interpreter struct {
	config       *Config
	logger       *Logger
	state        *State
	instructions *InstructionSet
	ctx          Context
	steps        int
}

// New creates a new interpreter with a fresh state and the instruction set
// described by config
func New(config *Config) *Interpreter {
	if config == nil {
		config = DefaultConfig()
	}
	logger := NewLoggerFromConfig(config)
	return NewWithInstructions(NewState(config), NewInstructionSet(config, logger), logger)
}

// NewWithInstructions creates an interpreter over an existing state and
// instruction set. Several interpreters may share one set since sets are
// read-only while programs run.
func NewWithInstructions(state *State, set *InstructionSet, logger *Logger) *Interpreter {
	if logger == nil {
		logger = set.logger
	}
	in := &Interpreter{
		config:       state.Config,
		logger:       logger,
		state:        state,
		instructions: set,
	}
	in.ctx = Context{State: state, Instructions: set, Logger: logger}
	return in
}

// State returns the interpreter's program state
func (in *Interpreter) State() *State {
	return in.state
}

// Instructions returns the instruction set used for dispatch
func (in *Interpreter) Instructions() *InstructionSet {
	return in.instructions
}

// Logger returns the interpreter's logger
func (in *Interpreter) Logger() *Logger {
	return in.logger
}

// Config returns the interpreter's configuration
func (in *Interpreter) Config() *Config {
	return in.config
}

// Steps returns the number of steps executed since the last Load
func (in *Interpreter) Steps() int {
	return in.steps
}

// Load pushes a program onto the EXEC stack so that its first item runs
// first, and resets the step counter
func (in *Interpreter) Load(program List) {
	for i := len(program.Items) - 1; i >= 0; i-- {
		in.state.Exec.Push(Copy(program.Items[i]))
	}
	in.steps = 0
}

// LoadString parses src and loads the result
func (in *Interpreter) LoadString(src string) error {
	program, err := Parse(src, in.instructions)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			in.logger.ParseError(parseErr)
		}
		return err
	}
	in.Load(program)
	return nil
}

// Step executes the top item of the EXEC stack. It returns false when the
// EXEC stack is empty.
func (in *Interpreter) Step() bool {
	item, ok := in.state.Exec.Pop()
	if !ok {
		return false
	}
	in.steps++
	in.logger.TraceCat(CatExec, "step %d: %s", in.steps, item)

	switch v := item.(type) {
	case List:
		for i := len(v.Items) - 1; i >= 0; i-- {
			in.state.Exec.Push(v.Items[i])
		}
	case Literal:
		in.stepLiteral(v)
	case Instruction:
		in.stepInstruction(v.Name)
	}
	return true
}

func (in *Interpreter) stepLiteral(l Literal) {
	if l.Type != TypeName {
		in.state.PushLiteral(l)
		return
	}
	if in.state.quoteNextName {
		in.state.quoteNextName = false
		in.state.Name.Push(l.Name)
		return
	}
	if bound, ok := in.state.Definition(l.Name); ok {
		in.state.Exec.Push(bound)
		return
	}
	in.state.Name.Push(l.Name)
}

func (in *Interpreter) stepInstruction(name string) {
	if bound, ok := in.state.Definition(name); ok {
		in.state.Exec.Push(bound)
		return
	}
	def, ok := in.instructions.Lookup(name)
	if !ok {
		in.logger.TraceCat(CatExec, "unknown instruction %s ignored", name)
		return
	}
	in.ctx.Name = name
	def.Handler(&in.ctx)
}

// Run steps until the EXEC stack is empty or a ceiling is reached
func (in *Interpreter) Run() (RunStatus, error) {
	return in.RunContext(context.Background())
}

// RunContext is Run with cancellation. A canceled context stops the run
// between steps and its error is returned with StatusCanceled.
func (in *Interpreter) RunContext(ctx context.Context) (RunStatus, error) {
	limit := in.config.EvalPushLimit
	maxPoints := in.config.MaxExecPoints
	for in.state.Exec.Size() > 0 {
		if err := ctx.Err(); err != nil {
			return StatusCanceled, err
		}
		if limit > 0 && in.steps >= limit {
			return in.halt(StatusStepLimit, ErrStepLimit)
		}
		in.Step()
		if maxPoints > 0 && in.state.ExecPoints() > maxPoints {
			return in.halt(StatusSizeLimit, ErrSizeLimit)
		}
	}
	in.logger.DebugCat(CatExec, "halted after %d steps", in.steps)
	return StatusHalted, nil
}

func (in *Interpreter) halt(status RunStatus, cause error) (RunStatus, error) {
	err := &LimitError{Err: cause, Steps: in.steps, ExecPoints: in.state.ExecPoints()}
	in.logger.InfoCat(CatExec, "%v", err)
	return status, err
}

// Execute parses src, loads it over the current state and runs it
func (in *Interpreter) Execute(src string) (RunStatus, error) {
	if err := in.LoadString(src); err != nil {
		return StatusHalted, err
	}
	return in.Run()
}

// Reset flushes every stack and bindings, and resets the step counter
func (in *Interpreter) Reset() {
	in.state.Reset()
	in.steps = 0
}
