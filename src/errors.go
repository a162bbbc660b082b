package pushvm

import (
	"errors"
	"fmt"
)

// Sentinel errors reported when Run stops at a resource ceiling
var (
	ErrStepLimit = errors.New("step limit reached")
	ErrSizeLimit = errors.New("exec stack size limit exceeded")
)

// LimitError reports a run that was stopped before the program halted
type LimitError struct {
	Err        error // ErrStepLimit or ErrSizeLimit
	Steps      int   // steps executed before stopping
	ExecPoints int   // points on the EXEC stack when stopped
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("pushvm: %v after %d steps (%d exec points)", e.Err, e.Steps, e.ExecPoints)
}

func (e *LimitError) Unwrap() error {
	return e.Err
}

// ParseError represents a program text error with position information
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}
