package pushvm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// LogLevel represents the severity of a log message (higher value = higher severity)
type LogLevel int

const (
	LevelTrace  LogLevel = iota // Per-step tracing (requires enabled + category)
	LevelInfo                   // Informational messages (requires enabled + category)
	LevelDebug                  // Development debugging (requires enabled + category)
	LevelNotice                 // Notable events (always shown)
	LevelWarn                   // Warnings (always shown)
	LevelError                  // Runtime errors (always shown)
	LevelFatal                  // Parse errors (always shown)
)

// LogCategory represents the subsystem generating the message
type LogCategory string

const (
	CatNone   LogCategory = ""       // Uncategorized
	CatParse  LogCategory = "parse"  // Program text parsing
	CatExec   LogCategory = "exec"   // Step/run loop
	CatCode   LogCategory = "code"   // CODE stack manipulation
	CatFlow   LogCategory = "flow"   // Loops, conditionals, combinators
	CatIndex  LogCategory = "index"  // Loop index pairs
	CatMath   LogCategory = "math"   // Arithmetic
	CatRandom LogCategory = "random" // Random code generation
	CatIO     LogCategory = "io"     // External commands
	CatSystem LogCategory = "system" // Registration and configuration
	CatUser   LogCategory = "user"   // Embedding application
)

var allCategories = []LogCategory{
	CatParse, CatExec, CatCode, CatFlow, CatIndex, CatMath, CatRandom, CatIO, CatSystem, CatUser,
}

// ANSI color codes for terminal output
const (
	colorYellow = "\x1b[93m"
	colorReset  = "\x1b[0m"
)

// Logger handles logging for the interpreter
type Logger struct {
	enabled           bool
	enabledCategories map[LogCategory]bool
	out               io.Writer
	errOut            io.Writer
	colorEnabled      bool
}

// stderrSupportsColor checks if stderr is a terminal that supports color output
func stderrSupportsColor() bool {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// NewLogger creates a new logger
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled:           enabled,
		enabledCategories: make(map[LogCategory]bool),
		out:               os.Stdout,
		errOut:            os.Stderr,
		colorEnabled:      stderrSupportsColor(),
	}
}

// NewLoggerFromConfig creates a logger with the categories named in config
func NewLoggerFromConfig(config *Config) *Logger {
	l := NewLogger(config.Debug)
	for _, name := range config.LogCategories {
		if name == "all" {
			l.EnableAllCategories()
			continue
		}
		l.EnableCategory(LogCategory(strings.ToLower(name)))
	}
	return l
}

// SetOutput replaces the debug and error writers. Color is disabled since
// the writers are no longer known to be terminals.
func (l *Logger) SetOutput(out, errOut io.Writer) {
	l.out = out
	l.errOut = errOut
	l.colorEnabled = false
}

// SetEnabled enables or disables debug logging
func (l *Logger) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// EnableCategory enables debug logging for a specific category
func (l *Logger) EnableCategory(cat LogCategory) {
	l.enabledCategories[cat] = true
}

// DisableCategory disables debug logging for a specific category
func (l *Logger) DisableCategory(cat LogCategory) {
	delete(l.enabledCategories, cat)
}

// EnableAllCategories enables all categories for debug logging
func (l *Logger) EnableAllCategories() {
	for _, cat := range allCategories {
		l.enabledCategories[cat] = true
	}
}

// IsCategoryEnabled checks if a category is enabled
func (l *Logger) IsCategoryEnabled(cat LogCategory) bool {
	return l.enabledCategories[cat]
}

// shouldLog determines if a message should be logged based on level and category
func (l *Logger) shouldLog(level LogLevel, cat LogCategory) bool {
	switch level {
	case LevelFatal, LevelError, LevelWarn, LevelNotice:
		return true
	case LevelDebug, LevelInfo, LevelTrace:
		return l.enabled && (cat == CatNone || l.enabledCategories[cat])
	default:
		return false
	}
}

// Log is the unified logging method
func (l *Logger) Log(level LogLevel, cat LogCategory, message string) {
	if l == nil || !l.shouldLog(level, cat) {
		return
	}

	catSuffix := ""
	if cat != CatNone {
		catSuffix = fmt.Sprintf(":%s", cat)
	}

	var prefix string
	switch level {
	case LevelTrace:
		prefix = fmt.Sprintf("[TRACE%s]", catSuffix)
	case LevelInfo:
		prefix = fmt.Sprintf("[INFO%s]", catSuffix)
	case LevelDebug:
		prefix = fmt.Sprintf("[DEBUG%s]", catSuffix)
	case LevelNotice:
		prefix = fmt.Sprintf("[Push%s NOTICE]", catSuffix)
	case LevelWarn:
		prefix = fmt.Sprintf("[Push%s WARN]", catSuffix)
	case LevelError, LevelFatal:
		prefix = fmt.Sprintf("[Push%s ERROR]", catSuffix)
	}

	output := prefix + " " + message

	// Trace, Info, Debug go to out; Notice, Warn, Error, Fatal go to errOut
	if level <= LevelDebug {
		_, _ = fmt.Fprintln(l.out, output)
		return
	}
	if l.colorEnabled {
		_, _ = fmt.Fprintf(l.errOut, "%s%s%s\n", colorYellow, output, colorReset)
	} else {
		_, _ = fmt.Fprintln(l.errOut, output)
	}
}

// ErrorCat logs a categorized error message
func (l *Logger) ErrorCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelError, cat, fmt.Sprintf(format, args...))
}

// WarnCat logs a categorized warning message
func (l *Logger) WarnCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelWarn, cat, fmt.Sprintf(format, args...))
}

// NoticeCat logs a categorized notice message
func (l *Logger) NoticeCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelNotice, cat, fmt.Sprintf(format, args...))
}

// DebugCat logs a categorized debug message
func (l *Logger) DebugCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelDebug, cat, fmt.Sprintf(format, args...))
}

// InfoCat logs a categorized informational message
func (l *Logger) InfoCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelInfo, cat, fmt.Sprintf(format, args...))
}

// TraceCat logs a categorized trace message
func (l *Logger) TraceCat(cat LogCategory, format string, args ...interface{}) {
	if l == nil || !l.shouldLog(LevelTrace, cat) {
		return
	}
	l.Log(LevelTrace, cat, fmt.Sprintf(format, args...))
}

// ParseError logs a parse error (always visible)
func (l *Logger) ParseError(err *ParseError) {
	l.Log(LevelFatal, CatParse, err.Error())
}

// InstructionWarning logs a warning raised by a named instruction
func (l *Logger) InstructionWarning(cat LogCategory, name, message string) {
	if name != "" {
		message = fmt.Sprintf("%s: %s", strings.ToUpper(name), message)
	}
	l.Log(LevelWarn, cat, message)
}
