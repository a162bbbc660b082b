package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phroun/pushvm"
	"golang.org/x/term"
)

const (
	prompt             = "push> "
	continuationPrompt = "....> "
)

// runREPL runs an interactive Read-Eval-Print Loop. The state survives
// between inputs; ":reset" clears it.
func runREPL(config *pushvm.Config) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "REPL requires a terminal")
		return
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		return
	}
	defer term.Restore(fd, oldState)

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(screen, prompt)

	in := pushvm.New(config)
	in.Logger().SetOutput(t, t)

	fmt.Fprintf(t, "pushr %s. Type :help for commands, exit to leave.\n", version)

	var pending strings.Builder
	for {
		line, err := t.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(t, "read error: %v\n", err)
			}
			return
		}

		trimmed := strings.TrimSpace(line)
		if pending.Len() == 0 {
			if quit := replCommand(t, in, trimmed); quit {
				return
			}
			if strings.HasPrefix(trimmed, ":") || trimmed == "" {
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		if depth := openParens(pending.String()); depth > 0 {
			t.SetPrompt(continuationPrompt)
			continue
		}
		t.SetPrompt(prompt)

		source := pending.String()
		pending.Reset()
		if _, err := in.Execute(source); err != nil {
			var limitErr *pushvm.LimitError
			if errors.As(err, &limitErr) {
				fmt.Fprintf(t, "stopped: %v\n", limitErr)
			}
		}
		fmt.Fprint(t, in.State())
	}
}

// replCommand handles the colon commands. It reports whether the REPL
// should exit.
func replCommand(t *term.Terminal, in *pushvm.Interpreter, input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	case ":reset":
		in.Reset()
		fmt.Fprintln(t, "state cleared")
	case ":state":
		fmt.Fprint(t, in.State())
	case ":names":
		fmt.Fprintln(t, strings.Join(in.State().BoundNames(), " "))
	case ":instructions":
		fmt.Fprintln(t, strings.Join(in.Instructions().EnabledNames(), " "))
	case ":help":
		fmt.Fprintln(t, "  :state         show every stack")
		fmt.Fprintln(t, "  :reset         clear stacks and bindings")
		fmt.Fprintln(t, "  :names         list bound names")
		fmt.Fprintln(t, "  :instructions  list enabled instructions")
		fmt.Fprintln(t, "  exit, quit     leave")
	}
	return false
}

// openParens returns how many parentheses remain open in source, ignoring
// comments
func openParens(source string) int {
	depth := 0
	for _, line := range strings.Split(source, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		depth += strings.Count(line, "(") - strings.Count(line, ")")
	}
	return depth
}
