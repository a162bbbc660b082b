package pushvm

import (
	"bytes"
	"math/big"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func newExecInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	in := newTestInterpreter(t, func(c *Config) {
		c.AllowExec = true
		c.ExecTimeout = 5 * time.Second
	})
	var warnings bytes.Buffer
	in.Logger().SetOutput(&bytes.Buffer{}, &warnings)
	return in, &warnings
}

func TestExecCommand(t *testing.T) {
	t.Run("Disabled by default", func(t *testing.T) {
		in := newTestInterpreter(t)
		if in.Instructions().Has("EXEC.CMD") {
			t.Error("EXEC.CMD should not be registered without AllowExec")
		}
		in.State().Name.Push("echo")
		in.State().Exec.Push(NewInstruction("EXEC.CMD"))
		in.State().Integer.Push(big.NewInt(0))
		if _, err := in.Run(); err != nil {
			t.Fatal(err)
		}
		if in.State().Name.String() != "echo" {
			t.Errorf("Expected NAME stack untouched, got %q", in.State().Name.String())
		}
	})

	t.Run("Successful command with stdout", func(t *testing.T) {
		in, _ := newExecInterpreter(t)
		_, err := in.Execute("NAME.QUOTE echo NAME.QUOTE Hello 1 EXEC.CMD")
		if err != nil {
			t.Fatal(err)
		}
		if got := in.State().Name.String(); got != "Hello" {
			t.Errorf("Expected 'Hello', got '%s'", got)
		}
		if in.State().Integer.Size() != 0 {
			t.Error("Expected the argument count to be consumed")
		}
	})

	t.Run("Command with arguments", func(t *testing.T) {
		in, _ := newExecInterpreter(t)
		if _, err := in.Execute("echo arg1 arg2 arg3 3 EXEC.CMD"); err != nil {
			t.Fatal(err)
		}
		if got := in.State().Name.String(); got != "arg1 arg2 arg3" {
			t.Errorf("Expected 'arg1 arg2 arg3', got '%s'", got)
		}
	})

	t.Run("Too few names leaves the stacks alone", func(t *testing.T) {
		in, _ := newExecInterpreter(t)
		if _, err := in.Execute("echo 1 EXEC.CMD"); err != nil {
			t.Fatal(err)
		}
		if in.State().Name.String() != "echo" || in.State().Integer.String() != "1" {
			t.Errorf("Expected no change, got names %q ints %q", in.State().Name, in.State().Integer)
		}
	})

	t.Run("Negative count is ignored", func(t *testing.T) {
		in, _ := newExecInterpreter(t)
		if _, err := in.Execute("echo -1 EXEC.CMD"); err != nil {
			t.Fatal(err)
		}
		if in.State().Integer.String() != "-1" {
			t.Errorf("Expected count left in place, got %q", in.State().Integer)
		}
	})

	t.Run("Non-existent command", func(t *testing.T) {
		in, warnings := newExecInterpreter(t)
		if _, err := in.Execute("this_command_does_not_exist_12345 0 EXEC.CMD"); err != nil {
			t.Fatal(err)
		}
		if in.State().Name.Size() != 0 {
			t.Errorf("Expected no output, got %q", in.State().Name)
		}
		if !strings.Contains(warnings.String(), "EXEC.CMD") {
			t.Errorf("Expected a warning naming EXEC.CMD, got %q", warnings.String())
		}
	})

	t.Run("Stderr is reported as a warning", func(t *testing.T) {
		in, warnings := newExecInterpreter(t)
		in.State().Name.Push("sh")
		in.State().Name.Push("-c")
		in.State().Name.Push("echo oops >&2")
		in.State().Integer.Push(big.NewInt(2))
		call(t, in, "EXEC.CMD")
		if !strings.Contains(warnings.String(), "oops") {
			t.Errorf("Expected stderr in warnings, got %q", warnings.String())
		}
		if in.State().Name.Size() != 1 || in.State().Name.String() != "" {
			t.Errorf("Expected empty stdout pushed, got %q", in.State().Name)
		}
	})

	t.Run("Random code never calls out", func(t *testing.T) {
		in, _ := newExecInterpreter(t)
		gen := NewCodeGenerator(in.State(), in.Instructions())
		for i := 0; i < 50; i++ {
			code, _ := gen.RandomCode(100)
			if strings.Contains(code.String(), "EXEC.CMD") {
				t.Fatalf("Random code contains EXEC.CMD: %s", code)
			}
		}
	})
}
