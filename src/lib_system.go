package pushvm

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// registerSystemInstructions registers instructions that reach outside the
// interpreter. They are loaded only when Config.AllowExec is set.
func (set *InstructionSet) registerSystemInstructions() {
	// EXEC.CMD - run an external command and capture its output. The top
	// INTEGER n gives the argument count; n+1 NAMEs are popped and the
	// deepest of them is the command.
	set.Register("EXEC.CMD", TypeSystem, func(ctx *Context) {
		n, ok := ctx.State.Integer.Top()
		if !ok || n.Sign() < 0 || !n.IsInt64() || n.Int64() >= int64(ctx.State.Name.Size()) {
			return
		}
		ctx.State.Integer.Pop()
		names, _ := ctx.State.Name.PopMany(int(n.Int64()) + 1)
		cmdName, cmdArgs := names[0], names[1:]

		timeout := ctx.State.Config.ExecTimeout
		runCtx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(runCtx, cmdName, cmdArgs...)

		var stdoutBuf, stderrBuf bytes.Buffer
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf

		ctx.Logger.DebugCat(CatIO, "EXEC.CMD %s %s", cmdName, strings.Join(cmdArgs, " "))
		err := cmd.Run()

		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			ctx.Logger.InstructionWarning(CatIO, ctx.Name, stderr)
		}
		if err != nil {
			ctx.Logger.InstructionWarning(CatIO, ctx.Name, err.Error())
			return
		}
		ctx.State.Name.Push(strings.TrimRight(stdoutBuf.String(), "\r\n"))
	})
}
