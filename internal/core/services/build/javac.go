package build

import (
	"context"
	"os/exec"
)

// execInvoker runs the compiler as a subprocess.
type execInvoker struct{}

// NewExecInvoker creates the subprocess-backed compiler invoker.
func NewExecInvoker() Invoker {
	return execInvoker{}
}

func (execInvoker) Available(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

func (execInvoker) Invoke(ctx context.Context, tool string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	return cmd.CombinedOutput()
}
