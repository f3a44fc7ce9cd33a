package light

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one configured command line.
type Runner interface {
	Run(ctx context.Context, command string) error
}

// ShellRunner runs commands through `sh -c`.
type ShellRunner struct {
	Shell string
}

func (r ShellRunner) Run(ctx context.Context, command string) error {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}
	out, err := exec.CommandContext(ctx, shell, "-c", command).CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %q: %w: %s", command, err, strings.TrimSpace(string(out)))
	}
	return nil
}
