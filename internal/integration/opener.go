package integration

import (
	"context"
	"fmt"
	"runtime"
)

// Opener launches a file or URL in the user's default application,
// typically the browser for flame graph reports.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// opener implements Opener via the platform's open command.
type opener struct {
	executor CLIExecutor
}

// NewOpener creates a new Opener.
func NewOpener(executor CLIExecutor) Opener {
	return &opener{executor: executor}
}

// openArgs returns the platform command that opens a target in the default
// application. Split out for testing.
func openArgs(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func (o *opener) Open(ctx context.Context, target string) error {
	cli, args := openArgs(runtime.GOOS, target)
	result, err := o.executor.Exec(ctx, ExecConfig{CLI: cli, Args: args})
	if err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("opening %s: %s exited with code %d", target, cli, result.ExitCode)
	}
	return nil
}
