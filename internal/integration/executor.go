package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// CLIAlias maps a short alias name to a full CLI command with optional default arguments.
type CLIAlias struct {
	Name        string   `yaml:"name"`
	Command     string   `yaml:"command"`
	DefaultArgs []string `yaml:"default_args,omitempty"`
}

// ExecConfig holds all parameters needed to execute an external CLI tool.
type ExecConfig struct {
	CLI       string
	Args      []string
	Dir       string            // working directory, current dir if empty
	Env       map[string]string // extra environment variables
	RenderCtx *RenderEnvContext // nil if no active render job
	Aliases   []CLIAlias
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
}

// RenderEnvContext carries render-job information to inject as environment variables.
type RenderEnvContext struct {
	JobID       string
	Scene       string
	OutputDir   string
	FFmpegPath  string
	CodecLibDir string
}

// ExecResult captures the outcome of an external CLI invocation.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CLIExecutor defines the interface for invoking external CLI tools with
// alias resolution and render context injection.
type CLIExecutor interface {
	// Exec invokes an external CLI, resolving aliases and injecting render env vars.
	Exec(ctx context.Context, config ExecConfig) (*ExecResult, error)
	// ResolveAlias returns the expanded command and args for an alias, or the original if not aliased.
	ResolveAlias(name string, aliases []CLIAlias) (command string, defaultArgs []string, found bool)
	// BuildEnv constructs the subprocess environment with render context variables injected.
	BuildEnv(base []string, extra map[string]string, renderCtx *RenderEnvContext) []string
	// ListAliases returns all configured CLI aliases as formatted strings.
	ListAliases(aliases []CLIAlias) []string
}

// cliExecutor implements CLIExecutor.
type cliExecutor struct{}

// NewCLIExecutor creates a new CLIExecutor.
func NewCLIExecutor() CLIExecutor {
	return &cliExecutor{}
}

// ResolveAlias scans the aliases list for a matching name. If found, it returns
// the expanded command and default args. If not found, it returns the original
// name with nil default args.
func (e *cliExecutor) ResolveAlias(name string, aliases []CLIAlias) (string, []string, bool) {
	for _, a := range aliases {
		if a.Name == name {
			return a.Command, a.DefaultArgs, true
		}
	}
	return name, nil, false
}

// BuildEnv appends extra variables and KINEMA_* render context variables to
// the base environment. Extra variables do not override ones already present
// in base; render context variables are appended last and win.
func (e *cliExecutor) BuildEnv(base []string, extra map[string]string, renderCtx *RenderEnvContext) []string {
	env := make([]string, len(base), len(base)+len(extra)+5)
	copy(env, base)
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	if renderCtx != nil {
		env = append(env,
			"KINEMA_JOB_ID="+renderCtx.JobID,
			"KINEMA_SCENE="+renderCtx.Scene,
			"KINEMA_OUTPUT_DIR="+renderCtx.OutputDir,
			"KINEMA_FFMPEG="+renderCtx.FFmpegPath,
			"KINEMA_CODEC_LIBDIR="+renderCtx.CodecLibDir,
		)
	}
	return env
}

// containsPipe returns true if any argument is the pipe character "|".
func containsPipe(args []string) bool {
	for _, a := range args {
		if a == "|" {
			return true
		}
	}
	return false
}

// Exec resolves aliases, builds the environment, and runs the external CLI.
// If the arguments contain a pipe character, the full command is delegated to
// the system shell (sh -c on Linux/Mac, cmd /c on Windows).
func (e *cliExecutor) Exec(ctx context.Context, config ExecConfig) (*ExecResult, error) {
	command, defaultArgs, _ := e.ResolveAlias(config.CLI, config.Aliases)

	// Build the full argument list: default_args + user args.
	fullArgs := make([]string, 0, len(defaultArgs)+len(config.Args))
	fullArgs = append(fullArgs, defaultArgs...)
	fullArgs = append(fullArgs, config.Args...)

	var cmd *exec.Cmd

	if containsPipe(fullArgs) {
		// Delegate to system shell for pipe support.
		parts := append([]string{command}, fullArgs...)
		cmdLine := strings.Join(parts, " ")
		if runtime.GOOS == "windows" {
			cmd = exec.CommandContext(ctx, "cmd", "/c", cmdLine)
		} else {
			cmd = exec.CommandContext(ctx, "sh", "-c", cmdLine)
		}
	} else {
		cmd = exec.CommandContext(ctx, command, fullArgs...)
	}

	cmd.Dir = config.Dir
	cmd.Env = e.BuildEnv(os.Environ(), config.Env, config.RenderCtx)

	// Set up I/O. We always capture stdout/stderr for the result,
	// but also tee to the provided writers if set.
	var stdoutBuf, stderrBuf bytes.Buffer

	if config.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdoutBuf, config.Stdout)
	} else {
		cmd.Stdout = &stdoutBuf
	}

	if config.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, config.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if config.Stdin != nil {
		cmd.Stdin = config.Stdin
	}

	err := cmd.Run()

	result := &ExecResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Command could not be started (e.g., not found).
			return result, fmt.Errorf("executing %s: %w", command, err)
		}
	}

	return result, nil
}

// ListAliases returns formatted strings describing each configured alias.
func (e *cliExecutor) ListAliases(aliases []CLIAlias) []string {
	result := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if len(a.DefaultArgs) > 0 {
			result = append(result, fmt.Sprintf("%s -> %s [%s]", a.Name, a.Command, strings.Join(a.DefaultArgs, " ")))
		} else {
			result = append(result, fmt.Sprintf("%s -> %s", a.Name, a.Command))
		}
	}
	return result
}
