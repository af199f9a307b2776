// Package profiling captures CPU profiles of render runs and serves them
// as interactive flame graph reports in the browser.
package profiling

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/kinemalab/kinema/internal/integration"
)

// Session is an in-flight CPU profile capture.
type Session struct {
	path string
	file *os.File
}

// Start begins CPU profiling, writing to profilePath. The parent directory
// is created if needed.
func Start(profilePath string) (*Session, error) {
	if err := os.MkdirAll(filepath.Dir(profilePath), 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	f, err := os.Create(profilePath) //nolint:gosec // G304: profile path comes from local config
	if err != nil {
		return nil, fmt.Errorf("creating profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	return &Session{path: profilePath, file: f}, nil
}

// Stop ends the capture and flushes the profile to disk.
func (s *Session) Stop() error {
	pprof.StopCPUProfile()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("closing profile file: %w", err)
	}
	return nil
}

// Path returns the location of the captured profile.
func (s *Session) Path() string {
	return s.path
}

// FreePort asks the kernel for an unused TCP port on localhost.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// ReportConfig controls how a profile report is served.
type ReportConfig struct {
	ProfilePath string
	Port        int // 0 picks a free port
}

// Reporter serves captured profiles as browsable flame graphs.
type Reporter interface {
	// Serve launches the pprof web UI for the profile and opens the
	// flame graph view in the browser. It blocks until ctx is done or
	// the UI process exits.
	Serve(ctx context.Context, config ReportConfig) (string, error)
}

// pprofReporter implements Reporter using `go tool pprof -http`.
type pprofReporter struct {
	executor integration.CLIExecutor
	opener   integration.Opener
}

// NewReporter creates a Reporter backed by the given executor and opener.
func NewReporter(executor integration.CLIExecutor, opener integration.Opener) Reporter {
	return &pprofReporter{executor: executor, opener: opener}
}

// FlameGraphURL returns the flame graph view of the pprof web UI on a port.
func FlameGraphURL(port int) string {
	return fmt.Sprintf("http://localhost:%d/ui/flamegraph", port)
}

func (r *pprofReporter) Serve(ctx context.Context, config ReportConfig) (string, error) {
	port := config.Port
	if port == 0 {
		var err error
		port, err = FreePort()
		if err != nil {
			return "", err
		}
	}
	url := FlameGraphURL(port)

	// Open the browser once the UI has had a moment to bind its port.
	// -no_browser keeps pprof from racing us with its own opener.
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(500 * time.Millisecond):
			_ = r.opener.Open(ctx, url)
		}
	}()

	result, err := r.executor.Exec(ctx, integration.ExecConfig{
		CLI: "go",
		Args: []string{
			"tool", "pprof",
			"-no_browser",
			fmt.Sprintf("-http=127.0.0.1:%d", port),
			config.ProfilePath,
		},
	})
	if err != nil {
		return url, fmt.Errorf("launching pprof UI: %w", err)
	}
	if result.ExitCode != 0 && ctx.Err() == nil {
		return url, fmt.Errorf("pprof UI exited with code %d: %s", result.ExitCode, result.Stderr)
	}
	return url, nil
}
