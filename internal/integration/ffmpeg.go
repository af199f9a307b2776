package integration

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrFFmpegNotFound indicates that no usable ffmpeg binary could be located.
var ErrFFmpegNotFound = errors.New("ffmpeg not found in PATH; install ffmpeg or set ffmpeg.path in .kinemarc")

// Discovery describes a located media codec toolchain.
type Discovery struct {
	Path    string // absolute path to the ffmpeg binary
	Version string // e.g. "6.1.1"
	LibDir  string // codec runtime library directory, may be empty
	Source  string // "config", "path"
}

// CodecDiscoverer locates the ffmpeg binary and its codec libraries at
// startup so renders fail fast instead of at encode time.
type CodecDiscoverer interface {
	Discover(ctx context.Context, configuredPath string) (*Discovery, error)
}

// codecDiscoverer implements CodecDiscoverer using an executor for probing.
type codecDiscoverer struct {
	executor CLIExecutor
}

// NewCodecDiscoverer creates a new CodecDiscoverer.
func NewCodecDiscoverer(executor CLIExecutor) CodecDiscoverer {
	return &codecDiscoverer{executor: executor}
}

// Discover resolves ffmpeg from the configured path first, then PATH.
// The codec library directory comes from pkg-config when available.
func (d *codecDiscoverer) Discover(ctx context.Context, configuredPath string) (*Discovery, error) {
	disc := &Discovery{}

	if configuredPath != "" {
		disc.Path = configuredPath
		disc.Source = "config"
	} else {
		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			return nil, ErrFFmpegNotFound
		}
		disc.Path = path
		disc.Source = "path"
	}

	version, err := d.probeVersion(ctx, disc.Path)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", disc.Path, err)
	}
	disc.Version = version

	// Best effort: a missing pkg-config or libavcodec just leaves LibDir empty.
	disc.LibDir = d.probeLibDir(ctx)

	return disc, nil
}

// probeVersion runs `ffmpeg -version` and extracts the version token from
// the first line, which looks like "ffmpeg version 6.1.1 Copyright ...".
func (d *codecDiscoverer) probeVersion(ctx context.Context, path string) (string, error) {
	result, err := d.executor.Exec(ctx, ExecConfig{CLI: path, Args: []string{"-version"}})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("ffmpeg -version exited with code %d", result.ExitCode)
	}
	return ParseFFmpegVersion(result.Stdout), nil
}

// probeLibDir asks pkg-config for the libavcodec library directory.
func (d *codecDiscoverer) probeLibDir(ctx context.Context) string {
	result, err := d.executor.Exec(ctx, ExecConfig{
		CLI:  "pkg-config",
		Args: []string{"--variable=libdir", "libavcodec"},
	})
	if err != nil || result.ExitCode != 0 {
		return ""
	}
	return strings.TrimSpace(result.Stdout)
}

// ParseFFmpegVersion extracts the version token from `ffmpeg -version` output.
// Returns "unknown" when the output does not match the expected shape.
func ParseFFmpegVersion(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(line)
	// "ffmpeg version N.N.N ..."
	if len(fields) >= 3 && fields[0] == "ffmpeg" && fields[1] == "version" {
		return fields[2]
	}
	return "unknown"
}
