package integration

import (
	"context"
	"errors"
	"testing"
)

// fakeExecutor returns canned results per CLI name.
type fakeExecutor struct {
	results map[string]*ExecResult
	errs    map[string]error
	calls   []ExecConfig
}

func (f *fakeExecutor) Exec(_ context.Context, config ExecConfig) (*ExecResult, error) {
	f.calls = append(f.calls, config)
	if err, ok := f.errs[config.CLI]; ok {
		return &ExecResult{ExitCode: -1}, err
	}
	if r, ok := f.results[config.CLI]; ok {
		return r, nil
	}
	return &ExecResult{}, nil
}

func (f *fakeExecutor) ResolveAlias(name string, aliases []CLIAlias) (string, []string, bool) {
	return name, nil, false
}

func (f *fakeExecutor) BuildEnv(base []string, extra map[string]string, rctx *RenderEnvContext) []string {
	return base
}

func (f *fakeExecutor) ListAliases(aliases []CLIAlias) []string { return nil }

const versionOutput = `ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers
built with gcc 13 (Ubuntu 13.2.0)
configuration: --prefix=/usr
`

func TestDiscover_ConfiguredPath(t *testing.T) {
	fake := &fakeExecutor{
		results: map[string]*ExecResult{
			"/opt/ffmpeg/bin/ffmpeg": {Stdout: versionOutput},
			"pkg-config":             {Stdout: "/usr/lib/x86_64-linux-gnu\n"},
		},
	}
	disc, err := NewCodecDiscoverer(fake).Discover(context.Background(), "/opt/ffmpeg/bin/ffmpeg")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if disc.Path != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Path = %q", disc.Path)
	}
	if disc.Source != "config" {
		t.Errorf("Source = %q, want config", disc.Source)
	}
	if disc.Version != "6.1.1" {
		t.Errorf("Version = %q, want 6.1.1", disc.Version)
	}
	if disc.LibDir != "/usr/lib/x86_64-linux-gnu" {
		t.Errorf("LibDir = %q", disc.LibDir)
	}
}

func TestDiscover_ProbeFailure(t *testing.T) {
	fake := &fakeExecutor{
		errs: map[string]error{"/bad/ffmpeg": errors.New("exec format error")},
	}
	if _, err := NewCodecDiscoverer(fake).Discover(context.Background(), "/bad/ffmpeg"); err == nil {
		t.Fatal("Discover() with broken binary succeeded, want error")
	}
}

func TestDiscover_MissingPkgConfig(t *testing.T) {
	fake := &fakeExecutor{
		results: map[string]*ExecResult{
			"/usr/bin/ffmpeg": {Stdout: versionOutput},
		},
		errs: map[string]error{"pkg-config": errors.New("not found")},
	}
	disc, err := NewCodecDiscoverer(fake).Discover(context.Background(), "/usr/bin/ffmpeg")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if disc.LibDir != "" {
		t.Errorf("LibDir = %q, want empty when pkg-config is absent", disc.LibDir)
	}
}

func TestParseFFmpegVersion(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string
	}{
		{"release", versionOutput, "6.1.1"},
		{"git build", "ffmpeg version n7.0-dev-1234 Copyright (c) 2000\n", "n7.0-dev-1234"},
		{"garbage", "command not found\n", "unknown"},
		{"empty", "", "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseFFmpegVersion(tc.output); got != tc.want {
				t.Errorf("ParseFFmpegVersion() = %q, want %q", got, tc.want)
			}
		})
	}
}
