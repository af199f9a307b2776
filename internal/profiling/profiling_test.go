package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession_CapturesProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "cpu.pprof")

	s, err := Start(path)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Burn a little CPU so the profile has samples.
	x := 0
	for i := 0; i < 1_000_000; i++ {
		x += i % 7
	}
	_ = x

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("profile file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("profile file is empty")
	}
}

func TestStart_SecondSessionFails(t *testing.T) {
	dir := t.TempDir()
	s, err := Start(filepath.Join(dir, "a.pprof"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() { _ = s.Stop() }()

	if _, err := Start(filepath.Join(dir, "b.pprof")); err == nil {
		t.Fatal("second concurrent Start() succeeded, want error")
	}
}

func TestFreePort(t *testing.T) {
	port, err := FreePort()
	if err != nil {
		t.Fatalf("FreePort() error = %v", err)
	}
	if port <= 0 || port > 65535 {
		t.Errorf("port = %d, out of range", port)
	}
}

func TestFlameGraphURL(t *testing.T) {
	if got := FlameGraphURL(8080); got != "http://localhost:8080/ui/flamegraph" {
		t.Errorf("FlameGraphURL(8080) = %q", got)
	}
}
