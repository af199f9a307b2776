package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/kinemalab/kinema/internal/observability"
)

// --- parseSinceDuration unit tests ---

func TestParseSinceDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"empty defaults to 7d", "", false, ""},
		{"whitespace defaults to 7d", "  ", false, ""},
		{"valid 7d", "7d", false, ""},
		{"valid 30d", "30d", false, ""},
		{"valid 24h", "24h", false, ""},
		{"invalid suffix", "abc", true, "unsupported duration format"},
		{"invalid day number", "xd", true, "invalid day duration"},
		{"invalid hour number", "yh", true, "invalid hour duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSinceDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestParseSinceDuration_Window(t *testing.T) {
	got, err := parseSinceDuration("24h")
	if err != nil {
		t.Fatalf("parseSinceDuration(24h) error = %v", err)
	}
	want := time.Now().UTC().Add(-24 * time.Hour)
	if diff := got.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("parseSinceDuration(24h) = %v, want ~%v", got, want)
	}
}

// --- metricsCmd tests ---

type metricsMock struct {
	calcFn func(since time.Time) (*observability.Metrics, error)
}

func (m *metricsMock) Calculate(since time.Time) (*observability.Metrics, error) {
	return m.calcFn(since)
}

func TestMetricsCmd_NotInitialized(t *testing.T) {
	saved := MetricsCalc
	MetricsCalc = nil
	defer func() { MetricsCalc = saved }()

	err := metricsCmd.RunE(metricsCmd, nil)
	if err == nil {
		t.Fatal("expected error when metrics calculator is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("error = %q", err)
	}
}

func TestMetricsCmd_CalculatorCalled(t *testing.T) {
	saved := MetricsCalc
	defer func() { MetricsCalc = saved }()

	called := false
	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			called = true
			return &observability.Metrics{
				RendersStarted:   2,
				RendersCompleted: 2,
				FramesRendered:   620,
				RecipesByName:    map[string]int{"run": 1},
			}, nil
		},
	}

	if err := metricsCmd.RunE(metricsCmd, nil); err != nil {
		t.Fatalf("metricsCmd error = %v", err)
	}
	if !called {
		t.Error("calculator was not invoked")
	}
}
