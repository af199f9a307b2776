package observability

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestEventLog_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	events := []Event{
		{
			Time:    now,
			Level:   "INFO",
			Type:    "render.started",
			Message: "render started",
			Data:    map[string]any{"scene": "shapes", "job_id": "a1b2"},
		},
		{
			Time:    now.Add(time.Second),
			Level:   "ERROR",
			Type:    "render.failed",
			Message: "encoder exited",
			Data:    map[string]any{"scene": "shapes", "job_id": "a1b2"},
		},
	}

	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}

	if result[0].Type != "render.started" {
		t.Errorf("expected type render.started, got %s", result[0].Type)
	}
	if result[0].Message != "render started" {
		t.Errorf("expected message 'render started', got %s", result[0].Message)
	}
	if result[1].Level != "ERROR" {
		t.Errorf("expected level ERROR, got %s", result[1].Level)
	}
}

func TestEventLog_FilterByType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC()
	events := []Event{
		{Time: now, Level: "INFO", Type: "render.started", Message: "started"},
		{Time: now.Add(time.Second), Level: "INFO", Type: "recipe.executed", Message: "ran recipe"},
		{Time: now.Add(2 * time.Second), Level: "INFO", Type: "render.started", Message: "another start"},
	}

	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	result, err := log.Read(EventFilter{Type: "render.started"})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 render.started events, got %d", len(result))
	}
	for _, e := range result {
		if e.Type != "render.started" {
			t.Errorf("filter leaked event of type %s", e.Type)
		}
	}
}

func TestEventLog_FilterByTimeWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := Event{
			Time:    base.Add(time.Duration(i) * time.Hour),
			Level:   "INFO",
			Type:    "render.completed",
			Message: "done",
		}
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	since := base.Add(time.Hour)
	until := base.Add(3 * time.Hour)
	result, err := log.Read(EventFilter{Since: &since, Until: &until})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 events in window, got %d", len(result))
	}
}

func TestEventLog_ReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("closing event log: %v", err)
	}

	other := &jsonlEventLog{path: filepath.Join(t.TempDir(), "nope.jsonl")}
	events, err := other.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading missing log: %v", err)
	}
	if events != nil {
		t.Errorf("expected nil events for missing file, got %v", events)
	}
}

func TestEventLog_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				e := Event{
					Time:    time.Now().UTC(),
					Level:   "INFO",
					Type:    "frame.rastered",
					Message: "frame",
				}
				if err := log.Write(e); err != nil {
					t.Errorf("writing event: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != writers*perWriter {
		t.Errorf("expected %d events, got %d", writers*perWriter, len(result))
	}
}

func TestTypedEventsFeedMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	for _, e := range []Event{
		RenderStarted("a1b2c3d4", "intro", false),
		RenderCompleted("a1b2c3d4", "intro", 120, 3.5, "output/intro.mp4"),
		RenderStarted("e5f6a7b8", "intro", true),
		RenderFailed("e5f6a7b8", "intro", "encoder exited"),
		RecipeExecuted("run_debug", 0),
		ProfileCaptured("output/profiles/cpu.pprof"),
	} {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	m, err := NewMetricsCalculator(log).Calculate(time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.RendersStarted != 2 || m.RendersCompleted != 1 || m.RendersFailed != 1 {
		t.Errorf("render counts = %d/%d/%d, want 2/1/1",
			m.RendersStarted, m.RendersCompleted, m.RendersFailed)
	}
	if m.FramesRendered != 120 {
		t.Errorf("FramesRendered = %d, want 120", m.FramesRendered)
	}
	if m.RenderSeconds != 3.5 {
		t.Errorf("RenderSeconds = %v, want 3.5", m.RenderSeconds)
	}
	if m.RecipesByName["run_debug"] != 1 {
		t.Errorf("RecipesByName = %v", m.RecipesByName)
	}
	if m.ProfilesCaptured != 1 {
		t.Errorf("ProfilesCaptured = %d, want 1", m.ProfilesCaptured)
	}
}
