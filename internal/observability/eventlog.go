package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Event types emitted by the render pipeline, the recipe runner, and the
// profiler. The metrics calculator aggregates over these.
const (
	EventRenderStarted   = "render.started"
	EventRenderCompleted = "render.completed"
	EventRenderFailed    = "render.failed"
	EventRecipeExecuted  = "recipe.executed"
	EventProfileCaptured = "profile.captured"
)

// Event represents a single observable event in the system.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Type    string         `json:"type"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

func newEvent(level, eventType, msg string, data map[string]any) Event {
	return Event{
		Time:    time.Now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: msg,
		Data:    data,
	}
}

// RenderStarted records the start of a render job.
func RenderStarted(jobID, sceneName string, debug bool) Event {
	return newEvent(LevelInfo, EventRenderStarted, "render started", map[string]any{
		"job_id": jobID, "scene": sceneName, "debug": debug,
	})
}

// RenderCompleted records a finished render. The frames and seconds fields
// feed the FramesRendered and RenderSeconds metrics.
func RenderCompleted(jobID, sceneName string, frames int, seconds float64, output string) Event {
	return newEvent(LevelInfo, EventRenderCompleted, "render completed", map[string]any{
		"job_id":  jobID,
		"scene":   sceneName,
		"frames":  frames,
		"seconds": seconds,
		"output":  output,
	})
}

// RenderFailed records a render that did not produce output.
func RenderFailed(jobID, sceneName, reason string) Event {
	return newEvent(LevelError, EventRenderFailed, reason, map[string]any{
		"job_id": jobID, "scene": sceneName,
	})
}

// RecipeExecuted records a recipe run and its exit status.
func RecipeExecuted(recipe string, exitCode int) Event {
	return newEvent(LevelInfo, EventRecipeExecuted, "recipe finished", map[string]any{
		"recipe": recipe, "exit_code": exitCode,
	})
}

// ProfileCaptured records a CPU profile written to disk.
func ProfileCaptured(profilePath string) Event {
	return newEvent(LevelInfo, EventProfileCaptured, "CPU profile captured", map[string]any{
		"profile": profilePath,
	})
}

// EventFilter specifies criteria for reading events back.
type EventFilter struct {
	Since *time.Time
	Until *time.Time
	Type  string
	Level string
}

// matches reports whether an event satisfies every set criterion.
func (f EventFilter) matches(e Event) bool {
	if f.Since != nil && e.Time.Before(*f.Since) {
		return false
	}
	if f.Until != nil && e.Time.After(*f.Until) {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Level != "" && e.Level != f.Level {
		return false
	}
	return true
}

// EventLog defines the interface for writing and reading events.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file, one
// event per line. Malformed lines are skipped on read so a crash mid-write
// never poisons the log.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog opens (or creates) the event log at path for appending.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{path: path, file: f}, nil
}

// Write appends a JSON-encoded event followed by a newline.
func (l *jsonlEventLog) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	line = append(line, '\n')

	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Read scans the log line by line and returns the events matching filter.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // skip malformed lines
		}
		if filter.matches(event) {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}
