package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	RendersStarted   int            `json:"renders_started"`
	RendersCompleted int            `json:"renders_completed"`
	RendersFailed    int            `json:"renders_failed"`
	FramesRendered   int            `json:"frames_rendered"`
	RenderSeconds    float64        `json:"render_seconds"`
	RecipesExecuted  int            `json:"recipes_executed"`
	RecipesByName    map[string]int `json:"recipes_by_name"`
	ProfilesCaptured int            `json:"profiles_captured"`
	EventCount       int            `json:"event_count"`
	OldestEvent      *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		RecipesByName: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventRenderStarted:
			m.RendersStarted++
		case EventRenderCompleted:
			m.RendersCompleted++
			if frames, ok := event.Data["frames"].(float64); ok {
				m.FramesRendered += int(frames)
			}
			if seconds, ok := event.Data["seconds"].(float64); ok {
				m.RenderSeconds += seconds
			}
		case EventRenderFailed:
			m.RendersFailed++
		case EventRecipeExecuted:
			m.RecipesExecuted++
			if name, ok := event.Data["recipe"].(string); ok {
				m.RecipesByName[name]++
			}
		case EventProfileCaptured:
			m.ProfilesCaptured++
		}
	}

	return m, nil
}
