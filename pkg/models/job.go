package models

import "time"

// JobStatus is the lifecycle state of a render job.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// RenderJob records one invocation of the renderer, as written to the
// event log and surfaced by the metrics command.
type RenderJob struct {
	ID      string    `json:"id"`
	Scene   string    `json:"scene"`
	Output  string    `json:"output"`
	Frames  int       `json:"frames"`
	Seconds float64   `json:"seconds"`
	Status  JobStatus `json:"status"`
	Started time.Time `json:"started"`
}
