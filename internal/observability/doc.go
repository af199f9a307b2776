// Package observability provides event logging, metrics calculation, and
// structured logging for kinema. Render and recipe events persist as JSON
// Lines (JSONL) and metrics are derived on-demand from the event log.
package observability
