// Package services defines the error taxonomy and context annotation helpers
// shared by the external service adapters and the scene pipeline.
//
// Errors are tagged with sentinel markers (ErrExternalTool, ErrJobFailed,
// ErrTimeout, ErrStore, ErrConfiguration) so callers can classify failures
// with errors.Is without inspecting message text. Context helpers carry the
// scene id, pipeline stage, and correlation id so loggers pick them up
// automatically.
package services
