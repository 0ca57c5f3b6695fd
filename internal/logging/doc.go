// Package logging assembles the structured slog loggers used across
// sceneforge.
//
// It owns console/JSON handler construction, level and output plumbing, and
// context-aware helpers so pipeline code automatically tags log lines with
// scene ids, stages, and correlation ids. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
