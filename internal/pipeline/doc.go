// Package pipeline orchestrates the scene production state machine: video
// generation, download and mezzanine transcode, dialogue synthesis, lip-sync,
// and the final transcode. Every status transition is persisted to the scene
// store before the step runs so progress is observable across restarts, and a
// batch runner processes scene lists sequentially with per-scene failure
// isolation.
package pipeline
