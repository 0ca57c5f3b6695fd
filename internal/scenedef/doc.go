// Package scenedef models scene definitions: the structured generation prompt,
// the per-scene options, and the JSON scene-file formats accepted on the
// command line (a single scene object or a batch under a "scenes" key).
package scenedef
