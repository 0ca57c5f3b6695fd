// Package scenestore persists per-scene pipeline state and exposes helpers
// for reading it back.
//
// Each scene owns a directory under <project_root>/scenes/<scene_id> holding
// its artifacts plus a human-readable metadata.json record with the current
// status and the named artifact references. The Store is the single writer;
// every transition is persisted immediately so progress survives process
// restarts. Reads degrade rather than fail: a missing or corrupt record
// yields StatusUnknown with an empty artifact map.
package scenestore
