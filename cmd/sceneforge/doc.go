// Command sceneforge runs the scene production pipeline from the terminal:
// generating video, synthesizing dialogue, lip-syncing, and transcoding
// scenes defined in JSON scene files, plus status, preflight, and upload
// utilities around a project directory.
package main
