// Package did lip-syncs synthesized dialogue onto generated video through
// the D-ID talks API.
package did
