// Package media wraps the local tooling the pipeline needs around video
// files: the ffmpeg mezzanine (ProRes) transcoder and an HTTP downloader for
// remote generation results. Both create output directories as needed and
// classify failures as external-tool errors.
package media
