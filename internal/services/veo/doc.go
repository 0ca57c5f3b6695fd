// Package veo submits text-to-video generation jobs to Google's Veo models
// and tracks the resulting long-running operations until a downloadable
// video is available.
package veo
