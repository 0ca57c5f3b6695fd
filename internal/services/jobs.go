package services

// JobState describes where an asynchronous generation job stands.
type JobState string

const (
	JobStatePending   JobState = "pending"
	JobStateSucceeded JobState = "succeeded"
	JobStateFailed    JobState = "failed"
)

// JobStatus is the common polling result shape for asynchronous adapters.
// Locator identifies the finished artifact (typically a download URL) and is
// only meaningful when State is JobStateSucceeded. Reason carries the
// provider's failure detail when State is JobStateFailed.
type JobStatus struct {
	State   JobState
	Locator string
	Reason  string
}

// GenerationRequest carries the compiled prompt and rendering parameters for
// a video generation job.
type GenerationRequest struct {
	Prompt          string
	DurationSeconds int
	AspectRatio     string
	Extra           map[string]any
}

// SpeechRequest asks for the given text to be voiced into OutputPath.
type SpeechRequest struct {
	Text       string
	VoiceID    string
	OutputPath string
}
