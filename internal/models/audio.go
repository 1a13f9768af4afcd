package models

// AudioInput wraps the uploaded audio payload.
type AudioInput struct {
	Data     []byte
	Filename string
	Source   string
}

// TranscribeResult is the outcome of a completed pipeline run.
type TranscribeResult struct {
	Transcript  string
	Translation string
}

// Empty reports whether the recognizer produced no speech.
func (r TranscribeResult) Empty() bool {
	return r.Transcript == ""
}
