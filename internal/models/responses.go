package models

// TranscribeResponse is the success body for POST /transcribe. Warning is
// populated only when no speech was recognized.
type TranscribeResponse struct {
	Transcript  string `json:"transcript"`
	Translation string `json:"translation"`
	Warning     string `json:"warning,omitempty"`
}

// NoAudioResponse is returned when no payload could be extracted from the
// request. Files lists the multipart field names that were actually present.
type NoAudioResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// InternalErrorResponse carries failure diagnostics back to the client.
// Traceback is omitted when diagnostics exposure is disabled.
type InternalErrorResponse struct {
	Error     string `json:"error"`
	Exception string `json:"exception"`
	Traceback string `json:"traceback,omitempty"`
}
