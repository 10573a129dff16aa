package models

import "fmt"

// RecordingStatus is the capture state of a single word in a session
type RecordingStatus int

const (
	StatusPending RecordingStatus = iota
	StatusRecording
	StatusRecorded
	StatusSkipped
)

// String returns the wire name of the status
func (s RecordingStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRecording:
		return "recording"
	case StatusRecorded:
		return "recorded"
	case StatusSkipped:
		return "skipped"
	}
	return fmt.Sprintf("RecordingStatus(%d)", int(s))
}

// Valid reports whether s is one of the declared statuses
func (s RecordingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRecording, StatusRecorded, StatusSkipped:
		return true
	}
	return false
}

// Priority ranks statuses when duplicate records for the same word are merged.
// recorded(3) > skipped(2) > recording(1) > pending(0)
func (s RecordingStatus) Priority() int {
	switch s {
	case StatusRecorded:
		return 3
	case StatusSkipped:
		return 2
	case StatusRecording:
		return 1
	case StatusPending:
		return 0
	}
	return -1
}

// ParseRecordingStatus converts a wire name into a RecordingStatus
func ParseRecordingStatus(s string) (RecordingStatus, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "recording":
		return StatusRecording, nil
	case "recorded":
		return StatusRecorded, nil
	case "skipped":
		return StatusSkipped, nil
	}
	return StatusPending, fmt.Errorf("unknown recording status %q", s)
}

// MarshalText encodes the status as its wire name
func (s RecordingStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid recording status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name
func (s *RecordingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseRecordingStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RecordingRecord is the mutable per-(protocol, word) state of a session
type RecordingRecord struct {
	ProtocolID    string          `json:"protocolId"`
	Word          string          `json:"word"`
	URI           string          `json:"uri"`
	Transcription string          `json:"transcription"`
	ErrorType     string          `json:"errorType"`
	IsCorrect     bool            `json:"isCorrect"`
	Status        RecordingStatus `json:"status"`
	PlaybackURI   string          `json:"playbackUri,omitempty"`
}

// NewPendingRecord builds the placeholder record for a word that has not been touched
func NewPendingRecord(protocolID, word string) RecordingRecord {
	return RecordingRecord{
		ProtocolID: protocolID,
		Word:       word,
		ErrorType:  DefaultErrorType,
		IsCorrect:  true,
		Status:     StatusPending,
	}
}

// HasAudio reports whether a capture handle is attached
func (r *RecordingRecord) HasAudio() bool {
	return r.URI != ""
}

// IsCaptured reports whether the record counts as truly recorded
func (r *RecordingRecord) IsCaptured() bool {
	return r.Status == StatusRecorded && r.HasAudio()
}

// ForUpload strips session-only fields
func (r *RecordingRecord) ForUpload() UploadRecording {
	return UploadRecording{
		URI:           r.URI,
		Word:          r.Word,
		Transcription: r.Transcription,
		ErrorType:     r.ErrorType,
		IsCorrect:     r.IsCorrect,
	}
}

// RecordingPatch carries optional field updates; nil fields keep existing values
type RecordingPatch struct {
	Word          string  `json:"word"`
	URI           *string `json:"uri,omitempty"`
	Transcription *string `json:"transcription,omitempty"`
	ErrorType     *string `json:"errorType,omitempty"`
	IsCorrect     *bool   `json:"isCorrect,omitempty"`
}

// UploadRecording is the finalized shape consumed by the upload capability
type UploadRecording struct {
	URI           string `json:"uri"`
	Word          string `json:"word"`
	Transcription string `json:"transcription"`
	ErrorType     string `json:"errorType"`
	IsCorrect     bool   `json:"isCorrect"`
}

// ProtocolStatus summarises progress of one protocol
type ProtocolStatus struct {
	HasStarted    bool `json:"hasStarted"`
	IsIncomplete  bool `json:"isIncomplete"`
	IsCompleted   bool `json:"isCompleted"`
	RecordedCount int  `json:"recordedCount"`
	TotalWords    int  `json:"totalWords"`
}

// CompletionStats summarises progress of a protocol or of the whole session
type CompletionStats struct {
	Total                int  `json:"total"`
	Recorded             int  `json:"recorded"`
	Skipped              int  `json:"skipped"`
	Pending              int  `json:"pending"`
	CompletionPercentage int  `json:"completionPercentage"`
	IsComplete           bool `json:"isComplete"`
}
