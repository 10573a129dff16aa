// Package upload sends finalized sessions to the clinical backend.
package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ssdcollector/internal/models"
)

var (
	ErrNoToken      = errors.New("no API token configured")
	ErrTokenExpired = errors.New("API token has expired")
)

// Uploader accepts a patient, the captured recordings and free-text notes
type Uploader interface {
	UploadSession(ctx context.Context, patientID int64, recs []models.UploadRecording, notes string) (*Result, error)
}

// Result is the backend's acknowledgement of a finalized session
type Result struct {
	Message         string `json:"message"`
	SessionID       int64  `json:"sessionId"`
	RecordingsSaved int    `json:"recordingsSaved"`
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upload failed (%d): %s", e.StatusCode, e.Message)
}

// Call is one recorded StubUploader invocation
type Call struct {
	PatientID  int64
	Recordings []models.UploadRecording
	Notes      string
}

// StubUploader records calls instead of sending them. Err, when set, is returned by every call.
type StubUploader struct {
	mu    sync.Mutex
	Err   error
	calls []Call
}

func (s *StubUploader) UploadSession(ctx context.Context, patientID int64, recs []models.UploadRecording, notes string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.calls = append(s.calls, Call{
		PatientID:  patientID,
		Recordings: append([]models.UploadRecording(nil), recs...),
		Notes:      notes,
	})
	if s.Err != nil {
		return nil, s.Err
	}
	return &Result{
		Message:         "Session uploaded successfully",
		SessionID:       int64(len(s.calls)),
		RecordingsSaved: len(recs),
	}, nil
}

// SetErr changes the error returned by later calls
func (s *StubUploader) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// Calls returns a copy of the recorded calls
func (s *StubUploader) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}
