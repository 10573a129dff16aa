// Package validation checks request input before it reaches the session tracker.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"ssdcollector/internal/models"
)

const (
	MaxNotesLength         = 2000
	MaxTranscriptionLength = 200
	MaxPatientNameLength   = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePatientID requires a positive backend patient id
func ValidatePatientID(id int64) error {
	if id <= 0 {
		return ValidationError{Field: "patientId", Message: "patient id must be positive"}
	}
	return nil
}

// ValidatePatientName allows an empty name but limits its length
func ValidatePatientName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) > MaxPatientNameLength {
		return ValidationError{Field: "patientName", Message: fmt.Sprintf("name must be at most %d characters", MaxPatientNameLength)}
	}
	return nil
}

// ValidateNotes limits free-text session notes
func ValidateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return ValidationError{Field: "notes", Message: fmt.Sprintf("notes must be at most %d characters", MaxNotesLength)}
	}
	return nil
}

// ValidateWord requires a non-blank target word
func ValidateWord(word string) error {
	if strings.TrimSpace(word) == "" {
		return ValidationError{Field: "word", Message: "word is required"}
	}
	return nil
}

// ValidateErrorType accepts "None" or one of the phonological process codes
func ValidateErrorType(code string) error {
	if code == models.DefaultErrorType {
		return nil
	}
	for _, et := range models.ErrorTypes {
		if et.Code == code {
			return nil
		}
	}
	return ValidationError{Field: "errorType", Message: fmt.Sprintf("unknown error type %q", code)}
}

// ValidateTranscription limits the IPA transcription length
func ValidateTranscription(s string) error {
	if utf8.RuneCountInString(s) > MaxTranscriptionLength {
		return ValidationError{Field: "transcription", Message: fmt.Sprintf("transcription must be at most %d characters", MaxTranscriptionLength)}
	}
	return nil
}

// ValidatePatch checks the optional annotation fields of a recording update
func ValidatePatch(p models.RecordingPatch) error {
	if err := ValidateWord(p.Word); err != nil {
		return err
	}
	if p.ErrorType != nil {
		if err := ValidateErrorType(*p.ErrorType); err != nil {
			return err
		}
	}
	if p.Transcription != nil {
		if err := ValidateTranscription(*p.Transcription); err != nil {
			return err
		}
	}
	return nil
}
