package validation

import (
	"errors"
	"strings"
	"testing"

	"ssdcollector/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "clinic@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "slp@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "slp+reports@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "clinicexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "clinic@",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "clinic @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePatientID(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		wantErr bool
	}{
		{name: "positive", id: 42, wantErr: false},
		{name: "zero", id: 0, wantErr: true},
		{name: "negative", id: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatientID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePatientID(%d) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateErrorType(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "none", code: "None", wantErr: false},
		{name: "fronting", code: "FRT", wantErr: false},
		{name: "other", code: "OTH", wantErr: false},
		{name: "label instead of code", code: "Fronting", wantErr: true},
		{name: "lower case", code: "frt", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateErrorType(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateErrorType(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLengthLimits(t *testing.T) {
	if err := ValidateNotes(strings.Repeat("a", MaxNotesLength)); err != nil {
		t.Errorf("notes at limit rejected: %v", err)
	}
	if err := ValidateNotes(strings.Repeat("a", MaxNotesLength+1)); err == nil {
		t.Error("notes over limit accepted")
	}
	// limits count characters, not bytes
	if err := ValidateTranscription(strings.Repeat("ʃ", MaxTranscriptionLength)); err != nil {
		t.Errorf("IPA transcription at limit rejected: %v", err)
	}
	if err := ValidatePatientName(""); err != nil {
		t.Errorf("empty patient name rejected: %v", err)
	}
	if err := ValidatePatientName(strings.Repeat("n", MaxPatientNameLength+1)); err == nil {
		t.Error("long patient name accepted")
	}
}

func TestValidatePatch(t *testing.T) {
	bad := "XYZ"
	good := "STP"
	ipa := "ʃeɾ"

	if err := ValidatePatch(models.RecordingPatch{Word: "Sher", ErrorType: &good, Transcription: &ipa}); err != nil {
		t.Errorf("valid patch rejected: %v", err)
	}

	err := ValidatePatch(models.RecordingPatch{Word: "Sher", ErrorType: &bad})
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "errorType" {
		t.Errorf("expected errorType validation error, got %v", err)
	}

	if err := ValidatePatch(models.RecordingPatch{Word: " "}); err == nil {
		t.Error("blank word accepted")
	}
}
