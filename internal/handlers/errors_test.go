package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ssdcollector/internal/capture"
	"ssdcollector/internal/catalog"
	"ssdcollector/internal/service"
	"ssdcollector/internal/validation"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, zap.NewNop(), 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != `{"error":"Teapot"}` {
		t.Fatalf("expected JSON error body, got %q", body)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	recorder := httptest.NewRecorder()

	respondWithError(recorder, zap.New(core), 500, "Internal server error", "", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0].Message != "Internal server error" {
		t.Fatalf("expected log to use user message, got %q", entries[0].Message)
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level for 5xx, got %s", entries[0].Level)
	}
	if got := entries[0].ContextMap()["error"]; got != "boom" {
		t.Fatalf("expected log to include error, got %v", got)
	}
}

func TestRespondWithServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: validation.ValidationError{Field: "notes", Message: "too long"}, want: http.StatusBadRequest},
		{name: "battery", err: catalog.ErrBatteryNotFound, want: http.StatusNotFound},
		{name: "wrapped protocol", err: fmt.Errorf("lookup: %w", catalog.ErrProtocolNotFound), want: http.StatusNotFound},
		{name: "session", err: service.ErrSessionNotFound, want: http.StatusNotFound},
		{name: "no patient", err: service.ErrNoPatient, want: http.StatusConflict},
		{name: "sync running", err: service.ErrSyncInProgress, want: http.StatusConflict},
		{name: "format", err: fmt.Errorf("%w: exe", capture.ErrUnsupportedFormat), want: http.StatusUnsupportedMediaType},
		{name: "other", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithServiceError(recorder, zap.NewNop(), tt.err)
			if recorder.Code != tt.want {
				t.Errorf("status = %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/pending/sync", nil))

	entries := logs.FilterMessage("HTTP request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusAccepted) {
		t.Errorf("status field = %v", fields["status"])
	}
	if fields["path"] != "/api/pending/sync" {
		t.Errorf("path field = %v", fields["path"])
	}
}

func TestRecoverMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("tracker exploded")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected panic to be logged, got %d entries", logs.Len())
	}
}
