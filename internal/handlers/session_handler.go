package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"ssdcollector/internal/catalog"
	"ssdcollector/internal/models"
	"ssdcollector/internal/session"
	"ssdcollector/internal/validation"
)

// sessionResponse is the full state of the live session
type sessionResponse struct {
	session.SessionView
	CurrentWord  *models.Word           `json:"currentWord"`
	WordCount    int                    `json:"wordCount"`
	Stats        models.CompletionStats `json:"stats"`
	OverallStats models.CompletionStats `json:"overallStats"`
}

func buildSessionResponse(t *session.Tracker) sessionResponse {
	return sessionResponse{
		SessionView:  t.State(),
		CurrentWord:  t.CurrentWord(),
		WordCount:    len(t.AllWords()),
		Stats:        t.CompletionStats(),
		OverallStats: t.OverallStats(),
	}
}

// respondSession writes the session state after a successful change
func (h *Handler) respondSession(w http.ResponseWriter, t *session.Tracker) {
	respondJSON(w, http.StatusOK, buildSessionResponse(t))
}

// GetSession returns the live session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		h.respondSession(w, t)
	})
}

type setPatientRequest struct {
	PatientID int64 `json:"patientId"`
}

// SetPatient selects the patient being assessed
func (h *Handler) SetPatient(w http.ResponseWriter, r *http.Request) {
	var req setPatientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if err := validation.ValidatePatientID(req.PatientID); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.withTracker(func(t *session.Tracker) {
		t.SetPatient(req.PatientID)
		h.respondSession(w, t)
	})
}

// SetBattery selects a battery and restarts all progress
func (h *Handler) SetBattery(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalog.Battery(r.PathValue("batteryId"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.withTracker(func(t *session.Tracker) {
		t.SetTestBattery(b)
		h.snapshot = nil
		h.respondSession(w, t)
	})
}

// SelectProtocol switches to a protocol of the selected battery
func (h *Handler) SelectProtocol(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		b := t.Battery()
		if b == nil {
			respondWithError(w, h.logger, http.StatusConflict, "No battery selected", "", nil)
			return
		}
		p, err := catalog.ProtocolByID(b, r.PathValue("protocolId"))
		if err != nil {
			respondWithServiceError(w, h.logger, err)
			return
		}
		t.SetSelectedProtocol(p)
		h.respondSession(w, t)
	})
}

// GetProtocolStatus reports progress of one protocol. With ?snapshot=1 the
// numbers come from the last stored snapshot so a dialog shows stable values.
func (h *Handler) GetProtocolStatus(w http.ResponseWriter, r *http.Request) {
	useSnapshot := r.URL.Query().Get("snapshot") == "1"

	h.withTracker(func(t *session.Tracker) {
		b := t.Battery()
		if b == nil {
			respondWithError(w, h.logger, http.StatusConflict, "No battery selected", "", nil)
			return
		}
		p, err := catalog.ProtocolByID(b, r.PathValue("protocolId"))
		if err != nil {
			respondWithServiceError(w, h.logger, err)
			return
		}

		var override []models.RecordingRecord
		if useSnapshot {
			override = h.snapshot
		}
		respondJSON(w, http.StatusOK, t.ProtocolStatus(p, override))
	})
}

// TakeSnapshot stores a copy of the records for later status queries
func (h *Handler) TakeSnapshot(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		h.snapshot = t.Snapshot()
		respondJSON(w, http.StatusOK, map[string]int{"recordCount": len(h.snapshot)})
	})
}

// RemainingProtocols lists protocols not yet marked complete
func (h *Handler) RemainingProtocols(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		respondJSON(w, http.StatusOK, protocolList(t.RemainingProtocols()))
	})
}

// IncompleteProtocols lists protocols that were started but not finished
func (h *Handler) IncompleteProtocols(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		respondJSON(w, http.StatusOK, protocolList(t.IncompleteProtocols()))
	})
}

func protocolList(ps []models.Protocol) []models.Protocol {
	if ps == nil {
		return []models.Protocol{}
	}
	return ps
}

// MarkComplete marks the selected protocol complete
func (h *Handler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		if !t.MarkProtocolComplete() {
			respondWithError(w, h.logger, http.StatusConflict, "No protocol selected", "", nil)
			return
		}
		h.respondSession(w, t)
	})
}

// GetStats returns completion of the selected protocol
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		respondJSON(w, http.StatusOK, t.CompletionStats())
	})
}

// GetOverallStats returns completion of the whole battery
func (h *Handler) GetOverallStats(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		respondJSON(w, http.StatusOK, t.OverallStats())
	})
}

// NextWord advances to the next word
func (h *Handler) NextWord(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, func(t *session.Tracker) bool { return t.NextWord() })
}

// PreviousWord moves back one word
func (h *Handler) PreviousWord(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, func(t *session.Tracker) bool { return t.PreviousWord() })
}

// GoToWord jumps to a word by index
func (h *Handler) GoToWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid word index", "", err)
		return
	}
	h.navigate(w, func(t *session.Tracker) bool { return t.GoToWord(index) })
}

func (h *Handler) navigate(w http.ResponseWriter, move func(*session.Tracker) bool) {
	h.withTracker(func(t *session.Tracker) {
		if t.SelectedProtocol() == nil {
			respondWithError(w, h.logger, http.StatusConflict, "No protocol selected", "", nil)
			return
		}
		if !move(t) {
			respondWithError(w, h.logger, http.StatusConflict, "Word index out of range", "", nil)
			return
		}
		h.respondSession(w, t)
	})
}

type finalizeRequest struct {
	PatientName string `json:"patientName"`
	Notes       string `json:"notes"`
}

// Finalize queues the session for upload and starts a fresh one
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	// an empty body finalizes with default notes
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if err := validation.ValidatePatientName(req.PatientName); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if err := validation.ValidateNotes(req.Notes); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.withTracker(func(t *session.Tracker) {
		ps, err := h.sync.Finalize(r.Context(), t, req.PatientName, req.Notes)
		if err != nil {
			respondWithServiceError(w, h.logger, err)
			return
		}
		h.snapshot = nil
		respondJSON(w, http.StatusCreated, ps)
	})
}

// ClearSession drops all records but keeps patient and battery
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		h.discardAudio(r, t.Snapshot())
		t.Clear()
		h.snapshot = nil
		h.respondSession(w, t)
	})
}

// ResetSession abandons the session entirely
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		h.discardAudio(r, t.Snapshot())
		t.Reset()
		h.snapshot = nil
		h.respondSession(w, t)
	})
}
