package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"ssdcollector/internal/models"
	"ssdcollector/internal/session"
	"ssdcollector/internal/validation"
)

// ListRecordings returns one record per word of the selected protocol
func (h *Handler) ListRecordings(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		if t.SelectedProtocol() == nil {
			respondWithError(w, h.logger, http.StatusConflict, "No protocol selected", "", nil)
			return
		}
		respondJSON(w, http.StatusOK, t.CurrentProtocolRecordings())
	})
}

type wordRequest struct {
	Word string `json:"word"`
}

// StartRecording marks a word as being recorded
func (h *Handler) StartRecording(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if err := validation.ValidateWord(req.Word); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.withTracker(func(t *session.Tracker) {
		if !h.requireWord(w, t, req.Word) {
			return
		}
		if !t.UpdateRecordingStatus(req.Word, models.StatusRecording) {
			respondWithError(w, h.logger, http.StatusNotFound, "Word has no record", "", nil)
			return
		}
		rec, _ := t.Recording(req.Word)
		respondJSON(w, http.StatusOK, rec)
	})
}

// UploadRecording stores a captured take and attaches it to its word.
// Expects multipart fields "word" and "audio".
func (h *Handler) UploadRecording(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, h.logger, http.StatusRequestEntityTooLarge, "Recording is too large", "", err)
			return
		}
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid multipart form", "", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	word := r.FormValue("word")
	if err := validation.ValidateWord(word); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Missing audio file", "", err)
		return
	}
	defer file.Close()

	var (
		protocolID string
		generation uint64
		ok         bool
	)
	h.withTracker(func(t *session.Tracker) {
		if ok = h.requireWord(w, t, word); ok {
			protocolID = t.SelectedProtocol().ID
			generation = t.Generation()
		}
	})
	if !ok {
		return
	}

	// the write happens outside the lock; session and protocol are re-checked afterwards
	uri, err := h.capture.Save(r.Context(), protocolID, word, file, filepath.Ext(header.Filename))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.withTracker(func(t *session.Tracker) {
		if t.Generation() != generation {
			h.removeAudio(r, uri)
			respondWithError(w, h.logger, http.StatusConflict, "Session changed during upload", "", nil)
			return
		}
		p := t.SelectedProtocol()
		if p == nil || p.ID != protocolID {
			h.removeAudio(r, uri)
			respondWithError(w, h.logger, http.StatusConflict, "Protocol changed during upload", "", nil)
			return
		}

		var previous string
		if rec, found := t.Recording(word); found {
			previous = rec.URI
		}
		t.AddRecording(models.RecordingPatch{Word: word, URI: &uri})
		if previous != "" && previous != uri {
			h.removeAudio(r, previous)
		}

		rec, _ := t.Recording(word)
		h.logger.Info("Recording captured",
			zap.String("protocol_id", protocolID),
			zap.String("word", word),
			zap.Int64("bytes", header.Size))
		respondJSON(w, http.StatusCreated, rec)
	})
}

type annotationRequest struct {
	Transcription *string `json:"transcription,omitempty"`
	ErrorType     *string `json:"errorType,omitempty"`
	IsCorrect     *bool   `json:"isCorrect,omitempty"`
}

// AnnotateRecording merges clinician annotations into a word's record
func (h *Handler) AnnotateRecording(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")

	var req annotationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	patch := models.RecordingPatch{
		Word:          word,
		Transcription: req.Transcription,
		ErrorType:     req.ErrorType,
		IsCorrect:     req.IsCorrect,
	}
	if err := validation.ValidatePatch(patch); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.withTracker(func(t *session.Tracker) {
		if !h.requireWord(w, t, word) {
			return
		}
		if !t.UpdateRecording(word, patch) {
			respondWithError(w, h.logger, http.StatusNotFound, "Word has no record", "", nil)
			return
		}
		rec, _ := t.Recording(word)
		respondJSON(w, http.StatusOK, rec)
	})
}

// SkipWord marks the current word skipped
func (h *Handler) SkipWord(w http.ResponseWriter, r *http.Request) {
	h.withTracker(func(t *session.Tracker) {
		if !t.SkipCurrentWord() {
			respondWithError(w, h.logger, http.StatusConflict, "No current word", "", nil)
			return
		}
		h.respondSession(w, t)
	})
}

// ReRecordWord discards a word's capture so it can be recorded again
func (h *Handler) ReRecordWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")

	h.withTracker(func(t *session.Tracker) {
		if !h.requireWord(w, t, word) {
			return
		}
		rec, found := t.Recording(word)
		if !found || !t.ReRecordWord(word) {
			respondWithError(w, h.logger, http.StatusNotFound, "Word has no record", "", nil)
			return
		}
		if rec.URI != "" {
			h.removeAudio(r, rec.URI)
		}
		updated, _ := t.Recording(word)
		respondJSON(w, http.StatusOK, updated)
	})
}

// requireWord checks that a protocol is selected and contains word,
// writing the error response when it does not
func (h *Handler) requireWord(w http.ResponseWriter, t *session.Tracker, word string) bool {
	p := t.SelectedProtocol()
	if p == nil {
		respondWithError(w, h.logger, http.StatusConflict, "No protocol selected", "", nil)
		return false
	}
	if !p.HasWord(word) {
		respondWithError(w, h.logger, http.StatusNotFound, "Word is not part of the selected protocol", "", nil)
		return false
	}
	return true
}

// discardAudio removes captures that will never be queued
func (h *Handler) discardAudio(r *http.Request, recs []models.RecordingRecord) {
	for _, rec := range recs {
		if rec.HasAudio() {
			h.removeAudio(r, rec.URI)
		}
	}
}

func (h *Handler) removeAudio(r *http.Request, uri string) {
	if err := h.capture.Remove(r.Context(), uri); err != nil {
		h.logger.Warn("Failed to delete recording", zap.String("uri", uri), zap.Error(err))
	}
}
