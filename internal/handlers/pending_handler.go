package handlers

import (
	"net/http"
	"time"

	"ssdcollector/internal/models"
)

type countsResponse struct {
	models.PendingCounts
	StorageUsed int64      `json:"storageUsed"`
	LastSync    *time.Time `json:"lastSync,omitempty"`
}

// ListPending returns every queued session
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sync.Store().All(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if sessions == nil {
		sessions = []models.PendingSession{}
	}
	respondJSON(w, http.StatusOK, sessions)
}

// PendingCounts summarises the queue and the disk it uses
func (h *Handler) PendingCounts(w http.ResponseWriter, r *http.Request) {
	store := h.sync.Store()
	counts, err := store.Counts(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	used, err := store.StorageUsed(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	resp := countsResponse{PendingCounts: counts, StorageUsed: used}
	if last := h.sync.LastSync(); !last.IsZero() {
		resp.LastSync = &last
	}
	respondJSON(w, http.StatusOK, resp)
}

// SyncPending uploads every pending or failed session now
func (h *Handler) SyncPending(w http.ResponseWriter, r *http.Request) {
	report, err := h.sync.SyncAll(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// SyncOnePending uploads a single queued session
func (h *Handler) SyncOnePending(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sync.SyncOne(r.Context(), id); err != nil {
		// a failed upload is recorded on the session itself
		if ps, getErr := h.sync.Store().Get(r.Context(), id); getErr == nil && ps.SyncStatus == models.SyncFailed {
			respondJSON(w, http.StatusBadGateway, ps)
			return
		}
		respondWithServiceError(w, h.logger, err)
		return
	}

	ps, err := h.sync.Store().Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, ps)
}

// DeletePending drops a queued session and its audio
func (h *Handler) DeletePending(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.Store().Remove(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
