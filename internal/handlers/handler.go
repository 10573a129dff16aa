// Package handlers exposes the assessment session over a JSON HTTP API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"ssdcollector/internal/audio"
	"ssdcollector/internal/capture"
	"ssdcollector/internal/catalog"
	"ssdcollector/internal/models"
	"ssdcollector/internal/security"
	"ssdcollector/internal/service"
	"ssdcollector/internal/session"
)

const maxJSONBody = 1 << 20

// Handler owns the single live session and serialises access to it
type Handler struct {
	mu       sync.Mutex
	tracker  *session.Tracker
	snapshot []models.RecordingRecord

	catalog   *catalog.Catalog
	capture   capture.Capability
	sync      *service.SyncService
	prompts   *audio.PromptService
	maxUpload int64
	logger    *zap.Logger
}

// Options configures a Handler. Prompts may be nil.
type Options struct {
	Catalog       *catalog.Catalog
	Capture       capture.Capability
	Sync          *service.SyncService
	Prompts       *audio.PromptService
	MaxUploadSize int64
	Logger        *zap.Logger
}

// NewHandler creates a handler with an empty session
func NewHandler(opts Options) *Handler {
	maxUpload := opts.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = 25 << 20
	}
	return &Handler{
		tracker:   session.NewTracker(),
		catalog:   opts.Catalog,
		capture:   opts.Capture,
		sync:      opts.Sync,
		prompts:   opts.Prompts,
		maxUpload: maxUpload,
		logger:    opts.Logger,
	}
}

// Register adds every API route to mux. Finalize and manual sync go through
// limiter when one is given.
func (h *Handler) Register(mux *http.ServeMux, limiter *security.RateLimiter) {
	limit := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if limiter != nil {
		limit = limiter.Limit
	}

	// Catalog
	mux.HandleFunc("GET /api/catalog", h.ListBatteries)
	mux.HandleFunc("GET /api/catalog/{batteryId}", h.GetBattery)
	mux.HandleFunc("GET /api/error-types", h.ListErrorTypes)

	// Session selection
	mux.HandleFunc("GET /api/session", h.GetSession)
	mux.HandleFunc("POST /api/session/patient", h.SetPatient)
	mux.HandleFunc("POST /api/session/battery/{batteryId}", h.SetBattery)
	mux.HandleFunc("POST /api/session/protocol/{protocolId}", h.SelectProtocol)

	// Protocol progress
	mux.HandleFunc("GET /api/session/protocols/{protocolId}/status", h.GetProtocolStatus)
	mux.HandleFunc("POST /api/session/snapshot", h.TakeSnapshot)
	mux.HandleFunc("GET /api/session/protocols/remaining", h.RemainingProtocols)
	mux.HandleFunc("GET /api/session/protocols/incomplete", h.IncompleteProtocols)
	mux.HandleFunc("POST /api/session/complete", h.MarkComplete)

	// Words and recordings
	mux.HandleFunc("GET /api/session/recordings", h.ListRecordings)
	mux.HandleFunc("POST /api/session/recordings", h.UploadRecording)
	mux.HandleFunc("POST /api/session/recordings/start", h.StartRecording)
	mux.HandleFunc("PUT /api/session/recordings/{word}", h.AnnotateRecording)
	mux.HandleFunc("GET /api/session/stats", h.GetStats)
	mux.HandleFunc("GET /api/session/stats/overall", h.GetOverallStats)
	mux.HandleFunc("POST /api/session/words/next", h.NextWord)
	mux.HandleFunc("POST /api/session/words/previous", h.PreviousWord)
	mux.HandleFunc("POST /api/session/words/{index}", h.GoToWord)
	mux.HandleFunc("POST /api/session/skip", h.SkipWord)
	mux.HandleFunc("POST /api/session/rerecord/{word}", h.ReRecordWord)

	// Lifecycle
	mux.HandleFunc("POST /api/session/clear", h.ClearSession)
	mux.HandleFunc("POST /api/session/reset", h.ResetSession)
	mux.HandleFunc("POST /api/session/finalize", limit(h.Finalize))

	// Pending queue
	mux.HandleFunc("GET /api/pending", h.ListPending)
	mux.HandleFunc("GET /api/pending/counts", h.PendingCounts)
	mux.HandleFunc("POST /api/pending/sync", limit(h.SyncPending))
	mux.HandleFunc("POST /api/pending/{id}/sync", limit(h.SyncOnePending))
	mux.HandleFunc("DELETE /api/pending/{id}", h.DeletePending)

	// Prompt audio
	mux.HandleFunc("GET /api/prompts/{batteryId}/{protocolId}/{index}", h.GetPrompt)

	mux.HandleFunc("GET /healthz", h.Health)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// withTracker runs fn while holding the session lock
func (h *Handler) withTracker(fn func(t *session.Tracker)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.tracker)
}
