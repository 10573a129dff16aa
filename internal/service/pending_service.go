package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ssdcollector/internal/capture"
	"ssdcollector/internal/models"
	"ssdcollector/internal/storage"
)

// PendingSessionsKey is the blob key the queue is persisted under
const PendingSessionsKey = "pending_sessions"

// ErrSessionNotFound is returned when a queued session id is unknown
var ErrSessionNotFound = errors.New("pending session not found")

// PendingStore is the durable queue of finalized sessions awaiting upload.
// The whole queue is one JSON document; it is read on first use and
// rewritten after every change.
type PendingStore struct {
	mu       sync.Mutex
	blobs    storage.BlobStore
	audio    capture.Capability
	logger   *zap.Logger
	sessions []models.PendingSession
	loaded   bool
	now      func() time.Time
}

// NewPendingStore creates a queue over blobs. audio may be nil when local
// recordings are not managed by this process.
func NewPendingStore(blobs storage.BlobStore, audio capture.Capability, logger *zap.Logger) *PendingStore {
	return &PendingStore{
		blobs:  blobs,
		audio:  audio,
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the queue from the blob store. Later calls are no-ops.
func (s *PendingStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *PendingStore) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	data, err := s.blobs.Get(ctx, PendingSessionsKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.sessions = nil
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load pending sessions: %w", err)
	}

	var sessions []models.PendingSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return fmt.Errorf("failed to decode pending sessions: %w", err)
	}
	s.sessions = sessions
	s.loaded = true
	return nil
}

func (s *PendingStore) save(ctx context.Context) error {
	sessions := s.sessions
	if sessions == nil {
		sessions = []models.PendingSession{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode pending sessions: %w", err)
	}
	if err := s.blobs.Set(ctx, PendingSessionsKey, data); err != nil {
		return fmt.Errorf("failed to save pending sessions: %w", err)
	}
	return nil
}

// Add queues a finalized session with status pending
func (s *PendingStore) Add(ctx context.Context, patientID int64, patientName string, recs []models.UploadRecording, notes string) (*models.PendingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	ps := models.PendingSession{
		ID:          "session_" + uuid.NewString(),
		PatientID:   patientID,
		PatientName: patientName,
		Recordings:  append([]models.UploadRecording(nil), recs...),
		Notes:       notes,
		CreatedAt:   s.now().UTC(),
		SyncStatus:  models.SyncPending,
	}
	s.sessions = append(s.sessions, ps)
	if err := s.save(ctx); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		return nil, err
	}

	s.logger.Info("Queued session for upload",
		zap.String("session_id", ps.ID),
		zap.Int64("patient_id", patientID),
		zap.Int("recordings", len(recs)))
	return &ps, nil
}

// UpdateStatus moves a session to status and stamps the attempt time.
// An empty message leaves any earlier error message in place.
func (s *PendingStore) UpdateStatus(ctx context.Context, id string, status models.SyncStatus, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	i := s.index(id)
	if i < 0 {
		return ErrSessionNotFound
	}

	now := s.now().UTC()
	ps := &s.sessions[i]
	ps.SyncStatus = status
	ps.LastSyncAttempt = &now
	if message != "" {
		ps.ErrorMessage = message
	}
	return s.save(ctx)
}

// Get returns a copy of the session with id
func (s *PendingStore) Get(ctx context.Context, id string) (*models.PendingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	i := s.index(id)
	if i < 0 {
		return nil, ErrSessionNotFound
	}
	ps := s.sessions[i]
	return &ps, nil
}

// Remove drops a session and deletes its local audio
func (s *PendingStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return ErrSessionNotFound
	}

	previous := s.sessions
	removed := s.sessions[i]
	s.sessions = append(s.sessions[:i:i], s.sessions[i+1:]...)
	if err := s.save(ctx); err != nil {
		s.sessions = previous
		return err
	}
	s.removeAudio(ctx, removed)
	return nil
}

// Pending returns the sessions the next sync should pick up (pending and failed)
func (s *PendingStore) Pending(ctx context.Context) ([]models.PendingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	var out []models.PendingSession
	for _, ps := range s.sessions {
		if ps.SyncStatus.NeedsSync() {
			out = append(out, ps)
		}
	}
	return out, nil
}

// All returns a copy of the whole queue
func (s *PendingStore) All(ctx context.Context) ([]models.PendingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return append([]models.PendingSession(nil), s.sessions...), nil
}

// Counts summarises the queue
func (s *PendingStore) Counts(ctx context.Context) (models.PendingCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.PendingCounts{}, err
	}
	c := models.PendingCounts{Total: len(s.sessions)}
	for _, ps := range s.sessions {
		switch ps.SyncStatus {
		case models.SyncPending:
			c.Pending++
		case models.SyncFailed:
			c.Failed++
		}
	}
	return c, nil
}

// ClearSynced removes uploaded sessions and their audio, returning how many went
func (s *PendingStore) ClearSynced(ctx context.Context) (int, error) {
	return s.clear(ctx, func(ps *models.PendingSession) bool {
		return ps.SyncStatus == models.SyncSynced
	})
}

// ClearAll empties the queue and deletes every local recording it references
func (s *PendingStore) ClearAll(ctx context.Context) (int, error) {
	return s.clear(ctx, func(*models.PendingSession) bool { return true })
}

func (s *PendingStore) clear(ctx context.Context, match func(*models.PendingSession) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return 0, err
	}

	var kept, dropped []models.PendingSession
	for i := range s.sessions {
		if match(&s.sessions[i]) {
			dropped = append(dropped, s.sessions[i])
		} else {
			kept = append(kept, s.sessions[i])
		}
	}
	if len(dropped) == 0 {
		return 0, nil
	}

	previous := s.sessions
	s.sessions = kept
	if err := s.save(ctx); err != nil {
		s.sessions = previous
		return 0, err
	}
	for _, ps := range dropped {
		s.removeAudio(ctx, ps)
	}
	return len(dropped), nil
}

// StorageUsed sums the sizes of the local recordings referenced by the queue.
// Files that cannot be measured are skipped.
func (s *PendingStore) StorageUsed(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return 0, err
	}
	if s.audio == nil {
		return 0, nil
	}

	var total int64
	for _, ps := range s.sessions {
		for _, rec := range ps.Recordings {
			size, err := s.audio.Size(ctx, rec.URI)
			if err != nil {
				continue
			}
			total += size
		}
	}
	return total, nil
}

// Replace swaps the whole queue, used when restoring a backup
func (s *PendingStore) Replace(ctx context.Context, sessions []models.PendingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, wasLoaded := s.sessions, s.loaded
	s.sessions = append([]models.PendingSession(nil), sessions...)
	s.loaded = true
	if err := s.save(ctx); err != nil {
		s.sessions, s.loaded = previous, wasLoaded
		return err
	}
	return nil
}

// Merge appends sessions whose id is not already queued and reports how many were added
func (s *PendingStore) Merge(ctx context.Context, sessions []models.PendingSession) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return 0, err
	}

	before := len(s.sessions)
	for _, ps := range sessions {
		if s.index(ps.ID) >= 0 {
			continue
		}
		s.sessions = append(s.sessions, ps)
	}
	added := len(s.sessions) - before
	if added == 0 {
		return 0, nil
	}
	if err := s.save(ctx); err != nil {
		s.sessions = s.sessions[:before]
		return 0, err
	}
	return added, nil
}

func (s *PendingStore) index(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *PendingStore) removeAudio(ctx context.Context, ps models.PendingSession) {
	if s.audio == nil {
		return
	}
	for _, rec := range ps.Recordings {
		if err := s.audio.Remove(ctx, rec.URI); err != nil {
			s.logger.Warn("Failed to delete recording",
				zap.String("session_id", ps.ID),
				zap.String("uri", rec.URI),
				zap.Error(err))
		}
	}
}
