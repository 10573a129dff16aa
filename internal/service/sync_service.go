package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ssdcollector/internal/models"
	"ssdcollector/internal/notify"
	"ssdcollector/internal/session"
	"ssdcollector/internal/upload"
)

var (
	ErrNoPatient       = errors.New("no patient selected")
	ErrNothingToUpload = errors.New("no recordings to upload")
	ErrSyncInProgress  = errors.New("sync already in progress")
	ErrAlreadySynced   = errors.New("session already synced")
)

// defaultProtocolName is used in generated notes when no protocol is selected
const defaultProtocolName = "Assessment"

// SyncReport summarises one sync pass
type SyncReport struct {
	Attempted int `json:"attempted"`
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
	Cleared   int `json:"cleared"`
}

// SyncService moves finalized sessions from the tracker into the pending
// queue and from the queue to the backend.
type SyncService struct {
	store    *PendingStore
	uploader upload.Uploader
	notifier notify.Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	syncing  bool
	lastSync time.Time
}

// NewSyncService creates a sync service. A nil notifier disables notifications.
func NewSyncService(store *PendingStore, uploader upload.Uploader, notifier notify.Notifier, logger *zap.Logger) *SyncService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &SyncService{
		store:    store,
		uploader: uploader,
		notifier: notifier,
		logger:   logger,
	}
}

// Store returns the pending queue
func (s *SyncService) Store() *PendingStore {
	return s.store
}

// Finalize queues the tracker's captured recordings for upload and resets
// the tracker. The caller must hold whatever lock guards tracker.
func (s *SyncService) Finalize(ctx context.Context, tracker *session.Tracker, patientName, notes string) (*models.PendingSession, error) {
	patientID := tracker.PatientID()
	if patientID == 0 {
		return nil, ErrNoPatient
	}

	recs := tracker.RecordingsForUpload()
	if len(recs) == 0 {
		return nil, ErrNothingToUpload
	}

	if notes == "" {
		name := defaultProtocolName
		if p := tracker.SelectedProtocol(); p != nil && p.Name != "" {
			name = p.Name
		}
		notes = "Protocol: " + name
	}

	ps, err := s.store.Add(ctx, patientID, patientName, recs, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to queue session: %w", err)
	}

	tracker.Reset()
	return ps, nil
}

// SyncOne uploads a single queued session outside the sync loop. It is
// refused while any other upload is running.
func (s *SyncService) SyncOne(ctx context.Context, id string) error {
	if !s.beginSync() {
		return ErrSyncInProgress
	}
	defer s.endSync()

	ps, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	switch ps.SyncStatus {
	case models.SyncSynced:
		return ErrAlreadySynced
	case models.SyncSyncing:
		return ErrSyncInProgress
	}
	return s.upload(ctx, ps)
}

// SyncAll uploads every pending or failed session, then clears the synced
// ones. Only one pass runs at a time.
func (s *SyncService) SyncAll(ctx context.Context) (SyncReport, error) {
	if !s.beginSync() {
		return SyncReport{}, ErrSyncInProgress
	}
	defer s.endSync()

	var report SyncReport
	sessions, err := s.store.Pending(ctx)
	if err != nil {
		return report, err
	}

	if len(sessions) > 0 {
		s.logger.Info("Starting sync", zap.Int("sessions", len(sessions)))
	}

	for i := range sessions {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Attempted++
		if err := s.upload(ctx, &sessions[i]); err != nil {
			report.Failed++
			continue
		}
		report.Synced++
	}

	s.mu.Lock()
	s.lastSync = time.Now()
	s.mu.Unlock()

	cleared, err := s.store.ClearSynced(ctx)
	if err != nil {
		return report, err
	}
	report.Cleared = cleared
	return report, nil
}

func (s *SyncService) beginSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing {
		return false
	}
	s.syncing = true
	return true
}

func (s *SyncService) endSync() {
	s.mu.Lock()
	s.syncing = false
	s.mu.Unlock()
}

// LastSync returns when the last full pass finished, zero if none has
func (s *SyncService) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

func (s *SyncService) upload(ctx context.Context, ps *models.PendingSession) error {
	if err := s.store.UpdateStatus(ctx, ps.ID, models.SyncSyncing, ""); err != nil {
		return err
	}

	res, err := s.uploader.UploadSession(ctx, ps.PatientID, ps.Recordings, ps.Notes)
	if err != nil {
		s.logger.Error("Failed to sync session",
			zap.String("session_id", ps.ID),
			zap.Error(err))
		if statusErr := s.store.UpdateStatus(ctx, ps.ID, models.SyncFailed, err.Error()); statusErr != nil {
			return fmt.Errorf("failed to record sync failure: %w", statusErr)
		}
		return err
	}

	if err := s.store.UpdateStatus(ctx, ps.ID, models.SyncSynced, ""); err != nil {
		return err
	}
	s.logger.Info("Synced session",
		zap.String("session_id", ps.ID),
		zap.Int64("backend_session_id", res.SessionID),
		zap.Int("recordings_saved", res.RecordingsSaved))

	if err := s.notifier.SessionSynced(ctx, ps, res); err != nil {
		s.logger.Warn("Failed to send sync notification",
			zap.String("session_id", ps.ID),
			zap.Error(err))
	}
	return nil
}

// Run syncs every interval until ctx is cancelled
func (s *SyncService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := s.SyncAll(ctx)
			if err != nil && !errors.Is(err, ErrSyncInProgress) && ctx.Err() == nil {
				s.logger.Error("Background sync failed", zap.Error(err))
				continue
			}
			if report.Attempted > 0 {
				s.logger.Info("Background sync finished",
					zap.Int("synced", report.Synced),
					zap.Int("failed", report.Failed))
			}
		}
	}
}
