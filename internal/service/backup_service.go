package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"ssdcollector/internal/models"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the exported form of the pending queue
type BackupData struct {
	Version    string                  `json:"version"`
	ExportedAt time.Time               `json:"exported_at"`
	Sessions   []models.PendingSession `json:"sessions"`
}

// BackupService exports and restores the pending session queue
type BackupService struct {
	store  *PendingStore
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(store *PendingStore, logger *zap.Logger) *BackupService {
	return &BackupService{store: store, logger: logger}
}

// Export writes the queue as indented JSON
func (s *BackupService) Export(ctx context.Context, w io.Writer) error {
	sessions, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.PendingSession{}
	}

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Sessions:   sessions,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("Exported pending sessions", zap.Int("sessions", len(sessions)))
	return nil
}

// ExportToFile writes the backup to outputPath
func (s *BackupService) ExportToFile(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.Export(ctx, file); err != nil {
		return err
	}
	return file.Close()
}

// Import restores sessions from r. With replace the queue is swapped
// wholesale; otherwise sessions with unknown ids are appended. It returns
// the number of sessions added.
func (s *BackupService) Import(ctx context.Context, r io.Reader, replace bool) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	for i := range backup.Sessions {
		ps := &backup.Sessions[i]
		if ps.ID == "" {
			return 0, fmt.Errorf("backup session %d has no id", i)
		}
		if _, err := models.ParseSyncStatus(string(ps.SyncStatus)); err != nil {
			return 0, fmt.Errorf("backup session %s: %w", ps.ID, err)
		}
		// A session caught mid-upload is retried after restore.
		if ps.SyncStatus == models.SyncSyncing {
			ps.SyncStatus = models.SyncPending
		}
	}

	var added int
	if replace {
		if err := s.store.Replace(ctx, backup.Sessions); err != nil {
			return 0, fmt.Errorf("failed to import sessions: %w", err)
		}
		added = len(backup.Sessions)
	} else {
		n, err := s.store.Merge(ctx, backup.Sessions)
		if err != nil {
			return 0, fmt.Errorf("failed to import sessions: %w", err)
		}
		added = n
	}

	s.logger.Info("Imported pending sessions",
		zap.String("exported_at", backup.ExportedAt.Format(time.RFC3339)),
		zap.Int("sessions", added),
		zap.Bool("replace", replace))
	return added, nil
}

// ImportFromFile restores a backup file
func (s *BackupService) ImportFromFile(ctx context.Context, inputPath string, replace bool) (int, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.Import(ctx, file, replace)
}
