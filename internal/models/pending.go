package models

import (
	"fmt"
	"time"
)

// SyncStatus tracks a finalized session on its way to the backend
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSyncing SyncStatus = "syncing"
	SyncFailed  SyncStatus = "failed"
	SyncSynced  SyncStatus = "synced"
)

// ParseSyncStatus validates a sync status name
func ParseSyncStatus(s string) (SyncStatus, error) {
	switch SyncStatus(s) {
	case SyncPending, SyncSyncing, SyncFailed, SyncSynced:
		return SyncStatus(s), nil
	}
	return "", fmt.Errorf("unknown sync status %q", s)
}

// NeedsSync reports whether the session should be picked up by the next sync
func (s SyncStatus) NeedsSync() bool {
	return s == SyncPending || s == SyncFailed
}

// PendingSession is a finalized session queued for upload
type PendingSession struct {
	ID              string            `json:"id"`
	PatientID       int64             `json:"patientId"`
	PatientName     string            `json:"patientName"`
	Recordings      []UploadRecording `json:"recordings"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"createdAt"`
	SyncStatus      SyncStatus        `json:"syncStatus"`
	LastSyncAttempt *time.Time        `json:"lastSyncAttempt,omitempty"`
	ErrorMessage    string            `json:"errorMessage,omitempty"`
}

// PendingCounts summarises the queue
type PendingCounts struct {
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}
