// Package notify tells clinicians when a queued session reaches the backend.
package notify

import (
	"context"

	"ssdcollector/internal/models"
	"ssdcollector/internal/upload"
)

// Notifier is told about every successfully synced session
type Notifier interface {
	SessionSynced(ctx context.Context, ps *models.PendingSession, res *upload.Result) error
}

// NopNotifier discards notifications
type NopNotifier struct{}

func (NopNotifier) SessionSynced(ctx context.Context, ps *models.PendingSession, res *upload.Result) error {
	return nil
}
