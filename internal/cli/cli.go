// Package cli implements the ssdc command line tool for inspecting the
// catalog and managing the pending upload queue.
package cli

import (
	"context"

	"github.com/fatih/color"

	"ssdcollector/internal/models"
	"ssdcollector/internal/service"
)

// Services is what the queue and backup commands operate on
type Services struct {
	Pending *service.PendingStore
	Sync    *service.SyncService
	Backup  *service.BackupService
}

// Loader opens the configured services. The returned func releases them.
type Loader func(ctx context.Context) (*Services, func(), error)

// statusColor returns a colour-formatted sync status for list output
func statusColor(status models.SyncStatus) string {
	switch status {
	case models.SyncPending:
		return color.New(color.FgYellow).Sprint(string(status))
	case models.SyncSyncing:
		return color.New(color.FgBlue).Sprint(string(status))
	case models.SyncFailed:
		return color.New(color.FgRed).Sprint(string(status))
	case models.SyncSynced:
		return color.New(color.FgGreen).Sprint(string(status))
	default:
		return string(status)
	}
}
