package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ssdcollector/internal/catalog"
	"ssdcollector/internal/models"
	"ssdcollector/internal/service"
	"ssdcollector/internal/storage"
	"ssdcollector/internal/upload"
)

type testEnv struct {
	store    *service.PendingStore
	uploader *upload.StubUploader
	released int
	load     Loader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	color.NoColor = true

	env := &testEnv{
		store:    service.NewPendingStore(storage.NewMemoryStore(), nil, zap.NewNop()),
		uploader: &upload.StubUploader{},
	}
	svc := &Services{
		Pending: env.store,
		Sync:    service.NewSyncService(env.store, env.uploader, nil, zap.NewNop()),
		Backup:  service.NewBackupService(env.store, zap.NewNop()),
	}
	env.load = func(ctx context.Context) (*Services, func(), error) {
		return svc, func() { env.released++ }, nil
	}
	return env
}

func (e *testEnv) queue(t *testing.T, patientID int64, name string) *models.PendingSession {
	t.Helper()
	recs := []models.UploadRecording{{URI: "file:///rec/a.wav", Word: "Bikri", ErrorType: models.DefaultErrorType, IsCorrect: true}}
	ps, err := e.store.Add(context.Background(), patientID, name, recs, "Protocol: FRONTING")
	require.NoError(t, err)
	return ps
}

// run executes args against a root carrying every command
func run(t *testing.T, load Loader, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "ssdc", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(CatalogCmd(catalog.Default()))
	root.AddCommand(PendingCmd(load))
	root.AddCommand(BackupCmd(load))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogList(t *testing.T) {
	out, err := run(t, nil, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "taapu")
	assert.Contains(t, out, "TAAPU")
}

func TestCatalogShow(t *testing.T) {
	out, err := run(t, nil, "catalog", "show", "taapu")
	require.NoError(t, err)
	assert.Contains(t, out, "Battery: TAAPU (taapu)")
	assert.Contains(t, out, "FRONTING [fronting]")
	assert.Contains(t, out, "Bikri, Kitaab")
}

func TestCatalogShowUnknownBattery(t *testing.T) {
	_, err := run(t, nil, "catalog", "show", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrBatteryNotFound))
}

func TestPendingListEmpty(t *testing.T) {
	env := newTestEnv(t)
	out, err := run(t, env.load, "pending", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No queued sessions")
	assert.Equal(t, 1, env.released)
}

func TestPendingListShowsStatus(t *testing.T) {
	env := newTestEnv(t)
	ps := env.queue(t, 42, "Ali")
	env.queue(t, 7, "")
	require.NoError(t, env.store.UpdateStatus(context.Background(), ps.ID, models.SyncFailed, "HTTP 503"))

	out, err := run(t, env.load, "pending", "list")
	require.NoError(t, err)
	assert.Contains(t, out, ps.ID)
	assert.Contains(t, out, "42 (Ali)")
	assert.Contains(t, out, "failed: HTTP 503")
	assert.Contains(t, out, "pending")
}

func TestPendingCounts(t *testing.T) {
	env := newTestEnv(t)
	ps := env.queue(t, 1, "")
	env.queue(t, 2, "")
	require.NoError(t, env.store.UpdateStatus(context.Background(), ps.ID, models.SyncFailed, "boom"))

	out, err := run(t, env.load, "pending", "counts")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending: 1")
	assert.Contains(t, out, "Failed:  1")
	assert.Contains(t, out, "Total:   2")
}

func TestPendingSync(t *testing.T) {
	env := newTestEnv(t)
	env.queue(t, 1, "Ali")
	env.queue(t, 2, "Sara")

	out, err := run(t, env.load, "pending", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Synced 2 of 2 sessions")
	assert.Len(t, env.uploader.Calls(), 2)

	all, err := env.store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPendingSyncNothingQueued(t *testing.T) {
	env := newTestEnv(t)
	out, err := run(t, env.load, "pending", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to sync")
}

func TestPendingSyncFailureReturnsError(t *testing.T) {
	env := newTestEnv(t)
	env.queue(t, 1, "Ali")
	env.uploader.SetErr(errors.New("backend down"))

	out, err := run(t, env.load, "pending", "sync")
	require.Error(t, err)
	assert.Contains(t, out, "Failed 1 sessions")

	counts, err := env.store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Failed)
}

func TestPendingClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	synced := env.queue(t, 1, "")
	env.queue(t, 2, "")
	require.NoError(t, env.store.UpdateStatus(ctx, synced.ID, models.SyncSynced, ""))

	out, err := run(t, env.load, "pending", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 sessions")

	out, err = run(t, env.load, "pending", "clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 sessions")

	all, err := env.store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBackupExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.queue(t, 1, "Ali")
	env.queue(t, 2, "Sara")
	path := filepath.Join(t.TempDir(), "nested", "queue.json")

	out, err := run(t, env.load, "backup", "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	target := newTestEnv(t)
	target.queue(t, 9, "")

	out, err = run(t, target.load, "backup", "import", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "merged 2 sessions")
	counts, err := target.store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Total)

	out, err = run(t, target.load, "backup", "import", "--input", path, "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "replaced queue with 2 sessions")
	counts, err = target.store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total)
}

func TestBackupImportRequiresInput(t *testing.T) {
	env := newTestEnv(t)
	_, err := run(t, env.load, "backup", "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}

func TestBackupImportMissingFile(t *testing.T) {
	env := newTestEnv(t)
	_, err := run(t, env.load, "backup", "import", "--input", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, 0, env.released)
}

func TestLoaderErrorIsReturned(t *testing.T) {
	failing := func(ctx context.Context) (*Services, func(), error) {
		return nil, nil, errors.New("redis unreachable")
	}
	_, err := run(t, failing, "pending", "counts")
	require.EqualError(t, err, "redis unreachable")
}

func TestStatusColorPlain(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "synced", statusColor(models.SyncSynced))
	assert.Equal(t, "custom", statusColor(models.SyncStatus("custom")))
}
