package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	t.Helper()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rs := NewRedisStore(NewRedisClient(mr.Addr(), "", 0), "ssd:")

	return map[string]BlobStore{
		"file":   fs,
		"redis":  rs,
		"memory": NewMemoryStore(),
	}
}

func TestBlobStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "pending_sessions")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "pending_sessions", []byte(`[1]`)))
			got, err := store.Get(ctx, "pending_sessions")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, store.Set(ctx, "pending_sessions", []byte(`[1,2]`)))
			got, err = store.Get(ctx, "pending_sessions")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, store.Delete(ctx, "pending_sessions"))
			_, err = store.Get(ctx, "pending_sessions")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, store.Delete(ctx, "pending_sessions"))
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"pending_sessions", true},
		{"session-1.v2", true},
		{"", false},
		{"..", false},
		{"../etc/passwd", false},
		{"a/b", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set(context.Background(), "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestRedisStoreUsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rs := NewRedisStore(NewRedisClient(mr.Addr(), "", 0), "ssd:")
	ctx := context.Background()

	require.NoError(t, rs.Ping(ctx))
	require.NoError(t, rs.Set(ctx, "k", []byte("v")))

	val, err := mr.Get("ssd:k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}
