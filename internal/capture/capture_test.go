package capture

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	uri, err := store.Save(ctx, "fronting", "Bikri", strings.NewReader("RIFF...."), "wav")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "file://"))
	assert.Contains(t, uri, "fronting_bikri_")
	assert.True(t, strings.HasSuffix(uri, ".wav"))

	size, err := store.Size(ctx, uri)
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	rc, err := store.Open(ctx, uri)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "RIFF....", string(data))

	require.NoError(t, store.Remove(ctx, uri))
	_, err = store.Open(ctx, uri)
	assert.Error(t, err)
	assert.NoError(t, store.Remove(ctx, uri))
}

func TestFileStoreExtensions(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		ext     string
		wantErr bool
		suffix  string
	}{
		{ext: "", suffix: ".wav"},
		{ext: ".M4A", suffix: ".m4a"},
		{ext: "webm", suffix: ".webm"},
		{ext: "exe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			uri, err := store.Save(context.Background(), "p", "w", strings.NewReader("x"), tt.ext)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(uri, tt.suffix))
		})
	}
}

func TestFileStoreRejectsForeignURIs(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, uri := range []string{
		"http://example.com/a.wav",
		"file:///etc/passwd",
		"file://" + store.Dir() + "/../escape.wav",
		"not a uri",
	} {
		_, err := store.Open(ctx, uri)
		assert.ErrorIs(t, err, ErrForeignURI, uri)
	}
}

func TestFileStoreUrduWord(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	uri, err := store.Save(context.Background(), "stopping", "شیر", strings.NewReader("x"), "wav")
	require.NoError(t, err)
	assert.Contains(t, uri, "stopping_")
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "p", "w", strings.NewReader("x"), "wav")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtFromURI(t *testing.T) {
	assert.Equal(t, "m4a", ExtFromURI("file:///tmp/a.M4A"))
	assert.Equal(t, "wav", ExtFromURI("file:///tmp/a"))
	assert.Equal(t, "wav", ExtFromURI("file:///tmp/a.txt"))

	ct, ok := ContentType("mp3")
	assert.True(t, ok)
	assert.Equal(t, "audio/mpeg", ct)
}
