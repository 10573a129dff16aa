// Package capture stores captured word audio and hands back an opaque URI.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrForeignURI        = errors.New("uri does not belong to this store")
)

// DefaultExt is used when a capture arrives without a usable extension
const DefaultExt = "wav"

var allowedExts = map[string]string{
	"wav":  "audio/wav",
	"m4a":  "audio/mp4",
	"mp4":  "audio/mp4",
	"webm": "audio/webm",
	"ogg":  "audio/ogg",
	"mp3":  "audio/mpeg",
}

// Capability saves captures and resolves the handles it returns
type Capability interface {
	Save(ctx context.Context, protocolID, word string, r io.Reader, ext string) (string, error)
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
	Remove(ctx context.Context, uri string) error
	Size(ctx context.Context, uri string) (int64, error)
}

// ContentType returns the MIME type for a supported extension
func ContentType(ext string) (string, bool) {
	ct, ok := allowedExts[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ct, ok
}

// ExtFromURI returns the lower-case extension of a handle, or DefaultExt
func ExtFromURI(uri string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(uri), "."))
	if _, ok := allowedExts[ext]; !ok {
		return DefaultExt
	}
	return ext
}

// FileStore keeps captures as files under a directory and returns file:// URIs
type FileStore struct {
	dir string
}

// NewFileStore creates the recordings directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recordings directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recordings directory: %w", err)
	}
	return &FileStore{dir: abs}, nil
}

// Dir returns the absolute recordings directory
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes r to <protocol>_<word>_<uuid>.<ext>
func (s *FileStore) Save(ctx context.Context, protocolID, word string, r io.Reader, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = DefaultExt
	}
	if _, ok := allowedExts[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	name := fmt.Sprintf("%s_%s_%s.%s", fileSafe(protocolID), fileSafe(word), uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create recording file: %w", err)
	}

	if _, err := io.Copy(f, &ctxReader{ctx: ctx, r: r}); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write recording: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close recording: %w", err)
	}

	return (&url.URL{Scheme: "file", Path: path}).String(), nil
}

// Open returns the audio behind uri
func (s *FileStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	path, err := s.resolve(uri)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	return f, nil
}

// Remove deletes the audio behind uri; a missing file is not an error
func (s *FileStore) Remove(ctx context.Context, uri string) error {
	path, err := s.resolve(uri)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove recording: %w", err)
	}
	return nil
}

// Size returns the size in bytes of the audio behind uri
func (s *FileStore) Size(ctx context.Context, uri string) (int64, error) {
	path, err := s.resolve(uri)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat recording: %w", err)
	}
	return info.Size(), nil
}

// resolve maps a file:// URI to a path inside the store directory
func (s *FileStore) resolve(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrForeignURI, uri)
	}
	path := filepath.Clean(u.Path)
	if filepath.Dir(path) != s.dir {
		return "", fmt.Errorf("%w: %s", ErrForeignURI, uri)
	}
	return path, nil
}

// fileSafe keeps letters and digits (any script) and folds everything else to '-'
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "word"
	}
	return b.String()
}

// ctxReader stops a copy once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
