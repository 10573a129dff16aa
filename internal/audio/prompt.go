// Package audio fetches and caches model pronunciations of catalog words.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"

	"ssdcollector/internal/models"
)

// DefaultTTSURL is Google Translate's speech endpoint, which needs no API key
const DefaultTTSURL = "https://translate.google.com/translate_tts"

const ttsRequestTimeout = 10 * time.Second

// ErrEmptyWord is returned when there is no text to speak
var ErrEmptyWord = errors.New("word has no text to speak")

// PromptService provides the model pronunciation played before a child repeats a word
type PromptService struct {
	audioDir string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger

	mu sync.Mutex
}

// NewPromptService creates a prompt service caching MP3s under audioDir
func NewPromptService(audioDir string, logger *zap.Logger) (*PromptService, error) {
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create prompts directory: %w", err)
	}
	return &PromptService{
		audioDir: audioDir,
		baseURL:  DefaultTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		logger:   logger,
	}, nil
}

// WithEndpoint points the service at another speech endpoint
func (s *PromptService) WithEndpoint(baseURL string, client *http.Client) *PromptService {
	s.baseURL = baseURL
	if client != nil {
		s.client = client
	}
	return s
}

// Language returns the speech language code for a battery
func Language(b *models.TestBattery) string {
	if b != nil && strings.EqualFold(b.Language, "urdu") {
		return "ur"
	}
	return "en"
}

// PromptText returns what is spoken for word: the Urdu script for Urdu
// batteries when present, the display word otherwise
func PromptText(b *models.TestBattery, word models.Word) string {
	if Language(b) == "ur" && word.Urdu != "" {
		return word.Urdu
	}
	return word.Word
}

// PromptFile returns the path of the cached prompt for word, fetching it on first use
func (s *PromptService) PromptFile(ctx context.Context, b *models.TestBattery, word models.Word) (string, error) {
	lang := Language(b)
	text := strings.TrimSpace(PromptText(b, word))
	if text == "" {
		return "", ErrEmptyWord
	}

	filename := fmt.Sprintf("prompt_%s_%s.mp3", lang, sanitize(word.Word))
	path := filepath.Join(s.audioDir, filename)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := s.fetch(ctx, text, lang, path); err != nil {
		return "", fmt.Errorf("failed to generate prompt for %q: %w", word.Word, err)
	}

	s.logger.Debug("Cached prompt audio",
		zap.String("word", word.Word),
		zap.String("lang", lang),
		zap.String("file", filename))
	return path, nil
}

// Prefetch caches the prompts of every word in p and returns the first error
func (s *PromptService) Prefetch(ctx context.Context, b *models.TestBattery, p *models.Protocol) error {
	for _, w := range p.Words {
		if _, err := s.PromptFile(ctx, b, w); err != nil {
			return err
		}
	}
	return nil
}

func (s *PromptService) fetch(ctx context.Context, text, lang, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len([]rune(text))))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Google rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.audioDir, ".prompt-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}

// sanitize keeps letters and digits and folds the rest to '_'
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "word"
	}
	return b.String()
}
