package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"ssdcollector/internal/capture"
	"ssdcollector/internal/models"
)

const (
	finalizePath   = "/api/sessions/finalize"
	finalDiagnosis = "Pending Analysis"
	maxResponse    = 1 << 20
)

// AudioSource opens the audio behind a capture handle
type AudioSource interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

type annotation struct {
	TargetWord    string `json:"targetWord"`
	Transcription string `json:"transcription"`
	ErrorType     string `json:"errorType"`
	IsCorrect     bool   `json:"isCorrect"`
}

// HTTPUploader posts sessions as multipart/form-data with bearer authentication
type HTTPUploader struct {
	baseURL string
	token   string
	audio   AudioSource
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewHTTPUploader creates an uploader for the backend at baseURL
func NewHTTPUploader(baseURL, token string, audio AudioSource, timeout time.Duration, logger *zap.Logger) *HTTPUploader {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = timeout

	return &HTTPUploader{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		audio:   audio,
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

// UploadSession sends one finalized session
func (u *HTTPUploader) UploadSession(ctx context.Context, patientID int64, recs []models.UploadRecording, notes string) (*Result, error) {
	if err := checkToken(u.token, u.now()); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(u.writeForm(ctx, mw, patientID, recs, notes))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+finalizePath, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := u.client.Do(req)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to send session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		u.logger.Warn("Session upload rejected",
			zap.Int64("patient_id", patientID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	u.logger.Info("Session uploaded",
		zap.Int64("patient_id", patientID),
		zap.Int64("session_id", result.SessionID),
		zap.Int("recordings", len(recs)),
		zap.Duration("duration", time.Since(start)),
	)
	return &result, nil
}

func (u *HTTPUploader) writeForm(ctx context.Context, mw *multipart.Writer, patientID int64, recs []models.UploadRecording, notes string) error {
	annotations := make([]annotation, len(recs))
	for i, rec := range recs {
		errType := rec.ErrorType
		if errType == "" {
			errType = models.DefaultErrorType
		}
		annotations[i] = annotation{
			TargetWord:    rec.Word,
			Transcription: rec.Transcription,
			ErrorType:     errType,
			IsCorrect:     rec.IsCorrect,
		}
	}
	annotationsJSON, err := json.Marshal(annotations)
	if err != nil {
		return fmt.Errorf("failed to encode annotations: %w", err)
	}

	fields := []struct{ name, value string }{
		{"patientId", strconv.FormatInt(patientID, 10)},
		{"notes", notes},
		{"sessionDate", u.now().UTC().Format(time.RFC3339)},
		{"finalDiagnosis", finalDiagnosis},
		{"annotations", string(annotationsJSON)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return err
		}
	}

	for i, rec := range recs {
		if err := u.writeAudio(ctx, mw, i, rec); err != nil {
			return err
		}
	}

	return mw.Close()
}

func (u *HTTPUploader) writeAudio(ctx context.Context, mw *multipart.Writer, index int, rec models.UploadRecording) error {
	ext := capture.ExtFromURI(rec.URI)
	contentType, _ := capture.ContentType(ext)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio_files"; filename="recording_%d.%s"`, index, ext))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	src, err := u.audio.Open(ctx, rec.URI)
	if err != nil {
		return fmt.Errorf("failed to open recording for word %q: %w", rec.Word, err)
	}
	defer src.Close()

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to attach recording for word %q: %w", rec.Word, err)
	}
	return nil
}

// errorMessage extracts {message} or {error} from a backend error body
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "Upload failed"
}
