package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ssdcollector/internal/models"
)

type fakeAudio map[string]string

func (f fakeAudio) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := f[uri]
	if !ok {
		return nil, errors.New("no such recording")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		UserID:           12,
		Email:            "slp@example.com",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type receivedForm struct {
	auth        string
	fields      map[string]string
	files       []string
	fileBodies  []string
	contentType []string
}

func newBackend(t *testing.T, status int, reply string) (*httptest.Server, *receivedForm) {
	t.Helper()
	got := &receivedForm{fields: map[string]string{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sessions/finalize", r.URL.Path)
		got.auth = r.Header.Get("Authorization")

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, v := range r.MultipartForm.Value {
			got.fields[k] = v[0]
		}
		for _, fh := range r.MultipartForm.File["audio_files"] {
			got.files = append(got.files, fh.Filename)
			got.contentType = append(got.contentType, fh.Header.Get("Content-Type"))
			f, err := fh.Open()
			if !assert.NoError(t, err) {
				continue
			}
			data, _ := io.ReadAll(f)
			f.Close()
			got.fileBodies = append(got.fileBodies, string(data))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestUploadSession(t *testing.T) {
	srv, got := newBackend(t, http.StatusOK, `{"message":"Session uploaded successfully","sessionId":41,"recordingsSaved":2}`)

	token := signToken(t, time.Now().Add(time.Hour))
	audio := fakeAudio{"file:///r/a.wav": "AAA", "file:///r/b.m4a": "BBBB"}
	u := NewHTTPUploader(srv.URL+"/", token, audio, 5*time.Second, zap.NewNop())

	recs := []models.UploadRecording{
		{URI: "file:///r/a.wav", Word: "Bikri", Transcription: "Bitri", ErrorType: "FRT", IsCorrect: false},
		{URI: "file:///r/b.m4a", Word: "Sher", ErrorType: "", IsCorrect: true},
	}

	res, err := u.UploadSession(context.Background(), 9, recs, "Protocol: Fronting")
	require.NoError(t, err)
	assert.Equal(t, int64(41), res.SessionID)
	assert.Equal(t, 2, res.RecordingsSaved)

	assert.Equal(t, "Bearer "+token, got.auth)
	assert.Equal(t, "9", got.fields["patientId"])
	assert.Equal(t, "Protocol: Fronting", got.fields["notes"])
	assert.Equal(t, "Pending Analysis", got.fields["finalDiagnosis"])
	_, err = time.Parse(time.RFC3339, got.fields["sessionDate"])
	assert.NoError(t, err)

	var annotations []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got.fields["annotations"]), &annotations))
	require.Len(t, annotations, 2)
	assert.Equal(t, "Bikri", annotations[0]["targetWord"])
	assert.Equal(t, "Bitri", annotations[0]["transcription"])
	assert.Equal(t, "FRT", annotations[0]["errorType"])
	assert.Equal(t, false, annotations[0]["isCorrect"])
	assert.Equal(t, "None", annotations[1]["errorType"])

	assert.Equal(t, []string{"recording_0.wav", "recording_1.m4a"}, got.files)
	assert.Equal(t, []string{"AAA", "BBBB"}, got.fileBodies)
	assert.Equal(t, []string{"audio/wav", "audio/mp4"}, got.contentType)
}

func TestUploadSessionAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		reply   string
		message string
	}{
		{name: "message field", status: http.StatusBadRequest, reply: `{"message":"bad patient"}`, message: "bad patient"},
		{name: "error field", status: http.StatusNotFound, reply: `{"error":"Patient not found"}`, message: "Patient not found"},
		{name: "non json", status: http.StatusBadGateway, reply: `<html>`, message: "Upload failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, tt.reply)
			u := NewHTTPUploader(srv.URL, "opaque-token", fakeAudio{}, 5*time.Second, zap.NewNop())

			_, err := u.UploadSession(context.Background(), 1, nil, "")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestUploadSessionTokenChecks(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{}`)

	u := NewHTTPUploader(srv.URL, "", fakeAudio{}, time.Second, zap.NewNop())
	_, err := u.UploadSession(context.Background(), 1, nil, "")
	assert.ErrorIs(t, err, ErrNoToken)

	expired := signToken(t, time.Now().Add(-time.Minute))
	u = NewHTTPUploader(srv.URL, expired, fakeAudio{}, time.Second, zap.NewNop())
	_, err = u.UploadSession(context.Background(), 1, nil, "")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestUploadSessionMissingAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "opaque-token", fakeAudio{}, 5*time.Second, zap.NewNop())
	recs := []models.UploadRecording{{URI: "file:///gone.wav", Word: "cat"}}

	_, err := u.UploadSession(context.Background(), 1, recs, "")
	assert.Error(t, err)
}

func TestParseTokenClaims(t *testing.T) {
	token := signToken(t, time.Now().Add(24*time.Hour))

	claims, err := ParseTokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, "slp@example.com", claims.Email)

	_, err = ParseTokenClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestStubUploader(t *testing.T) {
	stub := &StubUploader{}
	recs := []models.UploadRecording{{URI: "u", Word: "w"}}

	res, err := stub.UploadSession(context.Background(), 3, recs, "n")
	require.NoError(t, err)
	assert.Equal(t, 1, res.RecordingsSaved)

	stub.SetErr(errors.New("offline"))
	_, err = stub.UploadSession(context.Background(), 3, recs, "n")
	assert.Error(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, int64(3), calls[0].PatientID)
	assert.Equal(t, "n", calls[0].Notes)
}
