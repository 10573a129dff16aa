package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingStatusPriority(t *testing.T) {
	tests := []struct {
		name   string
		status RecordingStatus
		want   int
	}{
		{name: "pending", status: StatusPending, want: 0},
		{name: "recording", status: StatusRecording, want: 1},
		{name: "skipped", status: StatusSkipped, want: 2},
		{name: "recorded", status: StatusRecorded, want: 3},
		{name: "unknown", status: RecordingStatus(42), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Priority())
		})
	}
}

func TestParseRecordingStatus(t *testing.T) {
	for _, s := range []RecordingStatus{StatusPending, StatusRecording, StatusRecorded, StatusSkipped} {
		parsed, err := ParseRecordingStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseRecordingStatus("uploaded")
	assert.Error(t, err)
}

func TestRecordingStatusJSON(t *testing.T) {
	rec := NewPendingRecord("fronting", "Bikri")
	rec.Status = StatusSkipped

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"skipped"`)

	var decoded RecordingRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded)

	_, err = json.Marshal(RecordingRecord{Status: RecordingStatus(9)})
	assert.Error(t, err)
}

func TestRecordingRecordIsCaptured(t *testing.T) {
	tests := []struct {
		name   string
		status RecordingStatus
		uri    string
		want   bool
	}{
		{name: "recorded with uri", status: StatusRecorded, uri: "file:///a.wav", want: true},
		{name: "recorded without uri", status: StatusRecorded, uri: "", want: false},
		{name: "skipped with uri", status: StatusSkipped, uri: "file:///a.wav", want: false},
		{name: "pending", status: StatusPending, uri: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecordingRecord{Status: tt.status, URI: tt.uri}
			assert.Equal(t, tt.want, rec.IsCaptured())
		})
	}
}

func TestNewPendingRecordDefaults(t *testing.T) {
	rec := NewPendingRecord("stopping", "Sher")

	assert.Equal(t, "stopping", rec.ProtocolID)
	assert.Equal(t, "Sher", rec.Word)
	assert.Equal(t, "", rec.URI)
	assert.Equal(t, "", rec.Transcription)
	assert.Equal(t, DefaultErrorType, rec.ErrorType)
	assert.True(t, rec.IsCorrect)
	assert.Equal(t, StatusPending, rec.Status)
}

func TestProtocolIndexOf(t *testing.T) {
	p := Protocol{ID: "p", Words: []Word{{ID: 1, Word: "cat"}, {ID: 2, Word: "dog"}}}

	assert.Equal(t, 1, p.IndexOf("dog"))
	assert.Equal(t, -1, p.IndexOf("bird"))
	assert.True(t, p.HasWord("cat"))
}

func TestBatteryTotalWords(t *testing.T) {
	b := TestBattery{Protocols: []Protocol{
		{ID: "a", Words: []Word{{Word: "x"}, {Word: "y"}}},
		{ID: "b", Words: []Word{{Word: "x"}}},
	}}
	assert.Equal(t, 3, b.TotalWords())
}

func TestSyncStatusNeedsSync(t *testing.T) {
	tests := []struct {
		status SyncStatus
		want   bool
	}{
		{SyncPending, true},
		{SyncFailed, true},
		{SyncSyncing, false},
		{SyncSynced, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.NeedsSync())
		})
	}

	_, err := ParseSyncStatus("lost")
	assert.Error(t, err)
}
