package session

import (
	"math"

	"ssdcollector/internal/models"
)

// CompletionStats summarises the selected protocol. A word counts as
// recorded by status alone; the audio handle is not checked.
func (t *Tracker) CompletionStats() models.CompletionStats {
	var s models.CompletionStats
	for _, r := range t.CurrentProtocolRecordings() {
		s.Total++
		switch r.Status {
		case models.StatusRecorded:
			s.Recorded++
		case models.StatusSkipped:
			s.Skipped++
		case models.StatusPending:
			s.Pending++
		case models.StatusRecording:
		}
	}
	return finish(s)
}

// OverallStats summarises the whole session. Only captured records count
// as recorded; a recorded status without audio counts as pending. Total is
// the word count of the whole battery, or the record count without one.
func (t *Tracker) OverallStats() models.CompletionStats {
	var s models.CompletionStats
	for i := range t.recordings {
		r := &t.recordings[i]
		switch r.Status {
		case models.StatusRecorded:
			if r.HasAudio() {
				s.Recorded++
			} else {
				s.Pending++
			}
		case models.StatusSkipped:
			s.Skipped++
		case models.StatusPending:
			s.Pending++
		case models.StatusRecording:
		}
	}

	if t.battery != nil {
		s.Total = t.battery.TotalWords()
	} else {
		s.Total = len(t.recordings)
	}
	return finish(s)
}

func finish(s models.CompletionStats) models.CompletionStats {
	if s.Total > 0 {
		s.CompletionPercentage = int(math.Round(float64(s.Recorded) / float64(s.Total) * 100))
	}
	s.IsComplete = s.Pending == 0 && s.Total > 0
	return s
}

// RecordingsForUpload returns the captured records in session order,
// reduced to the shape the uploader consumes.
func (t *Tracker) RecordingsForUpload() []models.UploadRecording {
	out := make([]models.UploadRecording, 0, len(t.recordings))
	for i := range t.recordings {
		r := &t.recordings[i]
		if r.IsCaptured() {
			out = append(out, r.ForUpload())
		}
	}
	return out
}
