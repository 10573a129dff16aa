package session

import (
	"ssdcollector/internal/models"
)

// AllWords returns the words of the selected protocol
func (t *Tracker) AllWords() []models.Word {
	if t.selectedProtocol == nil {
		return nil
	}
	return t.selectedProtocol.Words
}

// CurrentWord returns the word being administered, or nil
func (t *Tracker) CurrentWord() *models.Word {
	if t.selectedProtocol == nil {
		return nil
	}
	if t.currentWordIndex < 0 || t.currentWordIndex >= len(t.selectedProtocol.Words) {
		return nil
	}
	w := t.selectedProtocol.Words[t.currentWordIndex]
	return &w
}

// CurrentProtocolRecordings returns one record per word of the selected
// protocol, in word order. Words without a record get a pending placeholder
// that is not added to the session.
func (t *Tracker) CurrentProtocolRecordings() []models.RecordingRecord {
	if t.selectedProtocol == nil {
		return nil
	}
	p := t.selectedProtocol

	byWord := make(map[string]int)
	for i := range t.recordings {
		r := &t.recordings[i]
		if r.ProtocolID != p.ID {
			continue
		}
		if j, ok := byWord[r.Word]; ok && t.recordings[j].Status.Priority() >= r.Status.Priority() {
			continue
		}
		byWord[r.Word] = i
	}

	out := make([]models.RecordingRecord, 0, len(p.Words))
	for _, w := range p.Words {
		if i, ok := byWord[w.Word]; ok {
			out = append(out, t.recordings[i])
		} else {
			out = append(out, models.NewPendingRecord(p.ID, w.Word))
		}
	}
	return out
}

// Recording returns the record for word in the selected protocol
func (t *Tracker) Recording(word string) (models.RecordingRecord, bool) {
	i := t.find(word)
	if i < 0 {
		return models.RecordingRecord{}, false
	}
	return t.recordings[i], true
}

// NextWord advances to the next word
func (t *Tracker) NextWord() bool {
	if t.selectedProtocol == nil {
		return false
	}
	if t.currentWordIndex < len(t.selectedProtocol.Words)-1 {
		t.currentWordIndex++
		return true
	}
	return false
}

// PreviousWord moves back one word
func (t *Tracker) PreviousWord() bool {
	if t.selectedProtocol == nil {
		return false
	}
	if t.currentWordIndex > 0 {
		t.currentWordIndex--
		return true
	}
	return false
}

// GoToWord jumps to index when it is within the word list
func (t *Tracker) GoToWord(index int) bool {
	if t.selectedProtocol == nil {
		return false
	}
	if index < 0 || index >= len(t.selectedProtocol.Words) {
		return false
	}
	t.currentWordIndex = index
	return true
}

// find locates the record for word, scoped to the selected protocol when there is one
func (t *Tracker) find(word string) int {
	for i := range t.recordings {
		r := &t.recordings[i]
		if r.Word != word {
			continue
		}
		if t.selectedProtocol != nil && r.ProtocolID != t.selectedProtocol.ID {
			continue
		}
		return i
	}
	return -1
}

// AddRecording attaches a finished capture to a word of the selected
// protocol and marks it recorded. Nil patch fields keep existing values.
func (t *Tracker) AddRecording(patch models.RecordingPatch) bool {
	if patch.Word == "" || t.selectedProtocol == nil {
		return false
	}

	i := -1
	for j := range t.recordings {
		if t.recordings[j].Word == patch.Word && t.recordings[j].ProtocolID == t.selectedProtocol.ID {
			i = j
			break
		}
	}

	if i < 0 {
		rec := models.NewPendingRecord(t.selectedProtocol.ID, patch.Word)
		applyPatch(&rec, patch)
		rec.Status = models.StatusRecorded
		rec.PlaybackURI = rec.URI
		t.recordings = append(t.recordings, rec)
		return true
	}

	rec := &t.recordings[i]
	applyPatch(rec, patch)
	rec.Status = models.StatusRecorded
	if patch.URI != nil && *patch.URI != "" {
		rec.PlaybackURI = *patch.URI
	}
	return true
}

func applyPatch(rec *models.RecordingRecord, patch models.RecordingPatch) {
	if patch.URI != nil {
		rec.URI = *patch.URI
	}
	if patch.Transcription != nil {
		rec.Transcription = *patch.Transcription
	}
	if patch.ErrorType != nil {
		rec.ErrorType = *patch.ErrorType
	}
	if patch.IsCorrect != nil {
		rec.IsCorrect = *patch.IsCorrect
	}
}

// UpdateRecordingStatus sets the status of word. Only AddRecording may
// mark a word recorded, so StatusRecorded and unknown statuses are refused.
func (t *Tracker) UpdateRecordingStatus(word string, status models.RecordingStatus) bool {
	switch status {
	case models.StatusPending, models.StatusRecording, models.StatusSkipped:
	default:
		return false
	}

	i := t.find(word)
	if i < 0 {
		return false
	}
	t.recordings[i].Status = status
	return true
}

// UpdateRecording merges annotation fields into word's record. The URI is
// owned by capture and is not changed here.
func (t *Tracker) UpdateRecording(word string, patch models.RecordingPatch) bool {
	i := t.find(word)
	if i < 0 {
		return false
	}
	patch.URI = nil
	applyPatch(&t.recordings[i], patch)
	return true
}

// SkipCurrentWord marks the current word skipped
func (t *Tracker) SkipCurrentWord() bool {
	w := t.CurrentWord()
	if w == nil {
		return false
	}
	return t.UpdateRecordingStatus(w.Word, models.StatusSkipped)
}

// ReRecordWord discards the capture of word and returns it to pending.
// Skipped words are returned to pending the same way.
func (t *Tracker) ReRecordWord(word string) bool {
	i := t.find(word)
	if i < 0 {
		return false
	}
	rec := &t.recordings[i]
	rec.URI = ""
	rec.PlaybackURI = ""
	rec.Status = models.StatusPending
	return true
}
