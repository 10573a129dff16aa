// Package session tracks the single live assessment session: the selected
// patient, battery and protocol, the word being administered, and one
// recording record per visited (protocol, word) pair.
//
// A Tracker is plain in-memory state. It performs no I/O and never returns
// errors; operations whose preconditions are not met are no-ops and report
// false. It is not safe for concurrent use; the owner serialises access.
package session

import (
	"ssdcollector/internal/models"
)

// recordKey identifies a record within a session
type recordKey struct {
	protocolID string
	word       string
}

func keyOf(r *models.RecordingRecord) recordKey {
	return recordKey{protocolID: r.ProtocolID, word: r.Word}
}

// Tracker owns the mutable state of one assessment session
type Tracker struct {
	patientID            int64
	battery              *models.TestBattery
	selectedProtocol     *models.Protocol
	recordings           []models.RecordingRecord
	currentWordIndex     int
	completedProtocolIDs []string

	// generation changes whenever the session is restarted or its patient or
	// battery changes, so work started before can tell it is stale
	generation uint64
}

// NewTracker returns an empty session
func NewTracker() *Tracker {
	return &Tracker{}
}

// SessionView is a read-only summary of the session selection state
type SessionView struct {
	PatientID            int64    `json:"patientId"`
	BatteryID            string   `json:"batteryId,omitempty"`
	ProtocolID           string   `json:"protocolId,omitempty"`
	CurrentWordIndex     int      `json:"currentWordIndex"`
	CompletedProtocolIDs []string `json:"completedProtocolIds"`
	RecordingCount       int      `json:"recordingCount"`
}

// State returns the current selection state
func (t *Tracker) State() SessionView {
	v := SessionView{
		PatientID:            t.patientID,
		CurrentWordIndex:     t.currentWordIndex,
		CompletedProtocolIDs: append([]string{}, t.completedProtocolIDs...),
		RecordingCount:       len(t.recordings),
	}
	if t.battery != nil {
		v.BatteryID = t.battery.ID
	}
	if t.selectedProtocol != nil {
		v.ProtocolID = t.selectedProtocol.ID
	}
	return v
}

// PatientID returns the selected patient, 0 when unset
func (t *Tracker) PatientID() int64 {
	return t.patientID
}

// Battery returns the selected battery or nil
func (t *Tracker) Battery() *models.TestBattery {
	return t.battery
}

// SelectedProtocol returns the selected protocol or nil
func (t *Tracker) SelectedProtocol() *models.Protocol {
	return t.selectedProtocol
}

// CurrentWordIndex returns the index into the selected protocol's words
func (t *Tracker) CurrentWordIndex() int {
	return t.currentWordIndex
}

// Snapshot returns a copy of every record in the session. The copy can be
// passed back to ProtocolStatus to evaluate against frozen state.
func (t *Tracker) Snapshot() []models.RecordingRecord {
	out := make([]models.RecordingRecord, len(t.recordings))
	copy(out, t.recordings)
	return out
}

// Generation identifies the current session. It changes on SetPatient,
// SetTestBattery, Clear and Reset.
func (t *Tracker) Generation() uint64 {
	return t.generation
}

// SetPatient sets the patient for the session
func (t *Tracker) SetPatient(id int64) {
	t.patientID = id
	t.generation++
}

// SetTestBattery selects a battery and restarts all progress
func (t *Tracker) SetTestBattery(b *models.TestBattery) {
	if b != nil {
		cp := *b
		b = &cp
	}
	t.battery = b
	t.generation++
	t.selectedProtocol = nil
	t.recordings = nil
	t.currentWordIndex = 0
	t.completedProtocolIDs = nil
}

// SetSelectedProtocol switches to a protocol. Records of every other
// protocol are kept; words of p without a record get a pending one. The
// current word becomes the first word still pending or being recorded.
func (t *Tracker) SetSelectedProtocol(p *models.Protocol) bool {
	if p == nil {
		return false
	}
	cp := *p
	p = &cp

	t.recordings = dedupe(t.recordings, keyOf)

	existing := make(map[string]bool, len(p.Words))
	for i := range t.recordings {
		if t.recordings[i].ProtocolID == p.ID {
			existing[t.recordings[i].Word] = true
		}
	}
	for _, w := range p.Words {
		if !existing[w.Word] {
			t.recordings = append(t.recordings, models.NewPendingRecord(p.ID, w.Word))
			existing[w.Word] = true
		}
	}

	t.selectedProtocol = p

	t.currentWordIndex = 0
	for i, rec := range t.CurrentProtocolRecordings() {
		if rec.Status == models.StatusPending || rec.Status == models.StatusRecording {
			t.currentWordIndex = i
			break
		}
	}
	return true
}

// dedupe keeps one record per key, preferring the higher priority status.
// Ties keep the earlier record; output follows first-seen key order.
func dedupe[K comparable](recs []models.RecordingRecord, key func(*models.RecordingRecord) K) []models.RecordingRecord {
	idx := make(map[K]int, len(recs))
	out := make([]models.RecordingRecord, 0, len(recs))
	for i := range recs {
		k := key(&recs[i])
		j, seen := idx[k]
		if !seen {
			idx[k] = len(out)
			out = append(out, recs[i])
			continue
		}
		if recs[i].Status.Priority() > out[j].Status.Priority() {
			out[j] = recs[i]
		}
	}
	return out
}

// ProtocolStatus reports progress of p. When override is non-nil it is
// evaluated instead of the live records.
func (t *Tracker) ProtocolStatus(p *models.Protocol, override []models.RecordingRecord) models.ProtocolStatus {
	if p == nil {
		return models.ProtocolStatus{}
	}
	recs := t.recordings
	if override != nil {
		recs = override
	}
	return protocolStatus(p, recs)
}

func protocolStatus(p *models.Protocol, recs []models.RecordingRecord) models.ProtocolStatus {
	words := make(map[string]bool, len(p.Words))
	for _, w := range p.Words {
		words[w.Word] = true
	}

	var matching []models.RecordingRecord
	for _, r := range recs {
		if r.ProtocolID == p.ID && words[r.Word] {
			matching = append(matching, r)
		}
	}
	matching = dedupe(matching, func(r *models.RecordingRecord) string { return r.Word })

	byWord := make(map[string]models.RecordingRecord, len(matching))
	status := models.ProtocolStatus{
		HasStarted: len(matching) > 0,
		TotalWords: len(p.Words),
	}
	for _, r := range matching {
		byWord[r.Word] = r
		if r.IsCaptured() {
			status.RecordedCount++
		}
	}

	allComplete := true
	for _, w := range p.Words {
		r, ok := byWord[w.Word]
		if !ok || !r.IsCaptured() {
			allComplete = false
			break
		}
	}

	status.IsCompleted = allComplete
	status.IsIncomplete = status.HasStarted && !allComplete
	return status
}

// RemainingProtocols returns every battery protocol except the selected one
func (t *Tracker) RemainingProtocols() []models.Protocol {
	if t.battery == nil {
		return nil
	}
	var out []models.Protocol
	for _, p := range t.battery.Protocols {
		if t.selectedProtocol != nil && p.ID == t.selectedProtocol.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IncompleteProtocols returns the remaining protocols that were started but not finished
func (t *Tracker) IncompleteProtocols() []models.Protocol {
	var out []models.Protocol
	for _, p := range t.RemainingProtocols() {
		s := protocolStatus(&p, t.recordings)
		if s.HasStarted && !s.IsCompleted {
			out = append(out, p)
		}
	}
	return out
}

// IsCurrentProtocolComplete reports whether every word of the selected protocol is captured
func (t *Tracker) IsCurrentProtocolComplete() bool {
	if t.selectedProtocol == nil {
		return false
	}
	for _, rec := range t.CurrentProtocolRecordings() {
		if !rec.IsCaptured() {
			return false
		}
	}
	return true
}

// MarkProtocolComplete records the selected protocol as finished
func (t *Tracker) MarkProtocolComplete() bool {
	if t.selectedProtocol == nil {
		return false
	}
	for _, id := range t.completedProtocolIDs {
		if id == t.selectedProtocol.ID {
			return true
		}
	}
	t.completedProtocolIDs = append(t.completedProtocolIDs, t.selectedProtocol.ID)
	return true
}

// CompletedProtocolIDs returns protocols explicitly marked complete
func (t *Tracker) CompletedProtocolIDs() []string {
	return append([]string{}, t.completedProtocolIDs...)
}

// Clear drops all records and the protocol selection but keeps the patient and battery
func (t *Tracker) Clear() {
	t.generation++
	t.recordings = nil
	t.selectedProtocol = nil
	t.currentWordIndex = 0
	t.completedProtocolIDs = nil
}

// Reset returns the tracker to its empty state
func (t *Tracker) Reset() {
	t.Clear()
	t.patientID = 0
	t.battery = nil
}
