package models

// Word is a single catalog item to be elicited and recorded
type Word struct {
	ID              int    `json:"id"`
	Word            string `json:"word"`
	Urdu            string `json:"urdu,omitempty"`
	Transliteration string `json:"transliteration,omitempty"`
	Pronunciation   string `json:"pronunciation,omitempty"`
	Phoneme         string `json:"phoneme,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

// Protocol is an ordered word list targeting one phonological pattern
type Protocol struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CheckNotes string `json:"checkNotes,omitempty"`
	Words      []Word `json:"words"`
}

// HasWord reports whether the protocol contains the given word text
func (p *Protocol) HasWord(word string) bool {
	return p.IndexOf(word) >= 0
}

// IndexOf returns the position of word in the protocol, or -1
func (p *Protocol) IndexOf(word string) int {
	for i, w := range p.Words {
		if w.Word == word {
			return i
		}
	}
	return -1
}

// TestBattery groups protocols administered together in one session
type TestBattery struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	FullName                  string     `json:"fullName"`
	Version                   string     `json:"version"`
	Language                  string     `json:"language"`
	TargetAgeYears            string     `json:"targetAgeYears"`
	AdministrationTimeMinutes int        `json:"administrationTimeMinutes"`
	Description               string     `json:"description"`
	Instructions              []string   `json:"instructions"`
	Protocols                 []Protocol `json:"protocols"`
}

// TotalWords sums the word counts of every protocol in the battery
func (b *TestBattery) TotalWords() int {
	total := 0
	for _, p := range b.Protocols {
		total += len(p.Words)
	}
	return total
}

// ErrorType is a phonological process a clinician can tag a production with
type ErrorType struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// DefaultErrorType is stored on every new recording
const DefaultErrorType = "None"

// ErrorTypes lists the phonological processes offered for annotation
var ErrorTypes = []ErrorType{
	{Code: "FRT", Label: "Fronting"},
	{Code: "STP", Label: "Stopping"},
	{Code: "FCD", Label: "Final Cons. Deletion"},
	{Code: "CR", Label: "Cluster Reduction"},
	{Code: "GLD", Label: "Gliding"},
	{Code: "DAF", Label: "Deaffrication"},
	{Code: "VOC", Label: "Voicing Error"},
	{Code: "WSD", Label: "Weak Syllable Del."},
	{Code: "OTH", Label: "Other"},
}
