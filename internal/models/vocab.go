package models

import "time"

// VocabWord is an entry in the local vocabulary deck. Text holds the
// Korean display form; Meaning its translation.
type VocabWord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Meaning   string    `json:"meaning,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MasteryKey returns the key used to track this word's mastery: the
// explicit ID when present, otherwise the display text.
func (w VocabWord) MasteryKey() string {
	if w.ID != "" {
		return w.ID
	}
	return w.Text
}
