package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	ParentID  uuid.UUID `json:"parent_id,omitempty"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Published time.Time `json:"published"`
}

// Verdict is the body of a /check response.
type Verdict struct {
	Bad bool `json:"bad"`
}

// Options mirrors the filter configuration. Nil fields are left untouched
// by an update.
type Options struct {
	Placeholder *string  `json:"placeholder,omitempty"`
	Languages   []string `json:"languages"`
	Debug       *bool    `json:"debug,omitempty"`
}

type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	Bytes      int       `json:"bytes"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Duration   float64   `json:"duration_sec"`
	Service    string    `json:"service"`
}
