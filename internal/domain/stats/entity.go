package stats

import (
	"fmt"
	"time"

	"fileshare/internal/domain/apperr"
)

// Action is the kind of access being recorded
type Action string

const (
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
	ActionView     Action = "view"
)

var ErrInvalidAction = apperr.New(apperr.ErrValidation, "action must be view or download")

// ParseAction validates an action name received from a client.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionUpload, ActionDownload, ActionView:
		return Action(s), nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidAction)
}

// FileStat holds per-file usage counters
type FileStat struct {
	Downloads    int64      `json:"downloads"`
	Views        int64      `json:"views"`
	Uploads      int64      `json:"uploads"`
	Uploaded     time.Time  `json:"uploaded"`
	LastAccessed *time.Time `json:"last_accessed"`
}

// Apply records one action at the given time.
func (s *FileStat) Apply(action Action, at time.Time) {
	switch action {
	case ActionDownload:
		s.Downloads++
	case ActionView:
		s.Views++
	case ActionUpload:
		s.Uploads++
	}
	s.LastAccessed = &at
}
