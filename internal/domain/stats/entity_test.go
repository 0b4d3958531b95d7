package stats

import (
	"errors"
	"testing"
	"time"

	"fileshare/internal/domain/apperr"
)

func TestFileStatApply(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	var s FileStat

	s.Apply(ActionView, at)
	s.Apply(ActionView, at)
	s.Apply(ActionDownload, at)
	s.Apply(ActionUpload, at.Add(time.Minute))

	if s.Views != 2 || s.Downloads != 1 || s.Uploads != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.LastAccessed == nil || !s.LastAccessed.Equal(at.Add(time.Minute)) {
		t.Errorf("expected last access at %v, got %v", at.Add(time.Minute), s.LastAccessed)
	}
}

func TestParseAction(t *testing.T) {
	for _, s := range []string{"view", "download", "upload"} {
		if _, err := ParseAction(s); err != nil {
			t.Errorf("ParseAction(%q) unexpected error: %v", s, err)
		}
	}

	_, err := ParseAction("delete")
	if !errors.Is(err, ErrInvalidAction) || !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
