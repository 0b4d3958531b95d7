package stats

import (
	"context"
	"log/slog"

	"fileshare/internal/domain/clock"
	domain "fileshare/internal/domain/stats"
)

// Service tracks per-file access counters
type Service interface {
	Touch(ctx context.Context, name string, action domain.Action) (domain.FileStat, error)
	Remove(ctx context.Context, names ...string) error
	Get(name string) (domain.FileStat, bool)
	All() map[string]domain.FileStat
	TotalDownloads() int64
}

type service struct {
	repo   domain.Repository
	clock  clock.Clock
	logger *slog.Logger
}

// NewService creates a new statistics tracker
func NewService(repo domain.Repository, c clock.Clock, logger *slog.Logger) Service {
	if c == nil {
		c = clock.Real{}
	}
	return &service{repo: repo, clock: c, logger: logger}
}

// Touch records one action. The counters are persisted before it returns; a
// failed save is logged and returned but the in-memory count is kept.
func (s *service) Touch(ctx context.Context, name string, action domain.Action) (domain.FileStat, error) {
	st, err := s.repo.Touch(name, action, s.clock.Now())
	if err != nil {
		s.logger.Error("failed to persist file stats", "file", name, "action", action, "error", err)
		return st, err
	}
	s.logger.Debug("file stat recorded", "file", name, "action", action)
	return st, nil
}

func (s *service) Remove(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	if err := s.repo.Remove(names...); err != nil {
		s.logger.Error("failed to remove file stats", "files", names, "error", err)
		return err
	}
	return nil
}

func (s *service) Get(name string) (domain.FileStat, bool) {
	return s.repo.Get(name)
}

func (s *service) All() map[string]domain.FileStat {
	return s.repo.All()
}

func (s *service) TotalDownloads() int64 {
	var total int64
	for _, st := range s.repo.All() {
		total += st.Downloads
	}
	return total
}
