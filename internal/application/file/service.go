package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	statsService "fileshare/internal/application/stats"
	"fileshare/internal/domain/auth"
	domain "fileshare/internal/domain/file"
	"fileshare/internal/domain/stats"
	"fileshare/internal/infrastructure/archive"
	"fileshare/internal/infrastructure/thumbnail"
)

// Limits are the upload restrictions in force at the time of a call
type Limits struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// LimitsFunc returns the current upload restrictions.
type LimitsFunc func() Limits

// Download is an open file ready to be streamed to a client
type Download struct {
	File        *os.File
	Entry       domain.Entry
	ContentType string
}

// Service defines the business logic for file operations
type Service interface {
	ListFiles(ctx context.Context, s *auth.Session) ([]domain.Entry, error)
	Open(ctx context.Context, s *auth.Session, name string) (*Download, error)
	Upload(ctx context.Context, s *auth.Session, items []domain.UploadItem) (*domain.UploadResult, error)
	Download(ctx context.Context, s *auth.Session, name string) (*Download, error)
	View(ctx context.Context, s *auth.Session, name string) (*Download, error)
	RecordView(ctx context.Context, s *auth.Session, name string) (stats.FileStat, error)
	RecordDownload(ctx context.Context, s *auth.Session, name string) (stats.FileStat, error)
	Delete(ctx context.Context, s *auth.Session, name string) error
	BulkDelete(ctx context.Context, s *auth.Session, names []string) (*domain.BulkDeleteResult, error)
	Archive(ctx context.Context, s *auth.Session, names []string) ([]byte, error)
	Thumbnail(ctx context.Context, s *auth.Session, name string, edge int) ([]byte, error)
	DiskUsage(ctx context.Context, s *auth.Session) (domain.Usage, error)
}

type service struct {
	repo   domain.Repository
	stats  statsService.Service
	limits LimitsFunc
	locks  *nameLocks
	logger *slog.Logger
}

// NewService creates a new file service
func NewService(repo domain.Repository, tracker statsService.Service, limits LimitsFunc, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		stats:  tracker,
		limits: limits,
		locks:  newNameLocks(),
		logger: logger,
	}
}

func (s *service) ListFiles(ctx context.Context, sess *auth.Session) ([]domain.Entry, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	infos, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return visibleEntries(infos), nil
}

func visibleEntries(infos []domain.Info) []domain.Entry {
	entries := make([]domain.Entry, 0, len(infos))
	for _, info := range infos {
		if domain.IsVisible(info.Name) {
			entries = append(entries, domain.NewEntry(info))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries
}

func (s *service) Upload(ctx context.Context, sess *auth.Session, items []domain.UploadItem) (*domain.UploadResult, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNoFiles
	}

	limits := s.limits()
	result := &domain.UploadResult{
		Accepted: []string{},
		Rejected: []domain.Rejection{},
	}
	reject := func(name string, reason domain.RejectReason) {
		result.Rejected = append(result.Rejected, domain.Rejection{Name: name, Reason: reason})
		s.logger.Warn("upload rejected", "file", name, "reason", reason, "user", sess.Username)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		base, err := domain.UploadBase(item.Name)
		if err != nil {
			reject(item.Name, domain.RejectInvalidName)
			continue
		}
		if !domain.ExtensionAllowed(base, limits.AllowedExtensions) {
			reject(base, domain.RejectDisallowedExtension)
			continue
		}
		name, err := domain.CleanName(base)
		if err != nil {
			reject(base, domain.RejectInvalidName)
			continue
		}
		if limits.MaxFileSize > 0 && item.DeclaredSize > limits.MaxFileSize {
			reject(name, domain.RejectTooLarge)
			continue
		}

		if reason, ok := s.store(ctx, name, item, limits.MaxFileSize); !ok {
			reject(name, reason)
			continue
		}
		result.Accepted = append(result.Accepted, name)
	}

	s.logger.Info("upload finished", "user", sess.Username,
		"accepted", len(result.Accepted), "rejected", len(result.Rejected))
	return result, nil
}

// store writes one upload and records its stat under the name lock.
func (s *service) store(ctx context.Context, name string, item domain.UploadItem, limit int64) (domain.RejectReason, bool) {
	unlock := s.locks.lock(name)
	defer unlock()

	written, err := s.repo.Save(name, item.Content, limit)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			return domain.RejectTooLarge, false
		}
		s.logger.Error("failed to save upload", "file", name, "error", err)
		return domain.RejectIOError, false
	}
	s.stats.Touch(ctx, name, stats.ActionUpload)
	s.logger.Info("file uploaded", "file", name, "bytes", written)
	return "", true
}

// Open returns the file without recording any access.
func (s *service) Open(ctx context.Context, sess *auth.Session, name string) (*Download, error) {
	return s.open(ctx, sess, name, "")
}

func (s *service) Download(ctx context.Context, sess *auth.Session, name string) (*Download, error) {
	return s.open(ctx, sess, name, stats.ActionDownload)
}

func (s *service) View(ctx context.Context, sess *auth.Session, name string) (*Download, error) {
	return s.open(ctx, sess, name, stats.ActionView)
}

func (s *service) open(ctx context.Context, sess *auth.Session, name string, action stats.Action) (*Download, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	name, err := domain.CleanName(name)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(name)
	defer unlock()

	f, info, err := s.repo.Open(name)
	if err != nil {
		return nil, err
	}
	if action != "" {
		s.stats.Touch(ctx, name, action)
	}

	return &Download{
		File:        f,
		Entry:       domain.NewEntry(info),
		ContentType: domain.ContentType(name),
	}, nil
}

func (s *service) RecordView(ctx context.Context, sess *auth.Session, name string) (stats.FileStat, error) {
	return s.record(ctx, sess, name, stats.ActionView)
}

func (s *service) RecordDownload(ctx context.Context, sess *auth.Session, name string) (stats.FileStat, error) {
	return s.record(ctx, sess, name, stats.ActionDownload)
}

func (s *service) record(ctx context.Context, sess *auth.Session, name string, action stats.Action) (stats.FileStat, error) {
	if err := sess.RequireLogin(); err != nil {
		return stats.FileStat{}, err
	}
	name, err := domain.CleanName(name)
	if err != nil {
		return stats.FileStat{}, err
	}

	unlock := s.locks.lock(name)
	defer unlock()

	if _, err := s.repo.Stat(name); err != nil {
		return stats.FileStat{}, err
	}
	return s.stats.Touch(ctx, name, action)
}

// Delete removes the file first and its stat second; the stat is left alone
// when the file cannot be removed.
func (s *service) Delete(ctx context.Context, sess *auth.Session, name string) error {
	if err := sess.RequireLogin(); err != nil {
		return err
	}
	name, err := domain.CleanName(name)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(name)
	defer unlock()

	if err := s.repo.Delete(name); err != nil {
		return err
	}
	s.stats.Remove(ctx, name)
	s.logger.Info("file deleted", "file", name, "user", sess.Username)
	return nil
}

func (s *service) BulkDelete(ctx context.Context, sess *auth.Session, names []string) (*domain.BulkDeleteResult, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}

	result := &domain.BulkDeleteResult{Results: make(map[string]domain.BulkStatus, len(names))}
	var deleted []string
	for _, raw := range names {
		if _, seen := result.Results[raw]; seen {
			continue
		}
		name, err := domain.CleanName(raw)
		if err != nil {
			result.Results[raw] = domain.StatusInvalid
			continue
		}
		result.Results[raw] = s.deleteOne(name)
		if result.Results[raw] == domain.StatusDeleted {
			deleted = append(deleted, name)
		}
	}

	// Stats for every removed file go in one persisted update.
	s.stats.Remove(ctx, deleted...)
	result.Deleted = len(deleted)

	s.logger.Info("bulk delete", "user", sess.Username, "requested", len(names), "deleted", result.Deleted)
	return result, nil
}

func (s *service) deleteOne(name string) domain.BulkStatus {
	unlock := s.locks.lock(name)
	defer unlock()

	err := s.repo.Delete(name)
	switch {
	case err == nil:
		return domain.StatusDeleted
	case errors.Is(err, domain.ErrNotFound):
		return domain.StatusNotFound
	default:
		s.logger.Error("bulk delete failed", "file", name, "error", err)
		return domain.StatusFailed
	}
}

func (s *service) Archive(ctx context.Context, sess *auth.Session, names []string) ([]byte, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, domain.ErrNoFiles
	}

	seen := make(map[string]bool, len(names))
	members := make([]string, 0, len(names))
	for _, raw := range names {
		name, err := domain.CleanName(raw)
		if err != nil {
			s.logger.Warn("archive skipped invalid name", "file", raw, "user", sess.Username)
			continue
		}
		if !seen[name] {
			seen[name] = true
			members = append(members, name)
		}
	}

	data, included, err := archive.Build(ctx, members, func(name string) (*os.File, error) {
		f, _, err := s.repo.Open(name)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}
	if len(included) == 0 {
		return nil, domain.ErrEmptyArchive
	}

	for _, name := range included {
		if _, err := s.record(ctx, sess, name, stats.ActionDownload); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to record archive download", "file", name, "error", err)
		}
	}

	s.logger.Info("archive built", "user", sess.Username, "files", len(included), "bytes", len(data))
	return data, nil
}

func (s *service) Thumbnail(ctx context.Context, sess *auth.Session, name string, edge int) ([]byte, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	name, err := domain.CleanName(name)
	if err != nil {
		return nil, err
	}
	if domain.Classify(name) != domain.TypeImage {
		return nil, domain.ErrNotImage
	}

	f, _, err := s.repo.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	thumb, err := thumbnail.Make(f, edge)
	if err != nil {
		s.logger.Debug("thumbnail failed", "file", name, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNotImage, err)
	}
	return thumb, nil
}

func (s *service) DiskUsage(ctx context.Context, sess *auth.Session) (domain.Usage, error) {
	if err := sess.RequireLogin(); err != nil {
		return domain.Usage{}, err
	}
	total, err := s.repo.Usage()
	if err != nil {
		return domain.Usage{}, err
	}
	infos, err := s.repo.List()
	if err != nil {
		return domain.Usage{}, err
	}

	usage := domain.Usage{TotalBytes: total}
	for _, e := range visibleEntries(infos) {
		usage.VisibleBytes += e.SizeBytes
	}
	return usage, nil
}
