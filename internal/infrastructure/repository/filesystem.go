package repository

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fileshare/internal/domain/apperr"
	domain "fileshare/internal/domain/file"
)

type filesystemRepository struct {
	basePath string
}

// NewFilesystemRepository creates a repository over a single flat directory.
func NewFilesystemRepository(basePath string) (domain.Repository, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, apperr.IO("resolve managed directory", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, apperr.IO("create managed directory", err)
	}
	return &filesystemRepository{basePath: abs}, nil
}

// resolve joins a canonical name to the root and refuses anything that is not
// a direct child of it.
func (r *filesystemRepository) resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return "", domain.ErrInvalidName
	}
	full := filepath.Clean(filepath.Join(r.basePath, name))
	if filepath.Dir(full) != r.basePath {
		return "", domain.ErrInvalidName
	}
	return full, nil
}

func (r *filesystemRepository) List() ([]domain.Info, error) {
	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return nil, apperr.IO("read managed directory", err)
	}

	files := make([]domain.Info, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.Info{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// Stat does not follow symlinks: only regular files count, matching List.
func (r *filesystemRepository) Stat(name string) (domain.Info, error) {
	info, err := r.lstat(name)
	if err != nil {
		return domain.Info{}, err
	}
	return domain.Info{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (r *filesystemRepository) lstat(name string) (fs.FileInfo, error) {
	full, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Lstat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, apperr.IO("stat "+name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.ErrNotFound
	}
	return info, nil
}

// Open refuses the file if it was swapped for something else between the
// lstat and the open.
func (r *filesystemRepository) Open(name string) (*os.File, domain.Info, error) {
	linfo, err := r.lstat(name)
	if err != nil {
		return nil, domain.Info{}, err
	}
	f, err := os.Open(filepath.Join(r.basePath, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Info{}, domain.ErrNotFound
		}
		return nil, domain.Info{}, apperr.IO("open "+name, err)
	}
	finfo, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, domain.Info{}, apperr.IO("stat "+name, err)
	}
	if !os.SameFile(linfo, finfo) {
		f.Close()
		return nil, domain.Info{}, domain.ErrNotFound
	}
	return f, domain.Info{Name: name, Size: finfo.Size(), ModTime: finfo.ModTime()}, nil
}

// Save streams content into a hidden temp file and renames it over name. A
// positive limit caps the number of bytes accepted.
func (r *filesystemRepository) Save(name string, content io.Reader, limit int64) (int64, error) {
	full, err := r.resolve(name)
	if err != nil {
		return 0, err
	}

	tmpFile, err := os.CreateTemp(r.basePath, ".upload-*")
	if err != nil {
		return 0, apperr.IO("create temp file", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	src := content
	if limit > 0 {
		src = io.LimitReader(content, limit+1)
	}
	written, err := io.Copy(tmpFile, src)
	if err != nil {
		tmpFile.Close()
		return written, apperr.IO("write "+name, err)
	}
	if err := tmpFile.Close(); err != nil {
		return written, apperr.IO("close temp file", err)
	}
	if limit > 0 && written > limit {
		return written, domain.ErrFileTooLarge
	}

	if err := os.Rename(tmpPath, full); err != nil {
		return written, apperr.IO("replace "+name, err)
	}
	success = true
	return written, nil
}

func (r *filesystemRepository) Delete(name string) error {
	full, err := r.resolve(name)
	if err != nil {
		return err
	}
	info, err := os.Lstat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrNotFound
		}
		return apperr.IO("stat "+name, err)
	}
	if info.IsDir() {
		return domain.ErrNotFound
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrNotFound
		}
		return apperr.IO("delete "+name, err)
	}
	return nil
}

// Usage sums every regular file directly inside the managed directory,
// including files that never appear in listings.
func (r *filesystemRepository) Usage() (int64, error) {
	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return 0, apperr.IO("read managed directory", err)
	}

	var total int64
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if info, err := entry.Info(); err == nil {
			total += info.Size()
		}
	}
	return total, nil
}
