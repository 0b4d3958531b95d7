// Package jsonstore persists small records as indented JSON documents.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"fileshare/internal/domain/apperr"
)

// Load reads the JSON document at path. A missing or unparsable file yields
// def; a parse failure is logged, never returned. Keys absent from the
// document keep their value from def.
func Load[T any](path string, def T, logger *slog.Logger) T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("record unreadable, using defaults", "path", path, "error", err)
		}
		return def
	}

	// A failed decode can leave its target half written, so validate into a
	// scratch value before decoding over the default.
	var scratch T
	if err := json.Unmarshal(data, &scratch); err != nil {
		logger.Warn("record corrupt, using defaults", "path", path, "error", err)
		return def
	}
	v := def
	if err := json.Unmarshal(data, &v); err != nil {
		return scratch
	}
	return v
}

// Save writes v to path through a temp file and rename, so readers never see
// a partially written document.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.IO("encode "+filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperr.IO("create record directory", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return apperr.IO("create temp file", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperr.IO("write "+filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.IO("close temp file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return apperr.IO(fmt.Sprintf("replace %s", filepath.Base(path)), err)
	}
	success = true
	return nil
}

// Record owns one JSON document and serializes every read-modify-write.
type Record[T any] struct {
	mu     sync.RWMutex
	path   string
	value  T
	logger *slog.Logger
}

// Open loads the record at path, falling back to def.
func Open[T any](path string, def T, logger *slog.Logger) *Record[T] {
	return New(path, Load(path, def, logger), logger)
}

// New wraps an already loaded value. Nothing is written until Update or
// EnsureOnDisk.
func New[T any](path string, value T, logger *slog.Logger) *Record[T] {
	return &Record[T]{
		path:   path,
		value:  value,
		logger: logger,
	}
}

// Path returns the file backing the record.
func (r *Record[T]) Path() string { return r.path }

// Get returns a shallow copy of the current value. Map and slice contents
// are shared and must not be mutated; use View or Update instead.
func (r *Record[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// View calls fn with the current value under the read lock.
func (r *Record[T]) View(fn func(v T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.value)
}

// Update applies fn under the write lock and saves the result. If fn fails
// nothing is written. If the save fails the in-memory change is kept and the
// error is returned.
func (r *Record[T]) Update(fn func(v *T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(&r.value); err != nil {
		return err
	}
	if err := Save(r.path, r.value); err != nil {
		r.logger.Error("failed to save record", "path", r.path, "error", err)
		return err
	}
	return nil
}

// EnsureOnDisk writes the current value if the backing file does not exist.
func (r *Record[T]) EnsureOnDisk() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return apperr.IO("stat "+filepath.Base(r.path), err)
	}
	return Save(r.path, r.value)
}
