package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"jobtrack/internal/model"
)

var ErrLocked = errors.New("data file is in use by another jobtrack instance")

// ReadError reports an unreadable or malformed data file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed save. The caller's in-memory state is not
// rolled back.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FileStore persists the whole collection as one JSON document. Every save
// replaces the file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() ([]model.Application, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("data file missing, starting empty", "path", s.path)
		return []model.Application{}, nil
	}
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	var apps []model.Application
	if err := json.Unmarshal(b, &apps); err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	if apps == nil {
		apps = []model.Application{}
	}
	s.logger.Debug("loaded applications", "path", s.path, "count", len(apps))
	return apps, nil
}

func (s *FileStore) Save(apps []model.Application) error {
	if apps == nil {
		apps = []model.Application{}
	}
	b, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	b = append(b, '\n')
	if err := writeFileAtomic(s.path, b); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	s.logger.Debug("saved applications", "path", s.path, "count", len(apps))
	return nil
}

// Lock takes an exclusive advisory lock next to the data file so two
// interactive sessions cannot overwrite each other's saves.
func (s *FileStore) Lock() (func() error, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return lock.Unlock, nil
}

func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
