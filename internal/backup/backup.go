package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"jobtrack/internal/app"
	"jobtrack/internal/model"
	"jobtrack/internal/store"
)

const manifestName = "manifest.json"

type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewService(logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return Service{logger: logger, now: time.Now}
}

type Manifest struct {
	Snapshots []ManifestEntry `json:"snapshots"`
}

type ManifestEntry struct {
	File      string `json:"file"`
	Source    string `json:"source"`
	CreatedAt string `json:"createdAt"`
	Records   int    `json:"records"`
	SHA256    string `json:"sha256"`
}

// Snapshot writes apps to a timestamped file under root and records its
// checksum in root's manifest.
func (s Service) Snapshot(apps []model.Application, source, root string) (ManifestEntry, error) {
	if s.now == nil {
		s.now = time.Now
	}
	now := s.now()
	path := filepath.Join(root, app.BackupFileName(now))
	if _, err := os.Stat(path); err == nil {
		return ManifestEntry{}, fmt.Errorf("snapshot already exists: %s", path)
	}
	if err := store.NewFileStore(path, s.logger).Save(apps); err != nil {
		return ManifestEntry{}, err
	}
	sum, err := fileSHA256(path)
	if err != nil {
		return ManifestEntry{}, err
	}
	entry := ManifestEntry{
		File:      filepath.Base(path),
		Source:    source,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Records:   len(apps),
		SHA256:    sum,
	}

	man, err := ReadManifest(root)
	if err != nil {
		return ManifestEntry{}, err
	}
	man.Snapshots = append(man.Snapshots, entry)
	sort.Slice(man.Snapshots, func(i, j int) bool { return man.Snapshots[i].File < man.Snapshots[j].File })
	if err := writeManifest(root, man); err != nil {
		return ManifestEntry{}, err
	}
	s.logger.Info("snapshot written", "file", path, "records", entry.Records)
	return entry, nil
}

func ReadManifest(root string) (Manifest, error) {
	b, err := os.ReadFile(filepath.Join(root, manifestName))
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, err
	}
	var man Manifest
	if err := json.Unmarshal(b, &man); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", manifestName, err)
	}
	return man, nil
}

func writeManifest(root string, man Manifest) error {
	b, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	tmp := filepath.Join(root, manifestName+".tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(root, manifestName))
}

// Verify recomputes every manifest checksum and returns the files that are
// missing or no longer match.
func Verify(root string) ([]string, error) {
	man, err := ReadManifest(root)
	if err != nil {
		return nil, err
	}
	bad := []string{}
	for _, e := range man.Snapshots {
		sum, err := fileSHA256(filepath.Join(root, e.File))
		if err != nil || sum != e.SHA256 {
			bad = append(bad, e.File)
		}
	}
	return bad, nil
}

func fileSHA256(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:]), nil
}

// TargetNotEmptyError is returned by Restore when the data file already holds
// applications and overwrite was not requested.
type TargetNotEmptyError struct {
	Path    string
	Records int
}

func (e TargetNotEmptyError) Error() string {
	return fmt.Sprintf("%s already holds %d applications", e.Path, e.Records)
}

// Restore copies the named snapshot into dst after checking it against the
// manifest checksum.
func (s Service) Restore(root, file string, dst *store.FileStore, overwrite bool) (int, error) {
	man, err := ReadManifest(root)
	if err != nil {
		return 0, err
	}
	var entry *ManifestEntry
	for i := range man.Snapshots {
		if man.Snapshots[i].File == file {
			entry = &man.Snapshots[i]
			break
		}
	}
	if entry == nil {
		return 0, fmt.Errorf("snapshot not in manifest: %s", file)
	}
	path := filepath.Join(root, file)
	sum, err := fileSHA256(path)
	if err != nil {
		return 0, err
	}
	if sum != entry.SHA256 {
		return 0, fmt.Errorf("checksum mismatch for %s", file)
	}
	apps, err := store.NewFileStore(path, s.logger).Load()
	if err != nil {
		return 0, err
	}
	current, err := dst.Load()
	if err != nil {
		return 0, err
	}
	if len(current) > 0 && !overwrite {
		return 0, TargetNotEmptyError{Path: dst.Path(), Records: len(current)}
	}
	if err := dst.Save(apps); err != nil {
		return 0, err
	}
	s.logger.Info("snapshot restored", "file", path, "target", dst.Path(), "records", len(apps))
	return len(apps), nil
}
