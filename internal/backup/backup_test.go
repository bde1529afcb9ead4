package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/model"
	"jobtrack/internal/store"
)

func testService(now time.Time) Service {
	s := NewService(nil)
	s.now = func() time.Time { return now }
	return s
}

func sampleApps() []model.Application {
	a := model.NewApplication(model.Date{Year: 2024, Month: time.May, Day: 2})
	a.CompanyName = "Acme"
	b := model.NewApplication(model.Date{Year: 2024, Month: time.May, Day: 3})
	b.CompanyName = "Beta"
	b.Platform = model.OtherPlatform("Dice")
	return []model.Application{a, b}
}

func TestSnapshotWritesFileAndManifest(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, time.May, 4, 8, 9, 10, 0, time.UTC)

	entry, err := testService(now).Snapshot(sampleApps(), "/data/applications.json", root)
	require.NoError(t, err)
	assert.Equal(t, "applications-20240504-080910.json", entry.File)
	assert.Equal(t, 2, entry.Records)
	assert.Len(t, entry.SHA256, 64)

	loaded, err := store.NewFileStore(filepath.Join(root, entry.File), nil).Load()
	require.NoError(t, err)
	assert.Equal(t, sampleApps(), loaded)

	man, err := ReadManifest(root)
	require.NoError(t, err)
	require.Len(t, man.Snapshots, 1)
	assert.Equal(t, entry, man.Snapshots[0])
}

func TestSnapshotAppendsToManifestInOrder(t *testing.T) {
	root := t.TempDir()
	later := time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)

	_, err := testService(later).Snapshot(sampleApps(), "src", root)
	require.NoError(t, err)
	_, err = testService(earlier).Snapshot(nil, "src", root)
	require.NoError(t, err)

	man, err := ReadManifest(root)
	require.NoError(t, err)
	require.Len(t, man.Snapshots, 2)
	assert.Equal(t, "applications-20240504-000000.json", man.Snapshots[0].File)
	assert.Equal(t, 0, man.Snapshots[0].Records)
}

func TestSnapshotRefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)
	s := testService(now)

	_, err := s.Snapshot(sampleApps(), "src", root)
	require.NoError(t, err)
	_, err = s.Snapshot(sampleApps(), "src", root)
	assert.Error(t, err)
}

func TestVerifyDetectsTampering(t *testing.T) {
	root := t.TempDir()
	entry, err := testService(time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)).Snapshot(sampleApps(), "src", root)
	require.NoError(t, err)

	bad, err := Verify(root)
	require.NoError(t, err)
	assert.Empty(t, bad)

	require.NoError(t, os.WriteFile(filepath.Join(root, entry.File), []byte("[]\n"), 0o644))
	bad, err = Verify(root)
	require.NoError(t, err)
	assert.Equal(t, []string{entry.File}, bad)
}

func TestReadManifestMissingIsEmpty(t *testing.T) {
	man, err := ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, man.Snapshots)
}

func TestRestoreSnapshot(t *testing.T) {
	root := t.TempDir()
	entry, err := testService(time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)).Snapshot(sampleApps(), "src", root)
	require.NoError(t, err)

	dst := store.NewFileStore(filepath.Join(t.TempDir(), "applications.json"), nil)
	n, err := NewService(nil).Restore(root, entry.File, dst, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := dst.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleApps(), loaded)

	_, err = NewService(nil).Restore(root, entry.File, dst, false)
	var notEmpty TargetNotEmptyError
	require.ErrorAs(t, err, &notEmpty)
	assert.Equal(t, 2, notEmpty.Records)

	_, err = NewService(nil).Restore(root, entry.File, dst, true)
	assert.NoError(t, err)
}

func TestRestoreRejectsUnknownOrTampered(t *testing.T) {
	root := t.TempDir()
	entry, err := testService(time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)).Snapshot(sampleApps(), "src", root)
	require.NoError(t, err)
	dst := store.NewFileStore(filepath.Join(t.TempDir(), "applications.json"), nil)

	_, err = NewService(nil).Restore(root, "applications-19990101-000000.json", dst, false)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, entry.File), []byte("[]\n"), 0o644))
	_, err = NewService(nil).Restore(root, entry.File, dst, false)
	assert.ErrorContains(t, err, "checksum mismatch")
}
