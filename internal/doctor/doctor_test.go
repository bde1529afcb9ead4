package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/store"
)

func TestCheckFreshSetup(t *testing.T) {
	dir := t.TempDir()

	results, err := Check(context.Background(), filepath.Join(dir, "config.toml"), filepath.Join(dir, "applications.json"))
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.OK(), "%s: %v", r.Name, r.Err)
	}
	_, statErr := os.Stat(filepath.Join(dir, "config.toml"))
	assert.True(t, os.IsNotExist(statErr), "doctor must not create the config")
}

func TestCheckReportsMalformedData(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "applications.json")
	require.NoError(t, os.WriteFile(data, []byte("{not json"), 0o644))

	results, err := Check(context.Background(), filepath.Join(dir, "config.toml"), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data file")
	assert.False(t, results[1].OK())

	var readErr *store.ReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestCheckReportsHeldLock(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "applications.json")
	unlock, err := store.NewFileStore(data, nil).Lock()
	require.NoError(t, err)
	defer unlock()

	_, err = Check(context.Background(), filepath.Join(dir, "config.toml"), data)
	assert.ErrorIs(t, err, store.ErrLocked)
}

func TestCheckStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Check(ctx, "unused", "unused")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
