package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingImporter struct {
	mu    sync.Mutex
	paths []string
	fail  map[string]bool
}

func (r *recordingImporter) ImportFile(ctx context.Context, path string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, filepath.Base(path))
	if r.fail[filepath.Base(path)] {
		return 0, errors.New("malformed")
	}
	return 10, nil
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("tournament\n"), 0o644))
}

func TestImportNewFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.csv")
	touch(t, dir, "a.CSV")
	touch(t, dir, "notes.txt")
	touch(t, dir, "c.csv")

	importer := &recordingImporter{fail: map[string]bool{"c.csv": true}}
	s := NewScheduler(importer, nil)

	n, err := s.ImportNewFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a.CSV", "b.csv", "c.csv"}, importer.paths)
	assert.Equal(t, 3, s.Processed())

	// Second scan only sees the new file
	touch(t, dir, "d.csv")
	n, err = s.ImportNewFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "d.csv", importer.paths[len(importer.paths)-1])
}

func TestImportNewFilesMissingDir(t *testing.T) {
	s := NewScheduler(&recordingImporter{}, nil)
	_, err := s.ImportNewFiles(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(&recordingImporter{}, nil)
	assert.Error(t, s.Start(), "no jobs scheduled")

	assert.Error(t, s.ScheduleDirectoryImport("not a cron", t.TempDir()))
	require.NoError(t, s.ScheduleDirectoryImport("*/5 * * * *", t.TempDir()))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.ScheduleDirectoryImport("@hourly", t.TempDir()))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.True(t, s.GetNextRun().IsZero())
}
