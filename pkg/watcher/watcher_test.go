package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case path := <-ch:
		return path
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
		return ""
	}
}

func TestWatchWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.mesh")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changes := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{file}, func(path string) { changes <- path }))
	fw.Start()

	// several quick writes are reported once
	for i := range 5 {
		require.NoError(t, os.WriteFile(file, []byte{byte('b' + i)}, 0o644))
	}

	abs, err := filepath.Abs(file)
	require.NoError(t, err)
	assert.Equal(t, abs, waitFor(t, changes))

	select {
	case extra := <-changes:
		t.Errorf("unexpected second notification for %s", extra)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.mesh")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changes := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{file}, func(path string) { changes <- path }))
	fw.Start()

	tmp := filepath.Join(dir, "model.mesh.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0o644))
	require.NoError(t, os.Rename(tmp, file))

	abs, err := filepath.Abs(file)
	require.NoError(t, err)
	assert.Equal(t, abs, waitFor(t, changes))
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.mesh")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changes := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{file}, func(path string) { changes <- path }))
	fw.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case path := <-changes:
		t.Errorf("unexpected notification for %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRemoveAndClose(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.mesh")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)

	require.NoError(t, fw.Watch([]string{file}, func(string) {}))
	require.NoError(t, fw.Remove(file))
	require.NoError(t, fw.Remove(file))

	require.NoError(t, fw.Close())
	require.NoError(t, fw.Close())
}
