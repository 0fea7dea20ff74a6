package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`[
  {"id": "1", "title": "Buy milk", "status": "Pending", "dueDate": "2024-12-01"},
  {"id": "2", "title": "Walk dog", "status": "Completed", "dueDate": "2024-12-02"}
]`), 0o644))

	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_FILE", dataFile)

	out, err := runRoot(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "tasks: 2")
	assert.Contains(t, out, "Pending: 1")
	assert.Contains(t, out, "Completed: 1")
}

func TestCheck_CorruptStore(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`[{"id": "1", "title":`), 0o644))

	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_FILE", dataFile)

	_, err := runRoot(t, "check")
	assert.Error(t, err)
}

func TestCheck_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tasks.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
[storage]
driver = "sqlite"
sqlite_path = "`+filepath.Join(dir, "tasks.db")+`"
`), 0o644))

	out, err := runRoot(t, "check", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "storage: sqlite")
	assert.Contains(t, out, "tasks: 0")
}
