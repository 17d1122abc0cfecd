package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresVolatileFields(t *testing.T) {
	a := []byte(`{"success":true,"data":[{"id":1,"name":"Ada","gpa":3,"createdAt":"2025-01-01"}]}`)
	b := []byte(`{"success":true,"data":[{"id":7,"name":"Ada","gpa":3.0,"createdAt":"2024-12-31"}]}`)

	assert.True(t, bodiesEqual(a, b, volatileFields))
	assert.False(t, bodiesEqual(a, b, nil))
	assert.False(t, bodiesEqual([]byte(`{"name":"Ada"}`), []byte(`{"name":"Grace"}`), volatileFields))
	assert.True(t, bodiesEqual([]byte("ID,Name\n"), []byte("ID,Name\n"), nil))
}

func TestLoadTargetsSkipsWritesByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[{"path":"/api/students"},{"method":"delete","path":"/api/students/1"}]}`), 0o600))

	targets, err := loadTargets(path, false)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "GET", targets[0].Method)

	targets, err = loadTargets(path, true)
	require.NoError(t, err)
	assert.Len(t, targets, 2)
	assert.Equal(t, "DELETE", targets[1].Method)
}
