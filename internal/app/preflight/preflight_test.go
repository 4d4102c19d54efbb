package preflight

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/infra/fsx"
)

func TestCheckBackend(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/opt/get-metadata", []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, fs.MkdirAll("/usr/bin/exiftool", 0o755))

	cfg := config.Default("/home/u", "/opt")

	cfg.Backend = config.BackendGetTool
	assert.NoError(t, CheckBackend(fs, cfg))

	cfg.Backend = config.BackendExifTool
	err := CheckBackend(fs, cfg)
	var mt *MissingToolError
	require.ErrorAs(t, err, &mt)
	assert.Equal(t, "dir", mt.Got)
	assert.Equal(t, "/usr/bin/exiftool", mt.Path)

	cfg.Backend = config.BackendGetTool
	cfg.GetToolPath = "/opt/nope"
	err = CheckBackend(fs, cfg)
	require.ErrorAs(t, err, &mt)
	assert.Equal(t, "missing", mt.Got)
	assert.Contains(t, err.Error(), "/opt/nope")

	cfg.Backend = config.BackendNative
	assert.NoError(t, CheckBackend(afero.NewMemMapFs(), cfg))
}

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	created, err := EnsureDir(fs, "/lib/Unsorted Media Files", false)
	require.NoError(t, err)
	assert.True(t, created)
	ok, err := afero.DirExists(fs, "/lib/Unsorted Media Files")
	require.NoError(t, err)
	assert.True(t, ok)

	created, err = EnsureDir(fs, "/lib/Unsorted Media Files", false)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureDir_DryRunCreatesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()

	created, err := EnsureDir(fs, "/lib/unsorted", true)
	require.NoError(t, err)
	assert.True(t, created)

	ok, err := afero.Exists(fs, "/lib/unsorted")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/lib/unsorted", []byte("x"), 0o644))

	for _, dry := range []bool{false, true} {
		_, err := EnsureDir(fs, "/lib/unsorted", dry)
		assert.True(t, fsx.IsPathTypeConflict(err), "dryRun=%v err=%v", dry, err)
	}
}
