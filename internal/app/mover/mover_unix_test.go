//go:build unix

package mover

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/mediasort/internal/infra/fsx"
)

type exdevFs struct{ afero.Fs }

func (f exdevFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}

func TestMove_CrossDevice(t *testing.T) {
	fs := exdevFs{setup(t)}

	_, err := Move(fs, "/src", "/lib/2015/2015-02", "a.jpg", false)
	assert.True(t, fsx.IsCrossDevice(err), "err=%v", err)
	assert.True(t, errors.Is(err, syscall.EXDEV))
}

func osSetup(t *testing.T) (afero.Fs, string, string) {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "lib", "2015", "2015-02")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.MkdirAll(dst, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.jpg"), []byte("new"), 0o644))
	return afero.NewOsFs(), src, dst
}

func TestMove_SymlinkToFileAtDestinationIsKept(t *testing.T) {
	fs, src, dst := osSetup(t)
	target := filepath.Join(filepath.Dir(dst), "other.jpg")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(dst, "a.jpg")))

	out, err := Move(fs, src, dst, "a.jpg", false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKept, out)

	b, err := os.ReadFile(filepath.Join(src, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
	fi, err := os.Lstat(filepath.Join(dst, "a.jpg"))
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)
}

func TestMove_DanglingSymlinkAtDestinationIsKept(t *testing.T) {
	fs, src, dst := osSetup(t)
	require.NoError(t, os.Symlink(filepath.Join(dst, "gone.jpg"), filepath.Join(dst, "a.jpg")))

	out, err := Move(fs, src, dst, "a.jpg", false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKept, out)
	_, err = os.Stat(filepath.Join(src, "a.jpg"))
	assert.NoError(t, err)
}

func TestMove_SymlinkToDirAtDestinationIsConflict(t *testing.T) {
	fs, src, dst := osSetup(t)
	require.NoError(t, os.Symlink(filepath.Dir(dst), filepath.Join(dst, "a.jpg")))

	_, err := Move(fs, src, dst, "a.jpg", false)
	assert.True(t, fsx.IsPathTypeConflict(err), "err=%v", err)
}
