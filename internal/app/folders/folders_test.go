package folders

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/mediasort/internal/domain"
)

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, d := range []string{"/src", "/lib", "/photos", "/videos"} {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}
	require.NoError(t, afero.WriteFile(fs, "/file.txt", []byte("x"), 0o644))
	return fs
}

func TestResolve_ArgCount(t *testing.T) {
	fs := newFs(t)
	cases := []struct {
		args  []string
		kind  ArgErrorKind
		usage bool
	}{
		{nil, KindUsage, true},
		{[]string{"/src"}, KindTooFew, true},
		{[]string{"/src", "/lib", "/photos", "/videos"}, KindTooMany, true},
	}
	for _, tc := range cases {
		_, err := Resolve(fs, tc.args)
		var ae *ArgError
		require.True(t, errors.As(err, &ae), "args=%v", tc.args)
		assert.Equal(t, tc.kind, ae.Kind)
		assert.Equal(t, tc.usage, ae.WantsUsage())
	}
}

func TestResolve_TwoFolders(t *testing.T) {
	got, err := Resolve(newFs(t), []string{"/src", "/lib/"})
	require.NoError(t, err)
	assert.Equal(t, domain.Folders{Source: "/src/", Photo: "/lib/", Video: "/lib/"}, got)
}

func TestResolve_ThreeFolders(t *testing.T) {
	got, err := Resolve(newFs(t), []string{"/src", "/photos", "/videos//"})
	require.NoError(t, err)
	assert.Equal(t, domain.Folders{Source: "/src/", Photo: "/photos/", Video: "/videos/", Dual: true}, got)
}

func TestResolve_BadFolders(t *testing.T) {
	fs := newFs(t)

	_, err := Resolve(fs, []string{"/src", "/missing"})
	var ae *ArgError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindNotFound, ae.Kind)
	assert.False(t, ae.WantsUsage())
	assert.Contains(t, err.Error(), "/missing")

	_, err = Resolve(fs, []string{"/file.txt", "/lib"})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindNotDir, ae.Kind)
}

func TestWithTrailingSep(t *testing.T) {
	assert.Equal(t, "/", WithTrailingSep("/"))
	assert.Equal(t, "/a/b/", WithTrailingSep("/a/b"))
	assert.Equal(t, "/a/b/", WithTrailingSep("/a//b/"))
}
