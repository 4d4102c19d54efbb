//go:build unix

package execx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCommandRunner_TrimsStdoutAndSeparatesStderr(t *testing.T) {
	tool := writeScript(t, "echo '  2015:02:12 00:05:58  '\necho 'warn: x' 1>&2\n")

	out, err := CommandRunner{}.Run(context.Background(), tool)
	require.NoError(t, err)
	assert.Equal(t, "2015:02:12 00:05:58", out.Value)
	assert.True(t, out.Present)
	assert.Equal(t, "warn: x", out.Diag)
}

func TestCommandRunner_EmptyOutputIsAbsent(t *testing.T) {
	tool := writeScript(t, "printf '\\n'\n")

	out, err := CommandRunner{}.Run(context.Background(), tool)
	require.NoError(t, err)
	assert.False(t, out.Present)
	assert.Empty(t, out.Value)
}

func TestCommandRunner_PassesArgs(t *testing.T) {
	tool := writeScript(t, "echo \"$1|$2|$3\"\n")

	out, err := CommandRunner{}.Run(context.Background(), tool, "photo", "Model", "/a b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo|Model|/a b.jpg", out.Value)
}

func TestCommandRunner_NonZeroExitKeepsOutput(t *testing.T) {
	tool := writeScript(t, "echo partial\necho fail 1>&2\nexit 3\n")

	out, err := CommandRunner{}.Run(context.Background(), tool)
	require.Error(t, err)
	assert.Equal(t, "partial", out.Value)
	assert.Equal(t, "fail", out.Diag)
}

func TestCommandRunner_MissingBinary(t *testing.T) {
	_, err := CommandRunner{}.Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
