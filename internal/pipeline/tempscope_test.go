package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTempScopeCreateAndClose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scope := newTempScope(dir)

	a, err := scope.Create("in-*.webm")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(a, ".webm"))

	b, err := scope.CreateWith("out-*.wav", []byte("RIFF"))
	require.NoError(t, err)
	data, err := os.ReadFile(b)
	require.NoError(t, err)
	require.Equal(t, []byte("RIFF"), data)

	scope.Close()

	_, err = os.Stat(a)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(b)
	require.True(t, os.IsNotExist(err))
}

func TestTempScopeCloseToleratesMissingFiles(t *testing.T) {
	t.Parallel()

	scope := newTempScope(t.TempDir())
	path, err := scope.Create("in-*.webm")
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	// already-removed paths must not panic or error
	scope.Close()
}

func TestTempScopeUniqueNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scope := newTempScope(dir)
	defer scope.Close()

	seen := map[string]bool{}
	for i := 0; i < 16; i++ {
		path, err := scope.Create("in-*.webm")
		require.NoError(t, err)
		require.False(t, seen[path])
		seen[path] = true
		require.Equal(t, dir, filepath.Dir(path))
	}
}
