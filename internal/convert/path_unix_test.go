//go:build unix

package convert

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRegularFiles_ExcludesNamedPipe(t *testing.T) {
	dir := tempDir(t)
	regular := writeFile(t, dir, "a.txt", []byte("a"))
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "pipe"), 0o600))

	files, err := ListRegularFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{regular}, files)
}
