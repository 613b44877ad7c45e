package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/isseis/go-utf8conv/internal/textenc"
	"github.com/stretchr/testify/require"
)

// tempDir returns a temporary directory with symlinks resolved, so that the
// absolute paths printed in status lines are predictable.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func shiftJIS(t *testing.T, text string) []byte {
	t.Helper()
	encoded, err := textenc.EncodeShiftJIS(text)
	require.NoError(t, err)
	return encoded
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return content
}

// binaryContent is invalid both as UTF-8 and as Shift-JIS.
var binaryContent = []byte{0xff, 0xfe, 0x00, 0x01, 0xff}
