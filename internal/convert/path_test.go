package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInputDir_Absolute(t *testing.T) {
	dir := tempDir(t)

	got, err := ResolveInputDir(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveInputDir_Relative(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o755))
	t.Chdir(dir)

	got, err := ResolveInputDir("docs")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs"), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestResolveInputDir_Missing(t *testing.T) {
	_, err := ResolveInputDir(filepath.Join(tempDir(t), "missing"))

	assert.ErrorIs(t, err, ErrPathNotExist)
}

func TestListRegularFiles_SortedAndTopLevelOnly(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, dir, "c.txt", []byte("c"))
	writeFile(t, dir, "a.txt", []byte("a"))
	writeFile(t, dir, "B.txt", []byte("b"))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "nested.txt", []byte("n"))

	files, err := ListRegularFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "B.txt"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "c.txt"),
	}, files)
}

func TestListRegularFiles_IncludesSymlinkToFile(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, tempDir(t), "target.txt", []byte("t"))
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	files, err := ListRegularFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{link}, files)
}

func TestListRegularFiles_DropsSymlinkToNonFile(t *testing.T) {
	dir := tempDir(t)
	regular := writeFile(t, dir, "real.txt", []byte("r"))
	require.NoError(t, os.Symlink(tempDir(t), filepath.Join(dir, "link-to-dir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken-link")))

	files, err := ListRegularFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{regular}, files)
}

func TestListRegularFiles_Empty(t *testing.T) {
	files, err := ListRegularFiles(tempDir(t))

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListRegularFiles_NotADirectory(t *testing.T) {
	file := writeFile(t, tempDir(t), "plain.txt", []byte("x"))

	_, err := ListRegularFiles(file)

	assert.ErrorIs(t, err, ErrNotDirectory)
}
