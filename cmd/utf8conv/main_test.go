package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isseis/go-utf8conv/internal/textenc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func shiftJIS(t *testing.T, text string) []byte {
	t.Helper()
	encoded, err := textenc.EncodeShiftJIS(text)
	require.NoError(t, err)
	return encoded
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_UsageWhenArgumentCountIsWrong(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"a", "b"},
		{"-keep-going"},
	} {
		code, stdout, stderr := runCLI(t, args...)

		assert.Equal(t, 0, code, "args %v", args)
		assert.Equal(t, "Usage: utf8conv [flags] <input_path>\n", stdout, "args %v", args)
		assert.Empty(t, stderr, "args %v", args)
	}
}

func TestRun_UsageDoesNotReadConfig(t *testing.T) {
	code, stdout, _ := runCLI(t, "-config", filepath.Join(tempDir(t), "missing.toml"))

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage:")
}

func TestRun_Help(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-h")

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "-keep-going")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "-encoding", "euc-jp", "dir")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "flag provided but not defined")
}

func TestRun_PathDoesNotExist(t *testing.T) {
	code, stdout, stderr := runCLI(t, filepath.Join(tempDir(t), "missing"))

	assert.Equal(t, 0, code)
	assert.Equal(t, "Path does not exist\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_ConvertsRelativeDirectory(t *testing.T) {
	root := tempDir(t)
	dir := filepath.Join(root, "legacy")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), shiftJIS(t, "こんにちは"), 0o644))
	t.Chdir(root)

	code, stdout, stderr := runCLI(t, "legacy")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t,
		"[  0] Already UTF-8: "+filepath.Join(dir, "a.txt")+"\n"+
			"[  1] Converted: "+filepath.Join(dir, "b.txt")+"\n",
		stdout)

	content, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", string(content))
}

func TestRun_AbortsOnUndecodableFile(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{0xff, 0xfe, 0xfd}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), shiftJIS(t, "未変換"), 0o644))

	code, stdout, stderr := runCLI(t, "-quiet", dir)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: failed to convert "+filepath.Join(dir, "a.bin"))
	assert.Contains(t, stderr, "invalid Shift_JIS byte sequence at offset 0")

	content, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, shiftJIS(t, "未変換"), content)
}

func TestRun_KeepGoingFromConfigFile(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{0xff}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), shiftJIS(t, "変換"), 0o644))
	cfgPath := filepath.Join(tempDir(t), "utf8conv.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keep_going = true\nlog_level = \"error\"\n"), 0o600))

	code, stdout, _ := runCLI(t, "-config", cfgPath, "-quiet", dir)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "[  0] Failed: "+filepath.Join(dir, "a.bin"))
	assert.Contains(t, stdout, "[  1] Converted: "+filepath.Join(dir, "b.txt"))
	assert.Contains(t, stdout, "Summary: 1 converted, 0 already UTF-8, 1 failed")
}

func TestRun_FlagOverridesConfigFile(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{0xff}, 0o644))
	cfgPath := filepath.Join(tempDir(t), "utf8conv.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keep_going = true\n"), 0o600))

	code, stdout, _ := runCLI(t, "-config", cfgPath, "-keep-going=false", "-quiet", dir)

	assert.Equal(t, 1, code)
	assert.NotContains(t, stdout, "Summary:")
}

func TestRun_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(tempDir(t), "bad.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`target_encoding = "utf-16"`), 0o600))

	code, _, stderr := runCLI(t, "-config", cfgPath, tempDir(t))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid config")
}

func TestRun_InvalidLogLevelFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "-log-level", "loud", tempDir(t))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid log level")
}

func TestRun_NotADirectory(t *testing.T) {
	file := filepath.Join(tempDir(t), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	code, _, stderr := runCLI(t, "-quiet", file)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not a directory")
}

func TestRun_WritesRunLog(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), shiftJIS(t, "ログ"), 0o644))
	logDir := filepath.Join(tempDir(t), "logs")

	code, _, stderr := runCLI(t, "-log-dir", logDir, "-quiet", dir)

	require.Equal(t, 0, code, stderr)
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"File converted"`))
}

func TestRun_ColorAlways(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("ok"), 0o644))

	code, stdout, _ := runCLI(t, "-color", "always", "-quiet", dir)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "\033[90mAlready UTF-8\033[0m")
}
