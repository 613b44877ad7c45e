package safefileio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// MaxFileSize is the maximum allowed file size for SafeReadFile (128 MB)
const MaxFileSize = 128 * 1024 * 1024

// FileSystem abstracts the two operations the converter performs on a file.
type FileSystem interface {
	// ReadFile returns the full content of a regular, non-symlink file.
	ReadFile(path string) ([]byte, error)
	// ReplaceFile atomically replaces the content of an existing regular file.
	ReplaceFile(path string, content []byte) error
}

type osFS struct{}

// NewFileSystem returns the FileSystem backed by the local disk.
func NewFileSystem() FileSystem {
	return osFS{}
}

func (osFS) ReadFile(path string) ([]byte, error) {
	return SafeReadFile(path)
}

func (osFS) ReplaceFile(path string, content []byte) error {
	return SafeReplaceFile(path, content)
}

// Indirections replaced by tests to simulate failures mid-replacement.
var (
	createTemp = os.CreateTemp
	renameFile = os.Rename
	chownFile  = (*os.File).Chown
)

// SafeReadFile reads a file after checking that it is a regular file and not
// a symlink. It uses O_NOFOLLOW and validates the opened descriptor, so the
// checks apply to the file actually read. Content larger than MaxFileSize is
// rejected with ErrFileTooLarge.
func SafeReadFile(filePath string) ([]byte, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and O_NOFOLLOW prevents symlink traversal
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("error closing file", slog.String("path", absPath), slog.Any("error", closeErr))
		}
	}()

	return readFileContent(file, absPath)
}

// readFileContent reads and validates the content of an already opened file
func readFileContent(file *os.File, filePath string) ([]byte, error) {
	fileInfo, err := validateFile(file, filePath)
	if err != nil {
		return nil, err
	}

	if fileInfo.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, filePath, fileInfo.Size())
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	// The file may have grown after Stat.
	if int64(len(content)) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, filePath)
	}

	return content, nil
}

// validateFile checks through the descriptor that the file is a regular file
func validateFile(file *os.File, filePath string) (os.FileInfo, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, filePath)
	}

	return fileInfo, nil
}

// SafeReplaceFile replaces the content of an existing regular file.
//
// The new content is written to a temporary file in the same directory,
// flushed to disk and renamed over the original, so readers see either the
// old or the new content and an interrupted run never leaves a truncated
// file. The original permission bits are kept, and so are the owner and group
// when the process may set them. On failure the temporary file is removed and
// the original is untouched.
//
// The result is a new inode: hard links to the old file keep the old content,
// and extended attributes and ACLs are not copied. The directory holding the
// file must be writable.
func SafeReplaceFile(filePath string, content []byte) (err error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	fi, err := os.Lstat(absPath)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, absPath)
	}

	dir, base := filepath.Split(absPath)
	tmp, err := createTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err == nil {
			return
		}
		// Close may already have happened; the second close error is irrelevant.
		_ = tmp.Close()
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove temporary file", slog.String("path", tmpPath), slog.Any("error", removeErr))
		}
	}()

	if err = preserveOwner(tmp, fi); err != nil {
		return fmt.Errorf("failed to set owner on %s: %w", tmpPath, err)
	}
	if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write to %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = renameFile(tmpPath, absPath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", absPath, err)
	}

	return nil
}

// preserveOwner gives tmp the uid and gid recorded in fi. A permission error
// is not a failure: an unprivileged caller can only keep its own ownership.
func preserveOwner(tmp *os.File, fi os.FileInfo) error {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	err := chownFile(tmp, int(st.Uid), int(st.Gid))
	if err == nil || errors.Is(err, os.ErrPermission) {
		return nil
	}
	return err
}
