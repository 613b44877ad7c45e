package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
)

// resolvePath maps a listed path to the file that is read and replaced.
// Replaced by tests.
var resolvePath = filepath.EvalSymlinks

// FileError records which file stopped or failed the batch.
type FileError struct {
	Index int
	Path  string
	Err   error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("failed to convert %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode or I/O error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Summary counts the outcomes of a run.
type Summary struct {
	// Total is the number of files in the listing.
	Total       int
	Converted   int
	AlreadyUTF8 int
	// Failures is only populated with Options.KeepGoing.
	Failures []*FileError
}

// Processed returns how many files received a status line.
func (s *Summary) Processed() int {
	return s.Converted + s.AlreadyUTF8 + len(s.Failures)
}

// Options configures a Runner.
type Options struct {
	// Stdout receives the status lines.
	Stdout io.Writer
	// Stderr receives per-file errors in keep-going mode.
	Stderr io.Writer
	// UseColor colors the status labels.
	UseColor bool
	// KeepGoing continues with the next file after a failure instead of
	// aborting, and prints a summary line at the end.
	KeepGoing bool
	Logger    *slog.Logger
}

// Runner drives one batch over a directory.
type Runner struct {
	converter *Converter
	opts      Options
	logger    *slog.Logger
}

// NewRunner creates a Runner. Nil writers discard output.
func NewRunner(converter *Converter, opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{converter: converter, opts: opts, logger: logger}
}

// convert converts the file path refers to. A listed symlink is resolved
// first so the file is replaced in place of its target and the link is kept.
func (r *Runner) convert(path string) (Outcome, error) {
	target, err := resolvePath(path)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if target != path {
		r.logger.Debug("Symlink resolved", "path", path, "target", target)
	}
	return r.converter.ConvertFile(target)
}

// Run processes every regular file directly inside dir in name order.
//
// Without KeepGoing the first failing file ends the run with a *FileError;
// the returned Summary describes the files handled before it. With KeepGoing
// failures are collected in the Summary and Run only returns an error when
// the directory cannot be listed or ctx is cancelled. Cancellation is checked
// between files, never during a rewrite.
func (r *Runner) Run(ctx context.Context, dir string) (*Summary, error) {
	files, err := ListRegularFiles(dir)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Directory listed", "dir", dir, "files", len(files))

	summary := &Summary{Total: len(files)}
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Batch interrupted", "next_path", path, "processed", summary.Processed())
			return summary, fmt.Errorf("batch interrupted before %s: %w", path, err)
		}

		outcome, err := r.convert(path)
		if err != nil {
			fileErr := &FileError{Index: i, Path: path, Err: err}
			if !r.opts.KeepGoing {
				r.logger.Info("Batch aborted", "path", path, "index", i, "error", err)
				return summary, fileErr
			}

			r.logger.Info("File failed", "path", path, "index", i, "error", err)
			summary.Failures = append(summary.Failures, fileErr)
			writeLine(r.opts.Stdout, FormatStatus(i, OutcomeFailed, path, r.opts.UseColor))
			writeLine(r.opts.Stderr, "Error: "+fileErr.Error())
			continue
		}

		switch outcome {
		case OutcomeConverted:
			summary.Converted++
		case OutcomeAlreadyUTF8:
			summary.AlreadyUTF8++
		}
		writeLine(r.opts.Stdout, FormatStatus(i, outcome, path, r.opts.UseColor))
	}

	if r.opts.KeepGoing {
		writeLine(r.opts.Stdout, FormatSummary(summary))
	}

	r.logger.Info("Batch completed",
		"dir", dir,
		"converted", summary.Converted,
		"already_utf8", summary.AlreadyUTF8,
		"failed", len(summary.Failures))
	return summary, nil
}
