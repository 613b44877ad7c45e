// Package convert rewrites the Shift-JIS files of one directory as UTF-8.
//
// A run resolves the input directory, lists its immediate regular files in
// name order, probes each file for UTF-8 validity and replaces the files that
// fail the probe with their Shift-JIS decoding. One status line per file is
// written to the configured output as the batch advances.
//
// By default the first error stops the batch: files before it keep their
// outcome and files after it are neither read nor reported. Options.KeepGoing
// switches to per-file isolation.
package convert
