package convert

import (
	"fmt"
	"log/slog"

	"github.com/isseis/go-utf8conv/internal/safefileio"
	"github.com/isseis/go-utf8conv/internal/textenc"
)

// Outcome is the result of processing one file.
type Outcome int

// Possible outcomes
const (
	// OutcomeAlreadyUTF8 means the file was valid UTF-8 and was not modified.
	OutcomeAlreadyUTF8 Outcome = iota
	// OutcomeConverted means the file was decoded from Shift-JIS and rewritten.
	OutcomeConverted
	// OutcomeFailed means the file could not be processed.
	OutcomeFailed
)

// String returns the label used in status lines.
func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyUTF8:
		return "Already UTF-8"
	case OutcomeConverted:
		return "Converted"
	case OutcomeFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Converter probes and converts single files.
type Converter struct {
	fs     safefileio.FileSystem
	logger *slog.Logger
}

// NewConverter returns a Converter using fs for all file access.
// A nil logger discards log output.
func NewConverter(fs safefileio.FileSystem, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Converter{fs: fs, logger: logger}
}

// ConvertFile leaves a valid UTF-8 file untouched and rewrites any other file
// as the UTF-8 decoding of its Shift-JIS content. A file that is not valid
// Shift-JIS either returns a *textenc.DecodeError and is not modified.
func (c *Converter) ConvertFile(path string) (Outcome, error) {
	content, err := c.fs.ReadFile(path)
	if err != nil {
		return OutcomeFailed, err
	}

	if textenc.IsUTF8(content) {
		c.logger.Debug("File is already UTF-8", "path", path, "size", len(content))
		return OutcomeAlreadyUTF8, nil
	}

	decoded, err := textenc.DecodeShiftJIS(content)
	if err != nil {
		return OutcomeFailed, err
	}

	if err := c.fs.ReplaceFile(path, decoded); err != nil {
		return OutcomeFailed, err
	}

	c.logger.Info("File converted",
		"path", path,
		"from", textenc.LegacyEncodingName,
		"bytes_before", len(content),
		"bytes_after", len(decoded))
	return OutcomeConverted, nil
}
