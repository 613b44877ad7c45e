package textenc

import (
	"errors"
	"fmt"

	"github.com/saintfish/chardet"
)

// ErrInvalidShiftJIS indicates that input bytes are valid neither as UTF-8
// nor as Shift-JIS.
var ErrInvalidShiftJIS = errors.New("invalid " + LegacyEncodingName + " byte sequence")

// DecodeError reports where Shift-JIS decoding failed.
type DecodeError struct {
	// Offset is the byte position of the first invalid sequence.
	Offset int
	// Byte is the value found at Offset.
	Byte byte
	// Guess is the charset the detector considers most likely for the whole
	// input, empty when the detector has no answer. It is a diagnostic only.
	Guess string
	// Confidence is the detector's confidence in Guess, 0-100.
	Confidence int
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%v at offset %d (0x%02x)", ErrInvalidShiftJIS, e.Offset, e.Byte)
	if e.Guess != "" {
		msg += fmt.Sprintf("; content looks like %s (confidence %d%%)", e.Guess, e.Confidence)
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidShiftJIS).
func (e *DecodeError) Unwrap() error {
	return ErrInvalidShiftJIS
}

func newDecodeError(data []byte, offset int) *DecodeError {
	if offset < 0 || offset >= len(data) {
		// The decoder produced a replacement rune we could not place; blame the end.
		offset = max(len(data)-1, 0)
	}

	e := &DecodeError{Offset: offset}
	if len(data) > 0 {
		e.Byte = data[offset]
	}

	if result, err := chardet.NewTextDetector().DetectBest(data); err == nil && result != nil {
		e.Guess = result.Charset
		e.Confidence = result.Confidence
	}

	return e
}
