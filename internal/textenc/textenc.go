// Package textenc provides the byte-level encoding checks used by the
// converter: a UTF-8 validity probe and a strict Shift-JIS decoder.
//
// The probe is not a charset detector. Input that fails the probe is assumed
// to be Shift-JIS; input that passes is left alone even if it was meant to be
// read in some other encoding.
package textenc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// LegacyEncodingName is the name of the fixed source encoding.
const LegacyEncodingName = "Shift_JIS"

// shiftJISMaxRuneLen is the longest UTF-8 sequence a single Shift-JIS
// character decodes to. Every mapped character lies in the BMP.
const shiftJISMaxRuneLen = 3

// IsUTF8 reports whether data is a valid UTF-8 byte sequence.
// Empty input and pure ASCII are valid.
func IsUTF8(data []byte) bool {
	return utf8.Valid(data)
}

// DecodeShiftJIS decodes data from Shift-JIS and returns the UTF-8 bytes.
//
// Only ASCII, half-width katakana and the assigned rows of JIS X 0208 are
// accepted; the lone byte 0x80 and the Windows-31J extension rows (NEC
// specials, IBM extensions, user-defined area) are invalid.
//
// The x/text decoder substitutes U+FFFD for byte sequences it cannot map.
// Shift-JIS has no code point for U+FFFD, so any replacement character in the
// output also marks invalid input. Either case is reported as a *DecodeError
// at the earliest offending offset. Line endings and all other bytes are
// carried through unchanged.
func DecodeShiftJIS(data []byte) ([]byte, error) {
	invalid := firstNonStandard(data)

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", LegacyEncodingName, err)
	}

	if bytes.ContainsRune(decoded, utf8.RuneError) {
		if offset := locateInvalid(data); offset >= 0 && (invalid < 0 || offset < invalid) {
			invalid = offset
		}
	}

	if invalid >= 0 {
		return nil, newDecodeError(data, invalid)
	}
	return decoded, nil
}

// EncodeShiftJIS encodes UTF-8 text into Shift-JIS. It is the inverse of
// DecodeShiftJIS for text made of ASCII, half-width katakana and JIS X 0208
// characters; other characters may land in extension rows that
// DecodeShiftJIS rejects. The converter never encodes; this is the fixture
// helper for tests of the packages that decode.
func EncodeShiftJIS(text string) ([]byte, error) {
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", LegacyEncodingName, err)
	}
	return encoded, nil
}

// locateInvalid returns the byte offset of the first sequence in src that
// does not decode as Shift-JIS, or -1 if there is none.
//
// The destination buffer holds at most one replacement rune, so whenever a
// replacement rune is produced it is the only rune of that step and pos is
// exactly where the offending sequence starts.
func locateInvalid(src []byte) int {
	decoder := japanese.ShiftJIS.NewDecoder()
	var dst [shiftJISMaxRuneLen]byte

	for pos := 0; pos < len(src); {
		nDst, nSrc, err := decoder.Transform(dst[:], src[pos:], true)
		if bytes.ContainsRune(dst[:nDst], utf8.RuneError) {
			return pos
		}
		if nSrc == 0 || (err != nil && err != transform.ErrShortDst) {
			return pos
		}
		pos += nSrc
	}

	return -1
}
