package textenc

// The x/text Shift-JIS decoder follows Windows-31J: it maps 0x80 to U+0080
// and accepts the NEC and IBM extension rows. Strict Shift-JIS only covers
// ASCII, half-width katakana and JIS X 0208, which firstNonStandard enforces
// on the raw bytes before decoding.

// JIS X 0208 rows that carry characters. Rows 9-15 and 85-94 are unassigned
// in the standard and hold vendor extensions in Windows-31J.
const (
	lastSymbolRow = 8
	firstKanjiRow = 16
	lastKanjiRow  = 84
)

// firstNonStandard returns the offset of the first byte sequence in src that
// strict Shift-JIS does not define, or -1 if there is none. Empty cells inside
// an assigned row are left to the decoder, which maps them to U+FFFD.
func firstNonStandard(src []byte) int {
	for i := 0; i < len(src); {
		b := src[i]
		switch {
		case b < 0x80, isHalfWidthKatakana(b):
			i++
		case isLeadByte(b):
			if i+1 >= len(src) || !isTrailByte(src[i+1]) || !isAssignedRow(jisRow(b, src[i+1])) {
				return i
			}
			i += 2
		default:
			return i
		}
	}
	return -1
}

func isHalfWidthKatakana(b byte) bool {
	return 0xa1 <= b && b <= 0xdf
}

// isLeadByte excludes 0xf0-0xfc, which only hold user-defined and IBM
// extension characters.
func isLeadByte(b byte) bool {
	return (0x81 <= b && b <= 0x9f) || (0xe0 <= b && b <= 0xef)
}

func isTrailByte(b byte) bool {
	return (0x40 <= b && b <= 0x7e) || (0x80 <= b && b <= 0xfc)
}

// jisRow returns the 1-based JIS X 0208 row of a double-byte sequence. Each
// lead byte covers two rows; trail bytes from 0x9f on select the second.
func jisRow(lead, trail byte) int {
	pair := int(lead) - 0x81
	if lead >= 0xe0 {
		pair = int(lead) - 0xc1
	}
	row := 2*pair + 1
	if trail >= 0x9f {
		row++
	}
	return row
}

func isAssignedRow(row int) bool {
	return (1 <= row && row <= lastSymbolRow) || (firstKanjiRow <= row && row <= lastKanjiRow)
}
