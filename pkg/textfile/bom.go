// Package textfile converts raw file bytes into text. It detects and strips
// leading byte order marks and decodes the remaining bytes through a fixed
// fallback chain; it performs no statistical encoding detection.
package textfile

import "bytes"

// BOM identifies the byte order mark found at the start of a buffer.
type BOM string

const (
	BOMNone    BOM = "none"
	BOMUTF8    BOM = "UTF-8"
	BOMUTF16LE BOM = "UTF-16LE"
	BOMUTF16BE BOM = "UTF-16BE"
	BOMUTF32LE BOM = "UTF-32LE"
	BOMUTF32BE BOM = "UTF-32BE"
)

// All supported BOMs (byte order marks).
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// Len reports the byte length of the mark, zero for BOMNone.
func (b BOM) Len() int {
	switch b {
	case BOMUTF8:
		return 3
	case BOMUTF16LE, BOMUTF16BE:
		return 2
	case BOMUTF32LE, BOMUTF32BE:
		return 4
	default:
		return 0
	}
}

// Found reports whether the value names an actual mark.
func (b BOM) Found() bool {
	return b != BOMNone && b != ""
}

// StripBOM removes the byte order mark prefix from data, if present. The
// UTF-32 marks must be checked before UTF-16 because the UTF-16LE mark is a
// byte-prefix of the UTF-32LE mark; the longest matching prefix wins. At most
// one mark is stripped.
func StripBOM(data []byte) ([]byte, BOM) {
	switch {
	case bytes.HasPrefix(data, bomUTF32BE):
		return data[len(bomUTF32BE):], BOMUTF32BE
	case bytes.HasPrefix(data, bomUTF32LE):
		return data[len(bomUTF32LE):], BOMUTF32LE
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], BOMUTF8
	case bytes.HasPrefix(data, bomUTF16BE):
		return data[len(bomUTF16BE):], BOMUTF16BE
	case bytes.HasPrefix(data, bomUTF16LE):
		return data[len(bomUTF16LE):], BOMUTF16LE
	default:
		return data, BOMNone
	}
}
