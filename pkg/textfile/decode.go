package textfile

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies which step of the decode fallback chain produced the
// text.
type Encoding string

const (
	// EncodingUTF8 means the bytes were already valid UTF-8.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingUTF8Replaced means invalid sequences were replaced with U+FFFD.
	EncodingUTF8Replaced Encoding = "utf-8-replace"
	// EncodingLatin1 means the total single-byte last resort was used.
	EncodingLatin1 Encoding = "latin-1"
)

// Strict reports whether the text decoded without any substitution.
func (e Encoding) Strict() bool {
	return e == EncodingUTF8
}

// Decode converts raw bytes (after BOM stripping) into text. The chain is
// fixed: strict UTF-8, then UTF-8 with invalid sequences replaced by U+FFFD,
// then Latin-1, which maps every byte to the code point of the same value.
// Decode never fails.
func Decode(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}
	if decoded, err := unicode.UTF8.NewDecoder().Bytes(data); err == nil {
		return string(decoded), EncodingUTF8Replaced
	}
	return decodeLatin1(data), EncodingLatin1
}

// decodeLatin1 widens each byte to its code point. The transform layer can
// report errors, Latin-1 itself cannot, so the manual loop keeps this step
// total either way.
func decodeLatin1(data []byte) string {
	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(decoded)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
