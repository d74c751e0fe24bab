package textfile

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		expected string
		encoding Encoding
	}{
		{
			name:     "plain ascii",
			in:       []byte("hello world"),
			expected: "hello world",
			encoding: EncodingUTF8,
		},
		{
			name:     "multibyte utf-8",
			in:       []byte("héllo ↯ 世界"),
			expected: "héllo ↯ 世界",
			encoding: EncodingUTF8,
		},
		{
			name:     "empty input",
			in:       []byte{},
			expected: "",
			encoding: EncodingUTF8,
		},
		{
			name:     "invalid byte replaced",
			in:       []byte{'a', 0xFF, 'b'},
			expected: "a�b",
			encoding: EncodingUTF8Replaced,
		},
		{
			name:     "truncated multibyte sequence replaced",
			in:       []byte{'o', 'k', 0xE4, 0xB8},
			expected: "ok�",
			encoding: EncodingUTF8Replaced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc := Decode(tt.in)
			assert.Equal(t, tt.encoding, enc)
			assert.Equal(t, tt.expected, text)
			assert.True(t, utf8.ValidString(text), "decoded text must be valid UTF-8")
		})
	}
}

func TestDecodeNeverFails(t *testing.T) {
	// Every byte value must decode to something; there is no input the
	// chain rejects.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	text, enc := Decode(all)
	assert.NotEmpty(t, text)
	assert.True(t, utf8.ValidString(text))
	assert.True(t, enc == EncodingUTF8Replaced || enc == EncodingLatin1)
}

func TestDecodeLatin1(t *testing.T) {
	in := []byte{'c', 'a', 'f', 0xE9} // "café" in Latin-1
	text := decodeLatin1(in)
	assert.Equal(t, "café", text)

	// Latin-1 maps every byte to the code point of the same value.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	text = decodeLatin1(all)
	runes := []rune(text)
	assert.Len(t, runes, 256)
	for i, r := range runes {
		assert.Equal(t, rune(i), r)
	}
}

func TestEncodingStrict(t *testing.T) {
	assert.True(t, EncodingUTF8.Strict())
	assert.False(t, EncodingUTF8Replaced.Strict())
	assert.False(t, EncodingLatin1.Strict())
}

func TestDecodeKeepsReplacementDistinct(t *testing.T) {
	// A replacement character already present in valid input must come
	// through strict, not be confused with a decode fallback.
	in := []byte("x" + string(rune(0xFFFD)) + "y")
	text, enc := Decode(in)
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, 1, strings.Count(text, "�"))
}
