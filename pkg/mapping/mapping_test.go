package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	set := Defaults()

	assert.Len(t, set, 28)
	assert.Equal(t, Entry{Char: '\ufffd', Name: "Replacement Character", Remove: true}, set[0])
	assert.Equal(t, Entry{Char: '\ufeff', Name: "BOM (in middle of file)", Remove: true}, set[len(set)-1])
	for _, e := range set {
		assert.True(t, e.Remove, "default entry %q must be active", e.Name)
	}

	// Mutating the returned copy must not leak into later calls.
	set[0].Name = "changed"
	assert.Equal(t, "Replacement Character", Defaults()[0].Name)
}

func TestFallback(t *testing.T) {
	set := Fallback()

	require.Len(t, set, 2)
	assert.Equal(t, '\ufffd', set[0].Char)
	assert.Equal(t, '\ufeff', set[1].Char)
	assert.Equal(t, set, set.Active())
}

func TestParseEscape(t *testing.T) {
	tests := []struct {
		name     string
		escape   string
		expected rune
		wantErr  bool
	}{
		{name: "bmp escape", escape: `\ufffd`, expected: '\ufffd'},
		{name: "zero width space", escape: `\u200b`, expected: '\u200b'},
		{name: "null", escape: `\u0000`, expected: 0},
		{name: "uppercase hex digits", escape: `\u200B`, expected: '\u200b'},
		{name: "supplementary plane", escape: `\U0001f600`, expected: '\U0001f600'},
		{name: "bmp in long form", escape: `\U0000feff`, expected: '\ufeff'},
		{name: "surrogate half", escape: `\ud800`, wantErr: true},
		{name: "beyond max rune", escape: `\U00110000`, wantErr: true},
		{name: "short digits", escape: `\u12`, wantErr: true},
		{name: "long form with wrong width", escape: `\U1f600`, wantErr: true},
		{name: "bad hex", escape: `\uzzzz`, wantErr: true},
		{name: "no prefix", escape: `feff`, wantErr: true},
		{name: "empty", escape: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := ParseEscape(tt.escape)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ch)
		})
	}
}

func TestFormatEscape(t *testing.T) {
	assert.Equal(t, `\u200b`, FormatEscape('\u200b'))
	assert.Equal(t, `\ufeff`, FormatEscape('\ufeff'))
	assert.Equal(t, `\u0000`, FormatEscape(0))
	assert.Equal(t, `\U0001f600`, FormatEscape('\U0001f600'))

	// Round trip over the whole default table.
	for _, e := range Defaults() {
		ch, err := ParseEscape(FormatEscape(e.Char))
		require.NoError(t, err)
		assert.Equal(t, e.Char, ch)
	}
}

func TestLoadCreatesDefaultTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uneff_mappings.csv")
	store := NewStore(zerolog.Nop())

	set := store.Load(path, true)

	assert.Equal(t, Defaults(), set)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 29)
	assert.Equal(t, "Character,Unicode,Name,Remove", lines[0])
	assert.Contains(t, lines[1], `\ufffd`)
	assert.Contains(t, lines[1], "Replacement Character")
}

func TestLoadCreatesMinimalTableQuietly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uneff_mappings.csv")
	store := NewStore(zerolog.Nop())

	set := store.Load(path, false)

	assert.Equal(t, Fallback(), set)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Character,Unicode,Name,Remove", lines[0])
}

func TestLoadSkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.csv")
	content := strings.Join([]string{
		"Character,Unicode,Name,Remove",
		`x,\u200b,Zero Width Space,True`,
		`y,\u200c`, // fewer than four fields
		`z,not-an-escape,Broken,True`,
		`w,also-bad,Broken Inactive,False`,
		`v,\u2029,Paragraph Separator,False`,
		`u,\ufeff,BOM (in middle of file),TRUE`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := NewStore(zerolog.Nop())
	set := store.Load(path, true)

	expected := Set{
		{Char: '\u200b', Name: "Zero Width Space", Remove: true},
		{Char: '\u2029', Name: "Paragraph Separator", Remove: false},
		{Char: '\ufeff', Name: "BOM (in middle of file)", Remove: true},
	}
	assert.Equal(t, expected, set)

	active := set.Active()
	require.Len(t, active, 2)
	assert.Equal(t, '\u200b', active[0].Char)
	assert.Equal(t, '\ufeff', active[1].Char)
}

func TestLoadFirstRowIsAlwaysHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.csv")
	content := strings.Join([]string{
		`a,\u200b,Zero Width Space,True`,
		`b,\u200c,Zero Width Non-Joiner,True`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := NewStore(zerolog.Nop())
	set := store.Load(path, true)

	// The first data row is consumed as the header.
	require.Len(t, set, 1)
	assert.Equal(t, '\u200c', set[0].Char)
}

func TestLoadEmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.csv")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))

	store := NewStore(zerolog.Nop())
	set := store.Load(path, true)

	assert.Equal(t, Fallback(), set)
}

func TestLoadHeaderOnlyFileIsEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.csv")
	require.NoError(t, os.WriteFile(path, []byte("Character,Unicode,Name,Remove\n"), 0644))

	store := NewStore(zerolog.Nop())
	set := store.Load(path, true)

	// A present but entry-less table means "remove nothing", not fallback.
	assert.Empty(t, set)
}

func TestLoadUnreadablePathFallsBack(t *testing.T) {
	// A directory passes the existence check but cannot be read as CSV.
	store := NewStore(zerolog.Nop())
	set := store.Load(t.TempDir(), true)

	assert.Equal(t, Fallback(), set)
}

func TestLoadRemoveFlagParsing(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		active bool
	}{
		{name: "lowercase true", flag: "true", active: true},
		{name: "capitalized true", flag: "True", active: true},
		{name: "uppercase true", flag: "TRUE", active: true},
		{name: "padded true", flag: "  true ", active: true},
		{name: "false", flag: "False", active: false},
		{name: "yes is not true", flag: "yes", active: false},
		{name: "one is not true", flag: "1", active: false},
		{name: "empty", flag: "", active: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mappings.csv")
			content := "Character,Unicode,Name,Remove\n" +
				`x,\u200b,Zero Width Space,` + `"` + tt.flag + `"` + "\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			store := NewStore(zerolog.Nop())
			set := store.Load(path, true)

			require.Len(t, set, 1)
			assert.Equal(t, tt.active, set[0].Remove)
			if tt.active {
				assert.Len(t, set.Active(), 1)
			} else {
				assert.Empty(t, set.Active())
			}
		})
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.csv")
	table := Set{
		{Char: '\u200b', Name: "Zero Width Space", Remove: true},
		{Char: '\u2028', Name: "Line Separator", Remove: false},
		{Char: '\U0001f600', Name: "Grinning Face", Remove: true},
	}

	require.NoError(t, WriteTable(path, table))

	store := NewStore(zerolog.Nop())
	assert.Equal(t, table, store.Load(path, false))
}

func TestWriteTableQuotesCommaInName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.csv")
	table := Set{
		{Char: '\ufeff', Name: "BOM (in middle of file), leading stripped elsewhere", Remove: true},
	}

	require.NoError(t, WriteTable(path, table))

	store := NewStore(zerolog.Nop())
	set := store.Load(path, false)
	require.Len(t, set, 1)
	assert.Equal(t, table[0].Name, set[0].Name)
}
