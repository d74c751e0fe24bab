// Package mapping holds the table of problematic characters that drives
// cleaning: which Unicode scalar values get removed and the names they are
// reported under. Tables persist as small CSV files users can edit by hand;
// a default table is compiled in and written out on first use.
package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// csvHeader is the first row of every persisted table. The Character column
// holds the literal character for human editors; the Unicode escape column is
// authoritative on read.
var csvHeader = []string{"Character", "Unicode", "Name", "Remove"}

// Entry is one row of the character table.
type Entry struct {
	Char   rune   `json:"char"`
	Name   string `json:"name"`
	Remove bool   `json:"remove"`
}

// Set is an ordered character table. Scan order is table order, so when two
// entries name the same character the first active one claims its count.
type Set []Entry

// Active returns the entries whose Remove flag is set, preserving order.
func (s Set) Active() Set {
	active := make(Set, 0, len(s))
	for _, e := range s {
		if e.Remove {
			active = append(active, e)
		}
	}
	return active
}

// Store loads character tables from disk, creating the file on first use.
type Store struct {
	logger zerolog.Logger
}

// NewStore creates a mapping store that logs through the given logger.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "mapping_store").Logger(),
	}
}

// Load reads the character table at path. A missing file is first created,
// with the full default table when createIfMissing is set or a minimal
// two-row table otherwise, then read back like any other file. Load never
// fails: an unreadable or unwritable table degrades to the built-in fallback
// set with a warning.
func (s *Store) Load(path string, createIfMissing bool) Set {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		table := Fallback()
		if createIfMissing {
			table = Defaults()
			s.logger.Info().Str("path", path).Msg("Mappings file not found, creating default table")
		}
		if err := WriteTable(path, table); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to create mappings file, using fallback set")
			return Fallback()
		}
	}

	set, err := s.readTable(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to read mappings file, using fallback set")
		return Fallback()
	}

	s.logger.Info().Int("entries", len(set.Active())).Str("path", path).Msg("Loaded problematic character mappings")
	return set
}

// readTable parses one CSV table. Individual bad rows are skipped; only a
// file-level failure is returned.
func (s *Store) readTable(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mappings file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// The first row is always the header, whatever it says.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("reading mappings header: %w", err)
	}

	set := make(Set, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("Skipping malformed mappings row")
			continue
		}
		if len(record) < 4 {
			continue
		}

		escape := strings.TrimSpace(record[1])
		name := strings.TrimSpace(record[2])
		remove := strings.EqualFold(strings.TrimSpace(record[3]), "true")

		ch, err := ParseEscape(escape)
		if err != nil {
			// Inactive rows skip silently; a bad escape only matters when
			// the row would have removed something.
			if remove {
				s.logger.Warn().Str("escape", escape).Str("name", name).Msg("Skipping unparseable unicode escape")
			}
			continue
		}

		set = append(set, Entry{Char: ch, Name: name, Remove: remove})
	}

	return set, nil
}

// WriteTable persists entries as a CSV table at path, header included.
func WriteTable(path string, entries Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mappings file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing mappings header: %w", err)
	}
	for _, e := range entries {
		row := []string{string(e.Char), FormatEscape(e.Char), e.Name, formatRemove(e.Remove)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing mappings row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing mappings file: %w", err)
	}

	return nil
}

// ParseEscape resolves a \uXXXX or \UXXXXXXXX escape sequence to its
// character. The resolved value must be a single Unicode scalar value, so
// surrogate halves and out-of-range values are rejected.
func ParseEscape(escape string) (rune, error) {
	var digits string
	switch {
	case strings.HasPrefix(escape, `\u`) && len(escape) == 6:
		digits = escape[2:]
	case strings.HasPrefix(escape, `\U`) && len(escape) == 10:
		digits = escape[2:]
	default:
		return 0, fmt.Errorf("unicode escape %q is not in \\uXXXX or \\UXXXXXXXX form", escape)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing unicode escape %q: %w", escape, err)
	}
	ch := rune(v)
	if !utf8.ValidRune(ch) {
		return 0, fmt.Errorf("unicode escape %q is not a scalar value", escape)
	}

	return ch, nil
}

// FormatEscape renders ch in the table's escape form: \uXXXX inside the
// basic plane, \UXXXXXXXX above it.
func FormatEscape(ch rune) string {
	if ch > 0xFFFF {
		return fmt.Sprintf(`\U%08x`, ch)
	}
	return fmt.Sprintf(`\u%04x`, ch)
}

func formatRemove(remove bool) string {
	if remove {
		return "True"
	}
	return "False"
}
