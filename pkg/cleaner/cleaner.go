// Package cleaner removes problematic characters from decoded text and
// builds the change report that names, counts, and locates what was removed.
// It performs no I/O and no logging.
package cleaner

import (
	"strings"

	"github.com/uneff-io/uneff/pkg/mapping"
)

const (
	// DefaultSampleLimit caps how many locations are collected per character.
	DefaultSampleLimit = 10
	// DefaultContextWindow is how many scalar values of surrounding text are
	// kept on each side of an occurrence.
	DefaultContextWindow = 15
)

// Options controls location sampling during cleaning. Zero values select the
// defaults.
type Options struct {
	CollectLocations bool
	SampleLimit      int
	ContextWindow    int
}

// Location pinpoints one occurrence of a removed character. Line and Column
// are 1-based; Column counts scalar values within the line, not bytes.
// Context is the raw surrounding text, matched character included.
type Location struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Context string `json:"context"`
}

// Removal aggregates everything removed under one table entry. Locations
// holds at most the sample limit; Remaining is how many further occurrences
// existed beyond that cap.
type Removal struct {
	Char      rune       `json:"char"`
	Name      string     `json:"name"`
	Count     int        `json:"count"`
	Locations []Location `json:"locations,omitempty"`
	Remaining int        `json:"remaining,omitempty"`
}

// ChangeReport describes what one clean pass changed.
type ChangeReport struct {
	Removals   []Removal `json:"removals"`
	LeadingBOM bool      `json:"leading_bom"`
}

// HasChanges reports whether cleaning altered the text at all.
func (r ChangeReport) HasChanges() bool {
	return r.LeadingBOM || len(r.Removals) > 0
}

// CharCounts returns removal counts keyed by character name.
func (r ChangeReport) CharCounts() map[string]int {
	counts := make(map[string]int, len(r.Removals))
	for _, rem := range r.Removals {
		counts[rem.Name] += rem.Count
	}
	return counts
}

// Clean removes every active entry's character from text and reports what
// was removed. A single leading U+FEFF is stripped first and reported
// separately from mid-text occurrences, which the table entry handles.
//
// Entries are applied in table order against the progressively cleaned text,
// so when two entries name the same character only the first records a
// removal. Locations and remaining counts are computed against the text as
// it stood before any character removal.
func Clean(text string, set mapping.Set, opts Options) (string, ChangeReport) {
	report := ChangeReport{Removals: make([]Removal, 0)}

	if strings.HasPrefix(text, "\ufeff") {
		text = strings.TrimPrefix(text, "\ufeff")
		report.LeadingBOM = true
	}

	sampleLimit := opts.SampleLimit
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	contextWindow := opts.ContextWindow
	if contextWindow <= 0 {
		contextWindow = DefaultContextWindow
	}

	reference := text
	cleaned := text
	for _, e := range set {
		if !e.Remove {
			continue
		}
		count := strings.Count(cleaned, string(e.Char))
		if count == 0 {
			continue
		}
		cleaned = strings.ReplaceAll(cleaned, string(e.Char), "")

		removal := Removal{Char: e.Char, Name: e.Name, Count: count}
		if opts.CollectLocations {
			removal.Locations, removal.Remaining = sampleLocations(reference, e.Char, sampleLimit, contextWindow)
		}
		report.Removals = append(report.Removals, removal)
	}

	return cleaned, report
}
