// Package report renders clean results for people and for machines. The
// human-readable form is what the CLI prints after a run; the JSON form is
// the same result marshalled with stable field names.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uneff-io/uneff/pkg/cleaner"
	"github.com/uneff-io/uneff/pkg/mapping"
	"github.com/uneff-io/uneff/pkg/pipeline"
)

// Marker stands in for removed characters inside context snippets, giving
// invisible characters a visible footprint.
const Marker = "↯"

// Format renders res as the human-readable report shown after cleaning.
func Format(res *pipeline.CleanResult) string {
	var b strings.Builder

	if res.BOM.Found() {
		fmt.Fprintf(&b, "%s BOM character detected at start. Removed.\n", res.BOM)
	}
	if res.Report.LeadingBOM {
		b.WriteString("BOM character detected at start of decoded text. Removed.\n")
	}
	if !res.BOM.Found() && !res.Report.LeadingBOM {
		b.WriteString("No BOM character detected at start.\n")
	}

	if res.Error != "" {
		fmt.Fprintf(&b, "\nError: %s\n", res.Error)
		return b.String()
	}

	if len(res.Report.Removals) > 0 {
		b.WriteString("\nProblematic characters found and removed:\n")
		for _, rem := range res.Report.Removals {
			fmt.Fprintf(&b, "  - %s: %d instance(s)\n", rem.Name, rem.Count)
		}
	}

	if withLocations(res.Report.Removals) {
		fmt.Fprintf(&b, "\nCharacter locations (showing up to %d instances per character):\n", sampleLimit(res))
		for _, rem := range res.Report.Removals {
			if len(rem.Locations) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n  Character: '%s' [Unicode: %#x]\n", rem.Name, rem.Char)
			for _, loc := range rem.Locations {
				context := strings.ReplaceAll(loc.Context, string(rem.Char), Marker)
				fmt.Fprintf(&b, "    Line %d, Position %d: ...%s...\n", loc.Line, loc.Column, context)
			}
			if rem.Remaining > 0 {
				fmt.Fprintf(&b, "    ... and %d more instances\n", rem.Remaining)
			}
		}
	}

	if res.Changed() {
		if res.OutputPath != "" {
			fmt.Fprintf(&b, "\nCleaned file saved to: %s\n", res.OutputPath)
		}
	} else {
		b.WriteString("No problematic characters found.\n")
		if res.OutputPath != "" {
			fmt.Fprintf(&b, "Clean copy saved to: %s\n", res.OutputPath)
		}
	}

	return b.String()
}

// FormatJSON renders res as indented JSON. The cleaned text travels through
// the output file or stdout, so callers usually clear CleanedText first.
func FormatJSON(res *pipeline.CleanResult) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling clean result: %w", err)
	}
	return data, nil
}

// FormatBatch renders the per-file outcomes and totals of a batch run.
func FormatBatch(res *pipeline.BatchResult) string {
	var b strings.Builder

	for _, fr := range res.Files {
		switch {
		case !fr.Result.Success:
			fmt.Fprintf(&b, "  failed   %s: %s\n", fr.Path, fr.Result.Error)
		case fr.Result.Changed():
			fmt.Fprintf(&b, "  cleaned  %s (%s)\n", fr.Path, changeSummary(fr.Result))
		default:
			fmt.Fprintf(&b, "  clean    %s\n", fr.Path)
		}
	}

	fmt.Fprintf(&b, "\n%d files processed: %d changed, %d already clean, %d failed\n",
		len(res.Files), res.Changed, res.Cleaned-res.Changed, res.Failed)

	return b.String()
}

// FormatMappings renders a character table the way `uneff mappings` lists it.
func FormatMappings(set mapping.Set) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d mapping entries:\n", len(set))
	for _, e := range set {
		flag := "remove"
		if !e.Remove {
			flag = "keep"
		}
		fmt.Fprintf(&b, "  %-10s  %-28s  %s\n", mapping.FormatEscape(e.Char), e.Name, flag)
	}

	return b.String()
}

func withLocations(removals []cleaner.Removal) bool {
	for _, rem := range removals {
		if len(rem.Locations) > 0 {
			return true
		}
	}
	return false
}

func sampleLimit(res *pipeline.CleanResult) int {
	if res.SampleLimit > 0 {
		return res.SampleLimit
	}
	return cleaner.DefaultSampleLimit
}

func changeSummary(res *pipeline.CleanResult) string {
	parts := make([]string, 0, 2)
	if res.BOMRemoved {
		parts = append(parts, "BOM removed")
	}
	total := 0
	for _, rem := range res.Report.Removals {
		total += rem.Count
	}
	if total > 0 {
		parts = append(parts, fmt.Sprintf("%d character(s) removed", total))
	}
	return strings.Join(parts, ", ")
}
