package cleaner

import "strings"

// sampleLocations walks reference line by line and collects up to limit
// occurrences of ch. The second return value is how many occurrences beyond
// the cap exist in the whole reference text, zero when sampling was not
// capped.
func sampleLocations(reference string, ch rune, limit, window int) ([]Location, int) {
	locations := make([]Location, 0, limit)

	for lineIdx, line := range strings.Split(reference, "\n") {
		if !strings.ContainsRune(line, ch) {
			continue
		}
		runes := []rune(line)
		for col, r := range runes {
			if r != ch {
				continue
			}
			locations = append(locations, Location{
				Line:    lineIdx + 1,
				Column:  col + 1,
				Context: contextSlice(runes, col, window),
			})
			if len(locations) == limit {
				return locations, strings.Count(reference, string(ch)) - limit
			}
		}
	}

	return locations, 0
}

// contextSlice returns the window scalar values on each side of idx, clamped
// to the line. The occurrence itself stays in the slice; presentation code
// decides how to mark it.
func contextSlice(runes []rune, idx, window int) string {
	start := idx - window
	if start < 0 {
		start = 0
	}
	end := idx + window + 1
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
