package extractor

import "errors"

// Extraction failure categories. Per-unit failures inside a file never use
// these: a page or slide that cannot be read is skipped, not fatal.
var (
	// ErrNotFound reports that the input file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedFormat reports a format that has no extractor at all.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDependencyMissing reports a format whose parser is not available
	// in this build and needs an external conversion step.
	ErrDependencyMissing = errors.New("parser dependency missing")
)

// TextUnit is one retrievable chunk of extracted text with provenance.
// A unit is scoped to a page, a slide, or the whole file; Page and Slide
// are 1-based and mutually exclusive, both zero for file-level units.
type TextUnit struct {
	Content string
	Source  string // basename of the originating file
	Page    int
	Slide   int
	DocType string // optional format hint for display, e.g. ".csv"
}

// UnitResult is the outcome of extracting one candidate unit. A skipped
// unit carries the reason instead of content, so skip-vs-fail is an
// explicit branch rather than a swallowed error.
type UnitResult struct {
	Unit    TextUnit
	Skipped bool
	Reason  string
}

func unitOK(u TextUnit) UnitResult {
	return UnitResult{Unit: u}
}

func unitSkipped(reason string) UnitResult {
	return UnitResult{Skipped: true, Reason: reason}
}

// Units filters results down to the successfully extracted text units.
func Units(results []UnitResult) []TextUnit {
	var units []TextUnit
	for _, r := range results {
		if !r.Skipped {
			units = append(units, r.Unit)
		}
	}
	return units
}
