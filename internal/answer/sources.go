package answer

import (
	"fmt"
	"strings"

	"github.com/ragchat/ragchat/internal/vectordb"
)

// RenderSources renders retrieved entries as display strings in result
// order: "file Page n" for page-scoped entries, "file Slide n" for
// slide-scoped ones, the bare filename otherwise. Exact duplicates
// collapse to the first occurrence.
func RenderSources(results []vectordb.Result) []string {
	seen := make(map[string]struct{}, len(results))
	sources := []string{}

	for _, r := range results {
		var loc string
		switch {
		case r.Page > 0:
			loc = fmt.Sprintf("Page %d", r.Page)
		case r.Slide > 0:
			loc = fmt.Sprintf("Slide %d", r.Slide)
		}

		ref := strings.TrimSpace(r.Source + " " + loc)
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		sources = append(sources, ref)
	}

	return sources
}
