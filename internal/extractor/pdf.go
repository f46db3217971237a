package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF yields one unit per page with extractable text. Pages that
// fail text extraction count as empty and are skipped, matching the
// treatment of pages with no text layer.
func extractPDF(path string) ([]UnitResult, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	source := filepath.Base(path)
	var results []UnitResult

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			results = append(results, unitSkipped(fmt.Sprintf("page %d: missing page object", pageNum)))
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			results = append(results, unitSkipped(fmt.Sprintf("page %d: %v", pageNum, err)))
			continue
		}
		if strings.TrimSpace(text) == "" {
			results = append(results, unitSkipped(fmt.Sprintf("page %d: no extractable text", pageNum)))
			continue
		}

		results = append(results, unitOK(TextUnit{
			Content: text,
			Source:  source,
			Page:    pageNum,
		}))
	}

	return results, nil
}
