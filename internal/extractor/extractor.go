// Package extractor converts raw files into ordered text units with
// provenance metadata, dispatching on file extension. PDFs yield one unit
// per page, presentations one per slide, everything else one unit per file.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extract converts the file at path into its retrievable text units.
// Unknown extensions fall back to plain-text extraction; if that fails the
// file yields zero units rather than an error.
func Extract(path string) ([]TextUnit, error) {
	results, err := ExtractResults(path)
	if err != nil {
		return nil, err
	}
	return Units(results), nil
}

// ExtractResults is Extract with per-unit skip reasons preserved.
func ExtractResults(path string) ([]UnitResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return extractPDF(path)
	case ".pptx", ".ppt":
		return extractPPTX(path)
	case ".docx":
		return extractDOCX(path)
	case ".doc":
		return nil, fmt.Errorf("%w: legacy .doc is not supported, convert to .docx first", ErrUnsupportedFormat)
	case ".txt":
		return extractText(path)
	case ".csv":
		return extractCSV(path)
	case ".xlsx":
		return extractXLSX(path)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls needs conversion to .xlsx", ErrDependencyMissing)
	default:
		results, err := extractText(path)
		if err != nil {
			// Unknown formats are best-effort only.
			return nil, nil
		}
		return results, nil
	}
}

// extractText reads the whole file as one unit. Invalid UTF-8 byte
// sequences are replaced rather than treated as fatal.
func extractText(path string) ([]UnitResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content := strings.ToValidUTF8(string(data), "�")
	if strings.TrimSpace(content) == "" {
		return []UnitResult{unitSkipped("file is empty")}, nil
	}

	return []UnitResult{unitOK(TextUnit{
		Content: content,
		Source:  filepath.Base(path),
	})}, nil
}
