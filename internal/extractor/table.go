package extractor

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Tabular files become a single unit holding the table re-serialized as
// CSV text, so the whole table stays representable as one text block.
// A malformed table yields zero units rather than failing extraction.

func extractCSV(path string) ([]UnitResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return []UnitResult{unitSkipped("open: " + err.Error())}, nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return []UnitResult{unitSkipped("malformed csv: " + err.Error())}, nil
	}

	return tableUnit(rows, filepath.Base(path), ".csv"), nil
}

func extractXLSX(path string) ([]UnitResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return []UnitResult{unitSkipped("malformed workbook: " + err.Error())}, nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []UnitResult{unitSkipped("workbook has no sheets")}, nil
	}

	// Like the csv path, only the first sheet is indexed.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return []UnitResult{unitSkipped("reading sheet: " + err.Error())}, nil
	}

	return tableUnit(rows, filepath.Base(path), ".xlsx"), nil
}

func tableUnit(rows [][]string, source, docType string) []UnitResult {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return []UnitResult{unitSkipped("serializing table: " + err.Error())}
		}
	}
	w.Flush()

	content := sb.String()
	if strings.TrimSpace(content) == "" {
		return []UnitResult{unitSkipped("table is empty")}
	}

	return []UnitResult{unitOK(TextUnit{
		Content: content,
		Source:  source,
		DocType: docType,
	})}
}
