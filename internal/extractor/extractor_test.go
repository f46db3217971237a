package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestExtract_PlainText(t *testing.T) {
	path := writeFile(t, "notes.txt", "The sky is blue.\n")

	units, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	u := units[0]
	if u.Content != "The sky is blue.\n" {
		t.Errorf("unexpected content: %q", u.Content)
	}
	if u.Source != "notes.txt" {
		t.Errorf("expected source notes.txt, got %q", u.Source)
	}
	if u.Page != 0 || u.Slide != 0 {
		t.Errorf("file-level unit should have no locator, got page=%d slide=%d", u.Page, u.Slide)
	}
}

func TestExtract_EmptyTextSkipped(t *testing.T) {
	path := writeFile(t, "empty.txt", "   \n\t\n")

	results, err := ExtractResults(path)
	if err != nil {
		t.Fatalf("ExtractResults: %v", err)
	}
	if len(results) != 1 || !results[0].Skipped {
		t.Fatalf("expected a single skipped result, got %+v", results)
	}
	if units := Units(results); len(units) != 0 {
		t.Errorf("expected no units, got %d", len(units))
	}
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExtract_LegacyDoc(t *testing.T) {
	path := writeFile(t, "old.doc", "binary gunk")

	_, err := Extract(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), ".docx") {
		t.Errorf("error should tell the caller to convert: %v", err)
	}
}

func TestExtract_LegacyXls(t *testing.T) {
	path := writeFile(t, "old.xls", "binary gunk")

	_, err := Extract(path)
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}
}

func TestExtract_UnknownExtensionFallsBackToText(t *testing.T) {
	path := writeFile(t, "server.log", "line one\nline two\n")

	units, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Source != "server.log" {
		t.Errorf("expected source server.log, got %q", units[0].Source)
	}
}

func TestExtract_InvalidUTF8Replaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.txt")
	if err := os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9, '\n'}, 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	units, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if !strings.Contains(units[0].Content, "caf") {
		t.Errorf("decodable bytes should survive, got %q", units[0].Content)
	}
}

// writePDF builds a minimal three-page PDF where only the second page
// carries a text content stream.
func writePDF(t *testing.T, name string) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	add := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	add("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	add("2 0 obj\n<< /Type /Pages /Kids [3 0 R 4 0 R 5 0 R] /Count 3 >>\nendobj\n")
	add("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n")
	add("4 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 6 0 R >>\nendobj\n")
	add("5 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n")
	stream := "BT /F1 12 Tf 72 720 Td (The sky is blue.) Tj ET"
	add(fmt.Sprintf("6 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))
	add("7 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefPos)

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestExtract_PDFPages(t *testing.T) {
	path := writePDF(t, "report.pdf")

	results, err := ExtractResults(path)
	if err != nil {
		t.Fatalf("ExtractResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected one result per page, got %d", len(results))
	}

	units := Units(results)
	if len(units) != 1 {
		t.Fatalf("only the page with text should yield a unit, got %d (%+v)", len(units), results)
	}
	u := units[0]
	if u.Page != 2 {
		t.Errorf("expected page 2, got %d", u.Page)
	}
	if !strings.Contains(u.Content, "The sky is blue.") {
		t.Errorf("unexpected content: %q", u.Content)
	}
	if u.Source != "report.pdf" {
		t.Errorf("expected source report.pdf, got %q", u.Source)
	}

	var skips int
	for _, r := range results {
		if r.Skipped {
			skips++
		}
	}
	if skips != 2 {
		t.Errorf("the empty pages should be skipped with reasons, got %d skips", skips)
	}
}

func TestExtract_MalformedPDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", "this is not a pdf")

	if _, err := Extract(path); err == nil {
		t.Fatal("expected an error for a malformed pdf")
	}
}
