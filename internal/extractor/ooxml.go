package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// OOXML containers (docx, pptx) are zip archives of XML parts. The text
// lives in word/document.xml for documents and ppt/slides/slideN.xml for
// presentations. encoding/xml matches on local element names, which keeps
// the structs below namespace-agnostic.

// extractDOCX yields a single unit holding the newline-joined non-empty
// paragraphs of the document. An empty document yields no unit.
func extractDOCX(path string) ([]UnitResult, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer archive.Close()

	data, err := readArchiveFile(&archive.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("reading docx %s: %w", path, err)
	}

	var doc struct {
		Paragraphs []struct {
			Runs []struct {
				Text []string `xml:"t"`
			} `xml:"r"`
		} `xml:"body>p"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing docx %s: %w", path, err)
	}

	var paragraphs []string
	for _, p := range doc.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Text {
				sb.WriteString(t)
			}
		}
		if text := sb.String(); strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	if len(paragraphs) == 0 {
		return []UnitResult{unitSkipped("document has no text")}, nil
	}

	return []UnitResult{unitOK(TextUnit{
		Content: strings.Join(paragraphs, "\n"),
		Source:  filepath.Base(path),
	})}, nil
}

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTX yields one unit per slide, each holding the newline-joined
// text of the slide's text-bearing shapes in shape order. Slides with no
// text are skipped.
func extractPPTX(path string) ([]UnitResult, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening pptx %s: %w", path, err)
	}
	defer archive.Close()

	// Part order inside the archive is arbitrary; slide numbers come from
	// the part names.
	type slidePart struct {
		num  int
		file *zip.File
	}
	var parts []slidePart
	for _, f := range archive.File {
		m := slidePartPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{num: num, file: f})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })

	source := filepath.Base(path)
	var results []UnitResult

	for _, part := range parts {
		rc, err := part.file.Open()
		if err != nil {
			results = append(results, unitSkipped(fmt.Sprintf("slide %d: %v", part.num, err)))
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			results = append(results, unitSkipped(fmt.Sprintf("slide %d: %v", part.num, err)))
			continue
		}

		text, err := slideText(data)
		if err != nil {
			results = append(results, unitSkipped(fmt.Sprintf("slide %d: %v", part.num, err)))
			continue
		}
		if text == "" {
			results = append(results, unitSkipped(fmt.Sprintf("slide %d: no text-bearing shapes", part.num)))
			continue
		}

		results = append(results, unitOK(TextUnit{
			Content: text,
			Source:  source,
			Slide:   part.num,
		}))
	}

	return results, nil
}

// slideText joins the text of a slide's shapes, shapes separated by
// newlines and paragraphs within a shape likewise.
func slideText(data []byte) (string, error) {
	var slide struct {
		Shapes []struct {
			Paragraphs []struct {
				Runs []struct {
					Text string `xml:"t"`
				} `xml:"r"`
			} `xml:"txBody>p"`
		} `xml:"cSld>spTree>sp"`
	}
	if err := xml.Unmarshal(data, &slide); err != nil {
		return "", err
	}

	var shapes []string
	for _, sp := range slide.Shapes {
		var lines []string
		for _, p := range sp.Paragraphs {
			var sb strings.Builder
			for _, r := range p.Runs {
				sb.WriteString(r.Text)
			}
			if line := sb.String(); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			shapes = append(shapes, strings.Join(lines, "\n"))
		}
	}

	return strings.Join(shapes, "\n"), nil
}

func readArchiveFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("archive part %s not found", name)
}
