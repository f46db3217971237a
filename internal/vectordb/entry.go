package vectordb

import (
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ragchat/ragchat/internal/extractor"
)

// Entry is a persisted retrievable record: a text unit plus its embedding,
// as stored. The vector itself lives inside chromem; Entry carries the
// text and provenance copied from the originating unit.
type Entry struct {
	ID      string
	Content string
	Source  string
	Page    int
	Slide   int
	DocType string
	Seq     int // insertion sequence within the store, used for tie-breaks
}

// Result pairs an entry with its similarity to a query vector.
type Result struct {
	Entry
	Similarity float32
}

func metadataFromUnit(u extractor.TextUnit, seq int) map[string]string {
	md := map[string]string{
		"source": u.Source,
		"seq":    strconv.Itoa(seq),
	}
	if u.Page > 0 {
		md["page"] = strconv.Itoa(u.Page)
	}
	if u.Slide > 0 {
		md["slide"] = strconv.Itoa(u.Slide)
	}
	if u.DocType != "" {
		md["doctype"] = u.DocType
	}
	return md
}

func entryFromChromem(id, content string, md map[string]string) Entry {
	page, _ := strconv.Atoi(md["page"])
	slide, _ := strconv.Atoi(md["slide"])
	seq, _ := strconv.Atoi(md["seq"])

	return Entry{
		ID:      id,
		Content: content,
		Source:  md["source"],
		Page:    page,
		Slide:   slide,
		DocType: md["doctype"],
		Seq:     seq,
	}
}

func resultFromChromem(r chromem.Result) Result {
	return Result{
		Entry:      entryFromChromem(r.ID, r.Content, r.Metadata),
		Similarity: r.Similarity,
	}
}
