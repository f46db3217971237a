// Package ingest turns uploaded files into indexed text units. One upload
// batch replaces the target vector store as a unit: reset once, then
// append per file, with per-file failures isolated and reported.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ragchat/ragchat/internal/extractor"
	"github.com/ragchat/ragchat/internal/vectordb"
)

// Upload is one incoming file: its client-supplied name and content.
type Upload struct {
	Filename string
	Data     io.Reader
}

// BatchResult summarizes one ingestion batch. Failed lists per-file
// failure descriptions; the batch as a whole only counts as failed when
// nothing at all was indexed.
type BatchResult struct {
	FilesSaved   []string `json:"files_saved"`
	UnitsIndexed int      `json:"documents_indexed"`
	Failed       []string `json:"failed"`
	StorePath    string   `json:"store_dir_used"`
}

// Service ingests uploads into vector stores.
type Service struct {
	registry  *vectordb.Registry
	uploadDir string
}

// NewService creates an ingestion service that saves uploads under
// uploadDir before extraction.
func NewService(registry *vectordb.Registry, uploadDir string) *Service {
	return &Service{registry: registry, uploadDir: uploadDir}
}

// IngestBatch saves each upload, extracts its text units, and indexes them
// at the resolved store path. The store is reset once at batch start and
// held exclusively for the whole batch, so concurrent queries never see a
// partially replaced index. A failure on one file does not roll back the
// files already appended.
func (s *Service) IngestBatch(ctx context.Context, storePath string, uploads []Upload) (*BatchResult, error) {
	store, err := s.registry.Get(storePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	result := &BatchResult{
		FilesSaved: []string{},
		Failed:     []string{},
		StorePath:  store.Path(),
	}

	err = store.Ingest(ctx, func(tx *vectordb.IngestTx) error {
		if err := tx.Reset(); err != nil {
			return err
		}

		for _, up := range uploads {
			if up.Filename == "" {
				result.Failed = append(result.Failed, "(unnamed file)")
				continue
			}

			savedPath, err := s.saveUpload(up)
			if err != nil {
				result.Failed = append(result.Failed, fmt.Sprintf("%s (save error: %v)", up.Filename, err))
				continue
			}
			result.FilesSaved = append(result.FilesSaved, up.Filename)

			units, err := extractor.Extract(savedPath)
			if err != nil {
				result.Failed = append(result.Failed, fmt.Sprintf("%s (process error: %v)", up.Filename, err))
				continue
			}
			if len(units) == 0 {
				continue
			}

			n, err := tx.Append(units)
			if err != nil {
				result.Failed = append(result.Failed, fmt.Sprintf("%s (index error: %v)", up.Filename, err))
				continue
			}
			result.UnitsIndexed += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) saveUpload(up Upload) (string, error) {
	// Uploads are saved under their basename only, never a caller path.
	path := filepath.Join(s.uploadDir, filepath.Base(up.Filename))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, up.Data); err != nil {
		return "", err
	}
	return path, nil
}
