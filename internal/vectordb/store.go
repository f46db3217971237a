package vectordb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/ragchat/ragchat/internal/extractor"
)

const collectionName = "documents"

// Store is a persistent vector index at a single filesystem path, backed
// by chromem-go. All mutations at a path go through one Store instance
// (see Registry), and its RWMutex keeps a reset-then-append ingestion
// batch atomic with respect to concurrent queries.
type Store struct {
	mu         sync.RWMutex
	path       string
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	seq        int
}

func openStore(path string, embedFunc chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store at %s: %w", path, err)
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("creating collection at %s: %w", path, err)
	}

	return &Store{
		path:       path,
		db:         db,
		collection: col,
		embedFunc:  embedFunc,
		// Entries are only ever bulk-reset, never deleted individually,
		// so the count doubles as the next insertion sequence number.
		seq: col.Count(),
	}, nil
}

// Path returns the resolved filesystem path this store persists to.
func (s *Store) Path() string { return s.path }

// Count returns the number of entries in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Count()
}

// Reset deletes all entries and recreates an empty, usable store.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLocked()
}

// Append embeds each unit's content and persists it as an entry, returning
// the number of entries written. Units that are empty after trimming are
// discarded. A no-op on an empty input.
func (s *Store) Append(ctx context.Context, units []extractor.TextUnit) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(ctx, units)
}

// Query returns the k entries most similar to text, most similar first.
// Ties are broken by insertion order (earlier entry wins). Asking for more
// entries than the store holds returns everything it has.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}

	// chromem orders by similarity but leaves equal scores unordered, and a
	// tie can span the k cut. Rank the full collection, then truncate, so
	// earlier-inserted entries win ties even at the boundary.
	raw, err := s.collection.Query(ctx, text, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying vector store at %s: %w", s.path, err)
	}

	results := make([]Result, len(raw))
	for i, r := range raw {
		results[i] = resultFromChromem(r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Seq < results[j].Seq
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// IngestTx exposes reset and append to an ingestion batch running under
// the store's write lock.
type IngestTx struct {
	ctx context.Context
	s   *Store
}

// Ingest runs fn with the store exclusively locked, so one batch's reset
// and appends are never interleaved with other writers or observed
// half-done by readers.
func (s *Store) Ingest(ctx context.Context, fn func(tx *IngestTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&IngestTx{ctx: ctx, s: s})
}

// Reset clears the store within the batch.
func (tx *IngestTx) Reset() error {
	return tx.s.resetLocked()
}

// Append adds units to the store within the batch.
func (tx *IngestTx) Append(units []extractor.TextUnit) (int, error) {
	return tx.s.appendLocked(tx.ctx, units)
}

func (s *Store) resetLocked() error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("resetting vector store at %s: %w", s.path, err)
	}
	col, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreating collection at %s: %w", s.path, err)
	}
	s.collection = col
	s.seq = 0
	return nil
}

func (s *Store) appendLocked(ctx context.Context, units []extractor.TextUnit) (int, error) {
	var docs []chromem.Document
	for _, u := range units {
		if strings.TrimSpace(u.Content) == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:       uuid.New().String(),
			Content:  u.Content,
			Metadata: metadataFromUnit(u, s.seq+len(docs)),
		})
	}
	if len(docs) == 0 {
		return 0, nil
	}

	// The persistent chromem DB writes every document to disk as it is
	// added, so the append is durable once this returns.
	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return 0, fmt.Errorf("appending to vector store at %s: %w", s.path, err)
	}
	s.seq += len(docs)
	return len(docs), nil
}
