package vectordb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ragchat/ragchat/internal/embeddings"
)

// Registry maps resolved index paths to live Store instances, guaranteeing
// exactly one logical store per distinct path. Stores are opened lazily on
// first access and reused for the process lifetime.
type Registry struct {
	mu         sync.Mutex
	baseDir    string
	defaultDir string
	embedFunc  chromem.EmbeddingFunc
	stores     map[string]*Store
}

// NewRegistry creates a registry rooted at baseDir. defaultDir is used
// when a caller supplies no path; if relative it is resolved under
// baseDir.
func NewRegistry(baseDir, defaultDir string, embedder embeddings.Embedder) *Registry {
	if !filepath.IsAbs(defaultDir) {
		defaultDir = filepath.Join(baseDir, defaultDir)
	}
	return &Registry{
		baseDir:    baseDir,
		defaultDir: filepath.Clean(defaultDir),
		embedFunc:  embeddings.ToChromemFunc(embedder),
		stores:     make(map[string]*Store),
	}
}

// ResolvePath turns an optional caller-supplied path into the absolute
// store directory, creating it if missing. Empty input resolves to the
// default directory; relative paths resolve under the registry base.
// Deterministic and idempotent.
func (r *Registry) ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)

	var abs string
	switch {
	case path == "":
		abs = r.defaultDir
	case filepath.IsAbs(path):
		abs = filepath.Clean(path)
	default:
		abs = filepath.Clean(filepath.Join(r.baseDir, path))
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("creating store directory %s: %w", abs, err)
	}
	return abs, nil
}

// Get returns the store for the given optional path, opening it on first
// access.
func (r *Registry) Get(path string) (*Store, error) {
	abs, err := r.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[abs]; ok {
		return s, nil
	}

	s, err := openStore(abs, r.embedFunc)
	if err != nil {
		return nil, err
	}
	r.stores[abs] = s
	return s, nil
}
