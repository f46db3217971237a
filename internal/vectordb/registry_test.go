package vectordb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_ResolvePath(t *testing.T) {
	base := t.TempDir()
	reg := NewRegistry(base, "vector_store", colorEmbedder())

	def, err := reg.ResolvePath("")
	if err != nil {
		t.Fatalf("ResolvePath(\"\"): %v", err)
	}
	if def != filepath.Join(base, "vector_store") {
		t.Errorf("empty path should resolve to the default dir, got %s", def)
	}
	if _, err := os.Stat(def); err != nil {
		t.Errorf("resolved directory should exist: %v", err)
	}

	rel, err := reg.ResolvePath("project_a")
	if err != nil {
		t.Fatalf("ResolvePath(relative): %v", err)
	}
	if rel != filepath.Join(base, "project_a") {
		t.Errorf("relative paths should resolve under the base, got %s", rel)
	}

	absIn := filepath.Join(base, "elsewhere")
	abs, err := reg.ResolvePath(absIn)
	if err != nil {
		t.Fatalf("ResolvePath(absolute): %v", err)
	}
	if abs != absIn {
		t.Errorf("absolute paths should pass through, got %s", abs)
	}

	// Resolution is idempotent.
	again, err := reg.ResolvePath("project_a")
	if err != nil {
		t.Fatalf("ResolvePath repeat: %v", err)
	}
	if again != rel {
		t.Errorf("expected %s, got %s", rel, again)
	}
}

func TestRegistry_OneStorePerPath(t *testing.T) {
	reg := NewRegistry(t.TempDir(), "vector_store", colorEmbedder())

	a, err := reg.Get("")
	if err != nil {
		t.Fatalf("Get(\"\"): %v", err)
	}
	b, err := reg.Get("vector_store")
	if err != nil {
		t.Fatalf("Get(relative default): %v", err)
	}
	if a != b {
		t.Error("the default path and its relative spelling must share one store")
	}

	c, err := reg.Get("other")
	if err != nil {
		t.Fatalf("Get(other): %v", err)
	}
	if c == a {
		t.Error("distinct paths must get distinct stores")
	}

	d, err := reg.Get("other")
	if err != nil {
		t.Fatalf("Get(other) repeat: %v", err)
	}
	if d != c {
		t.Error("repeated Get for one path must return the same store instance")
	}
}
