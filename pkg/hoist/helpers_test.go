package hoist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cargo-hoist/pkg/tomledit"
	"github.com/matzehuels/cargo-hoist/pkg/workspace"
)

// writeTree creates files under dir; keys are slash-separated paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// snapshot reads every named file under dir.
func snapshot(t *testing.T, dir string, names ...string) map[string]string {
	t.Helper()
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = readFile(t, dir, n)
	}
	return out
}

// manifest builds an in-memory manifest located at path.
func manifest(t *testing.T, path, src string) *workspace.Manifest {
	t.Helper()
	doc, err := tomledit.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return &workspace.Manifest{Path: path, Doc: doc}
}

func sharedSet(pairs ...any) *SharedSet {
	s := NewSharedSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.accept(pairs[i].(string), pairs[i+1].(Source))
	}
	return s
}
