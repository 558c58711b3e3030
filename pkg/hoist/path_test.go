package hoist

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
)

func TestRelativize(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "ws")
	writeTree(t, base, map[string]string{
		"ws/Cargo.toml":          "[workspace]\nmembers = []\n",
		"ws/crates/a/Cargo.toml": "",
		"ws/crates/b/Cargo.toml": "",
		"outside/Cargo.toml":     "",
	})
	member := filepath.Join(root, "crates", "a", "Cargo.toml")

	tests := []struct {
		name  string
		local string
		want  string
	}{
		{"sibling", "../b", "./crates/b"},
		{"sibling with slash", "../b/", "./crates/b"},
		{"self", ".", "./crates/a"},
		{"root", "../..", "./"},
		{"outside root", "../../../outside", "../outside"},
		{"absolute", filepath.Join(root, "crates", "b"), "./crates/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Relativize(tt.local, member, root)
			if err != nil {
				t.Fatalf("Relativize: %v", err)
			}
			if got != tt.want {
				t.Errorf("Relativize(%q) = %q, want %q", tt.local, got, tt.want)
			}
		})
	}
}

func TestRelativizeParentOfRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "ws")
	writeTree(t, base, map[string]string{"ws/Cargo.toml": ""})

	got, err := Relativize("..", filepath.Join(root, "Cargo.toml"), root)
	if err != nil {
		t.Fatal(err)
	}
	if got != "../" {
		t.Errorf("got %q, want ../", got)
	}
}

func TestRelativizeMissing(t *testing.T) {
	root := t.TempDir()
	_, err := Relativize("../nope", filepath.Join(root, "crates", "a", "Cargo.toml"), root)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error = %v, want INVALID_PATH", err)
	}

	_, err = Relativize(".", filepath.Join(root, "Cargo.toml"), filepath.Join(root, "gone"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing root error = %v, want INVALID_PATH", err)
	}
}

func TestRelativizeSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	base := t.TempDir()
	root := filepath.Join(base, "ws")
	writeTree(t, base, map[string]string{
		"ws/crates/a/Cargo.toml": "",
		"ws/crates/b/Cargo.toml": "",
	})
	if err := os.Symlink(filepath.Join(root, "crates", "b"), filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}
	rootLink := filepath.Join(base, "ws-link")
	if err := os.Symlink(root, rootLink); err != nil {
		t.Fatal(err)
	}

	got, err := Relativize("../../link", filepath.Join(root, "crates", "a", "Cargo.toml"), rootLink)
	if err != nil {
		t.Fatal(err)
	}
	if got != "./crates/b" {
		t.Errorf("got %q, want ./crates/b", got)
	}
}
