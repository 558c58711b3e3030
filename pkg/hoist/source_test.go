package hoist

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
)

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Version("1.0"), "version: 1.0"},
		{Git("https://example.com/x", "", "", ""), "git: https://example.com/x"},
		{Git("https://example.com/x", "main", "abc", "v1"), "git: https://example.com/x, branch: main, rev: abc, tag: v1"},
		{Git("https://example.com/x", "", "", "v1"), "git: https://example.com/x, tag: v1"},
		{Path("./crates/b"), "path: ./crates/b"},
		{Workspace(), "workspace"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.src.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceEquality(t *testing.T) {
	if Git("u", "", "1", "") == Git("u", "", "2", "") {
		t.Error("git sources with different revs compare equal")
	}
	if Version("1.0") != Version("1.0") {
		t.Error("identical versions compare unequal")
	}
	if Version("1.0") == Path("1.0") {
		t.Error("sources of different kinds compare equal")
	}
}

func TestSharedValue(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{"version", Version("1.0"), `"1.0"`},
		{"git", Git("https://example.com/x", "", "abc", ""), `{ git = "https://example.com/x", rev = "abc" }`},
		{"git all", Git("https://example.com/x", "dev", "abc", "v2"), `{ git = "https://example.com/x", branch = "dev", rev = "abc", tag = "v2" }`},
		{"path", Path("./crates/b"), `{ path = "./crates/b" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.src.SharedValue()
			if err != nil {
				t.Fatal(err)
			}
			if got := v.Text(); got != tt.want {
				t.Errorf("SharedValue() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := Workspace().SharedValue(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Workspace().SharedValue() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestClassify(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"crates/b/Cargo.toml": "[package]\nname = \"b\"\n",
	})
	src := `[dependencies]
bare = "1.0"
ver = { version = "0.8", features = ["x"] }
git = { git = "https://example.com/g", branch = "main", rev = "abc" }
gitbad = { git = 1, path = "../b" }
local = { path = "../b" }
missing = { path = "../nope" }
shared = { workspace = true }
unshared = { workspace = false }
nosource = { features = ["x"] }
num = 3
vernum = { version = 1 }
dotted.version = "2.0"

[dependencies.tbl]
path = "../b"
version = "0.1"
`
	m := manifest(t, filepath.Join(root, "crates", "a", "Cargo.toml"), src)
	c := NewClassifier(root, nil)

	want := map[string]struct {
		src Source
		ok  bool
	}{
		"bare":     {Version("1.0"), true},
		"ver":      {Version("0.8"), true},
		"git":      {Git("https://example.com/g", "main", "abc", ""), true},
		"gitbad":   {Source{}, false},
		"local":    {Path("./crates/b"), true},
		"missing":  {Source{}, false},
		"shared":   {Workspace(), true},
		"unshared": {Source{}, false},
		"nosource": {Source{}, false},
		"num":      {Source{}, false},
		"vernum":   {Source{}, false},
		"dotted":   {Version("2.0"), true},
		"tbl":      {Path("./crates/b"), true},
	}

	entries := m.Doc.Table("dependencies").Entries()
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for _, e := range entries {
		t.Run(e.Key, func(t *testing.T) {
			w := want[e.Key]
			got, ok := c.Classify(m.Path, e.Value)
			if ok != w.ok || got != w.src {
				t.Errorf("Classify() = %v, %v; want %v, %v", got, ok, w.src, w.ok)
			}
		})
	}
}

func TestClassifyEmptyGitRef(t *testing.T) {
	m := manifest(t, filepath.Join(t.TempDir(), "Cargo.toml"),
		"[dependencies]\nx = { git = \"https://example.com/x\", branch = \"\" }\ny = { git = \"https://example.com/x\" }\n")
	deps := m.Doc.Table(DependenciesTable)
	c := NewClassifier(filepath.Dir(m.Path), nil)

	xe, _ := deps.Get("x")
	ye, _ := deps.Get("y")
	x, ok := c.Classify(m.Path, xe.Value)
	if !ok {
		t.Fatal("x not classified")
	}
	y, _ := c.Classify(m.Path, ye.Value)

	if want := Git("https://example.com/x", "", "", "").WithRef(RefBranch, ""); x != want {
		t.Errorf("x = %+v, want %+v", x, want)
	}
	if x == y {
		t.Error("an empty branch compares equal to a missing branch")
	}
	if got := x.String(); got != "git: https://example.com/x, branch: " {
		t.Errorf("String() = %q", got)
	}
	v, err := x.SharedValue()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Text(); got != `{ git = "https://example.com/x", branch = "" }` {
		t.Errorf("SharedValue() = %s", got)
	}
}
