package hoist

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
)

func TestUpdateMember(t *testing.T) {
	src := `[package]
name = "a"

[dependencies]
# runtime deps
serde = "1.0"
rand = { version = "0.8", features = ["small_rng"], optional = true } # rng
anyhow = { workspace = true }
local = { path = "../local", default-features = false }
untouched = "2"
git-dep = { git = "https://example.com/g", branch = "main", features = [
    "a",
] }

[dependencies.tokio]
# pinned for now
version = "1"
features = ["full"]

[dependencies.log]
workspace = false
version = "0.4"

[dev-dependencies]
serde = "1.0"
`
	m := manifest(t, "/ws/a/Cargo.toml", src)
	shared := sharedSet(
		"serde", Version("1.0"),
		"rand", Version("0.8"),
		"anyhow", Version("1"),
		"local", Path("./local"),
		"git-dep", Git("https://example.com/g", "main", "", ""),
		"tokio", Version("1"),
		"log", Version("0.4"),
	)

	names, err := NewRewriter(nil).UpdateMember(m, shared)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"serde", "rand", "local", "git-dep", "tokio", "log"}, names); diff != "" {
		t.Errorf("rewritten (-want +got):\n%s", diff)
	}

	want := `[package]
name = "a"

[dependencies]
# runtime deps
serde = { workspace = true }
rand = { workspace = true, features = ["small_rng"], optional = true } # rng
anyhow = { workspace = true }
local = { workspace = true, default-features = false }
untouched = "2"
git-dep = { workspace = true, features = [
    "a",
] }

[dependencies.tokio]
workspace = true
# pinned for now
features = ["full"]

[dependencies.log]
workspace = true

[dev-dependencies]
serde = "1.0"
`
	if diff := cmp.Diff(want, m.Doc.String()); diff != "" {
		t.Errorf("member (-want +got):\n%s", diff)
	}
}

func TestUpdateMemberDotted(t *testing.T) {
	m := manifest(t, "/ws/a/Cargo.toml", "[dependencies]\nserde.version = \"1.0\"\nserde.features = [\"derive\"]\nrand = \"0.8\"\n")

	if _, err := NewRewriter(nil).UpdateMember(m, sharedSet("serde", Version("1.0"))); err != nil {
		t.Fatal(err)
	}
	want := "[dependencies]\nserde.workspace = true\nserde.features = [\"derive\"]\nrand = \"0.8\"\n"
	if diff := cmp.Diff(want, m.Doc.String()); diff != "" {
		t.Errorf("member (-want +got):\n%s", diff)
	}
}

func TestUpdateMemberWithoutDependencies(t *testing.T) {
	src := "[package]\nname = \"a\"\n"
	m := manifest(t, "/ws/a/Cargo.toml", src)

	names, err := NewRewriter(nil).UpdateMember(m, sharedSet("serde", Version("1.0")))
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 || m.Doc.Modified() {
		t.Errorf("names = %v, modified = %v", names, m.Doc.Modified())
	}
}

func TestUpdateRoot(t *testing.T) {
	src := `[workspace]
members = ["a", "b"]
resolver = "2"

[workspace.dependencies]
serde = "1.0" # keep

[profile.release]
lto = true
`
	m := manifest(t, "/ws/Cargo.toml", src)
	shared := sharedSet(
		"serde", Version("2.0"),
		"rand", Version("0.8"),
		"dep", Git("https://example.com/dep", "", "222", ""),
		"local", Path("./crates/local"),
	)

	added, err := NewRewriter(nil).UpdateRoot(m, shared)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"rand", "dep", "local"}, added); diff != "" {
		t.Errorf("added (-want +got):\n%s", diff)
	}

	want := `[workspace]
members = ["a", "b"]
resolver = "2"

[workspace.dependencies]
serde = "1.0" # keep
rand = "0.8"
dep = { git = "https://example.com/dep", rev = "222" }
local = { path = "./crates/local" }

[profile.release]
lto = true
`
	if diff := cmp.Diff(want, m.Doc.String()); diff != "" {
		t.Errorf("root (-want +got):\n%s", diff)
	}
}

func TestUpdateRootCreatesTable(t *testing.T) {
	m := manifest(t, "/ws/Cargo.toml", "# root\n[workspace]\nmembers = [\"a\"]\n")

	if _, err := NewRewriter(nil).UpdateRoot(m, sharedSet("serde", Version("1.0"))); err != nil {
		t.Fatal(err)
	}
	want := "# root\n[workspace]\nmembers = [\"a\"]\n\n[workspace.dependencies]\nserde = \"1.0\"\n"
	if diff := cmp.Diff(want, m.Doc.String()); diff != "" {
		t.Errorf("root (-want +got):\n%s", diff)
	}
}

func TestUpdateRootNothingAccepted(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		modified bool
	}{
		{
			name:     "table created",
			src:      "[workspace]\nmembers = [\"a\"]\n",
			want:     "[workspace]\nmembers = [\"a\"]\n\n[workspace.dependencies]\n",
			modified: true,
		},
		{
			name: "table exists",
			src:  "[workspace]\nmembers = [\"a\"]\n\n[workspace.dependencies]\nserde = \"1\"\n",
			want: "[workspace]\nmembers = [\"a\"]\n\n[workspace.dependencies]\nserde = \"1\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := manifest(t, "/ws/Cargo.toml", tt.src)

			added, err := NewRewriter(nil).UpdateRoot(m, NewSharedSet())
			if err != nil {
				t.Fatal(err)
			}
			if len(added) != 0 {
				t.Errorf("added = %v, want none", added)
			}
			if diff := cmp.Diff(tt.want, m.Doc.String()); diff != "" {
				t.Errorf("root (-want +got):\n%s", diff)
			}
			if m.Doc.Modified() != tt.modified {
				t.Errorf("Modified() = %v, want %v", m.Doc.Modified(), tt.modified)
			}
		})
	}
}

func TestUpdateRootErrors(t *testing.T) {
	t.Run("inline shared table", func(t *testing.T) {
		for _, shared := range []*SharedSet{sharedSet("rand", Version("0.8")), NewSharedSet()} {
			m := manifest(t, "/ws/Cargo.toml", "[workspace]\nmembers = []\ndependencies = { serde = \"1\" }\n")
			_, err := NewRewriter(nil).UpdateRoot(m, shared)
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("accepted %d: error = %v, want INVALID_MANIFEST", shared.Len(), err)
			}
		}
	})

	t.Run("workspace source", func(t *testing.T) {
		m := manifest(t, "/ws/Cargo.toml", "[workspace]\nmembers = []\n")
		_, err := NewRewriter(nil).UpdateRoot(m, sharedSet("rand", Workspace()))
		if !errors.Is(err, errors.ErrCodeInternal) {
			t.Errorf("error = %v, want INTERNAL_ERROR", err)
		}
	})
}
