package workspace

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
	"github.com/matzehuels/cargo-hoist/pkg/tomledit"
)

// ManifestName is the file name of a Cargo manifest.
const ManifestName = "Cargo.toml"

// Manifest is a Cargo.toml loaded for editing.
type Manifest struct {
	Path string // absolute path of the file
	Name string // package.name, empty for virtual manifests
	Doc  *tomledit.Document

	mode fs.FileMode
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Label returns the package name, or the manifest path when the manifest
// declares no package.
func (m *Manifest) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Path
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to read %s", path)
	}

	doc, err := tomledit.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse %s", path)
	}

	var meta packageMeta
	if _, err := toml.Decode(string(data), &meta); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to decode %s", path)
	}

	return &Manifest{
		Path: path,
		Name: meta.Package.Name,
		Doc:  doc,
		mode: info.Mode().Perm(),
	}, nil
}

// Write stores the current document text, keeping the file's permissions.
func (m *Manifest) Write() error {
	if err := os.WriteFile(m.Path, m.Doc.Bytes(), m.mode); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "failed to write %s", m.Path)
	}
	return nil
}

type packageMeta struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}
