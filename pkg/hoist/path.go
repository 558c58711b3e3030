package hoist

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
)

// Relativize rewrites the path dependency local, declared in the manifest
// at manifestPath, relative to the workspace root. Both the dependency and
// the root must exist; symlinks are resolved before comparing them.
//
// The result uses forward slashes and always starts with "./" or "../".
func Relativize(local, manifestPath, root string) (string, error) {
	target := filepath.FromSlash(local)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(manifestPath), target)
	}
	dep, err := resolve(target)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot resolve path dependency %q", local)
	}
	base, err := resolve(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot resolve workspace root %q", root)
	}

	rel, err := filepath.Rel(base, dep)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot relativize %q", local)
	}
	rel = filepath.ToSlash(rel)

	switch {
	case rel == ".":
		return "./", nil
	case rel == "..":
		return "../", nil
	case strings.HasPrefix(rel, "../"):
		return rel, nil
	default:
		return "./" + rel, nil
	}
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
