// Package workspace discovers the manifests of a Cargo workspace.
//
// [Load] reads the root Cargo.toml, expands its `workspace.members` list
// (literal paths and glob patterns such as "crates/*") and honours
// `workspace.exclude`. Every manifest is returned as a [Manifest] holding an
// editable [tomledit.Document], parsed once and written back with
// [Manifest.Write].
//
// # Member expansion
//
// Literal members must contain a Cargo.toml; a missing one is an error.
// Glob matches without a Cargo.toml are ignored, and glob matches under an
// excluded path are dropped. Members are returned in declaration order with
// duplicates removed. A member that resolves to the workspace root shares
// the root's [Manifest], so both views edit the same document.
//
// Entries of `workspace.members` that are not strings are skipped with a
// warning.
package workspace
