// Package hoist moves dependency declarations shared by the members of a
// Cargo workspace into the root's [workspace.dependencies] table.
//
// # Overview
//
// A run has four stages, executed by [Runner.Run]:
//
//  1. Collect: every member's [dependencies] section is scanned and each
//     declaration is classified into a [Source] (registry version, git
//     repository or local path). Declarations that already delegate to the
//     workspace (`workspace = true`) are ignored.
//  2. Reconcile: declarations are grouped by name. A name whose occurrences
//     all agree on one source is accepted; a name with several distinct
//     sources is handed to a [Chooser], which picks one or skips the name.
//  3. Rewrite: accepted names missing from [workspace.dependencies] are
//     added with their source keys only, and every member declaration of an
//     accepted name is rewritten to `{ workspace = true, ... }`, keeping its
//     other keys (features, optional, default-features, ...).
//  4. Persist: modified members are written back, then the root manifest.
//
// All edits go through [tomledit], so every byte the rewrite does not touch
// is preserved, comments included.
//
// # Sources
//
// Classification follows a fixed precedence. A bare string is a version. In
// a table, the presence of a `git` key selects a git source, else `path`
// selects a path source, else `version` a version source; `workspace = true`
// marks a declaration that is already shared. Path sources are stored
// relative to the workspace root, always starting with "./" or "../", so
// that declarations written from different members compare equal.
//
// # Conflicts
//
// [Prompter] implements the interactive protocol on a pair of streams:
//
//	Dependency `serde` has conflicting source specifications:
//	  1) version: 1.0
//	  2) git: https://github.com/serde-rs/serde, rev: abc123
//	  0) Skip hoisting this dependency
//	Please choose an option for `serde` [0]:
//
// Empty, non-numeric and out-of-range answers skip the dependency.
// [SkipChooser] skips every conflict without asking.
//
// # Usage
//
//	runner := hoist.NewRunner(logger)
//	report, err := runner.Run(ctx, hoist.Options{
//	    Root:    ".",
//	    Chooser: hoist.NewPrompter(os.Stdin, os.Stdout),
//	})
package hoist
