// Package pkg provides the libraries behind cargo-hoist.
//
// # Overview
//
// cargo-hoist moves dependencies declared by the members of a Cargo
// workspace into the root manifest's [workspace.dependencies] table and
// rewrites each member declaration to inherit it. The pkg directory is
// organized into:
//
//  1. [tomledit] - Formatting-preserving TOML documents
//  2. [workspace] - Workspace discovery and manifest I/O
//  3. [hoist] - Collect, reconcile, rewrite and persist
//  4. [errors] - Coded errors shared by every stage
//  5. [observability] - Hooks for run events
//  6. [buildinfo] - Version information
//
// # Architecture
//
// The data flow of one run:
//
//	ROOT/Cargo.toml (workspace.members)
//	         ↓
//	[workspace.Load] → member manifests
//	         ↓
//	[hoist.Collector] → declarations per name, classified by source
//	         ↓
//	[hoist.Reconciler] → one source per name (Chooser on conflict)
//	         ↓
//	[hoist.Rewriter] → edited documents
//	         ↓
//	members, then root, written back
//
// # Usage
//
//	report, err := hoist.NewRunner(logger).Run(ctx, hoist.Options{
//	    Root:    ".",
//	    Chooser: hoist.NewPrompter(os.Stdin, os.Stdout),
//	})
//
// [tomledit]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/tomledit
// [workspace]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/workspace
// [hoist]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/hoist
// [errors]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/buildinfo
//
// [workspace.Load]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/workspace#Load
// [hoist.Collector]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/hoist#Collector
// [hoist.Reconciler]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/hoist#Reconciler
// [hoist.Rewriter]: https://pkg.go.dev/github.com/matzehuels/cargo-hoist/pkg/hoist#Rewriter
package pkg
