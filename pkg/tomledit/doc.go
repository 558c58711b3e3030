// Package tomledit edits TOML documents without disturbing their formatting.
//
// A [Document] keeps the original source text and an index of its top-level
// expressions built with go-toml's unstable AST parser. Edits splice new
// text into the source and re-index it, so comments, blank lines, key order
// and quoting survive everywhere except in the bytes an edit replaces.
//
// # Reading
//
//	doc, err := tomledit.Parse(data)
//	deps := doc.Table("dependencies")
//	for _, e := range deps.Entries() {
//	    fmt.Println(e.Key, e.Form, e.Value.Text())
//	}
//
// Entries cover the three spellings of a child table: `name = { ... }`,
// a [dependencies.name] section and dotted pairs (`name.version = "1"`).
//
// # Editing
//
//	shared, _ := doc.EnsureTable("workspace", "dependencies")
//	_ = shared.Append("serde", tomledit.NewString("1.0"))
//	os.WriteFile(path, doc.Bytes(), 0o644)
//
// Values read from a document keep their source text, so a field copied
// into a new inline table is reproduced exactly.
package tomledit
