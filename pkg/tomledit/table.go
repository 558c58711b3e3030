package tomledit

import (
	"fmt"
	"slices"
)

// Form describes how a table entry is spelled in the document.
type Form int

const (
	// FormValue is a plain pair: `name = value`.
	FormValue Form = iota
	// FormTable is a sub-table with its own [parent.name] header.
	FormTable
	// FormDotted is a group of dotted pairs: `name.key = value`.
	FormDotted
)

func (f Form) String() string {
	switch f {
	case FormTable:
		return "table"
	case FormDotted:
		return "dotted"
	default:
		return "value"
	}
}

// Entry is a direct child of a table.
//
// For FormTable and FormDotted entries, Value is a [StandardTable] whose
// fields are the pairs declared beneath the entry, keyed relative to it.
type Entry struct {
	Key   string
	Form  Form
	Value *Value
}

// Table is a live view of a standard table in a [Document]. It stays valid
// across edits; every call re-reads the current document.
type Table struct {
	doc  *Document
	path []string
}

// Path returns the table's full key.
func (t *Table) Path() []string {
	return slices.Clone(t.path)
}

// Entries returns the table's direct children in document order.
func (t *Table) Entries() []Entry {
	var (
		entries []Entry
		seen    = map[string]int{}
	)
	add := func(name string, form Form, v *Value) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = len(entries)
		entries = append(entries, Entry{Key: name, Form: form, Value: v})
	}
	for i := range t.doc.exprs {
		e := &t.doc.exprs[i]
		switch e.kind {
		case exprTable:
			if hasStrictPrefix(e.header, t.path) {
				add(e.header[len(t.path)], FormTable, nil)
			}
		case exprKeyValue:
			if e.inArray {
				continue
			}
			full := e.path()
			if !hasStrictPrefix(full, t.path) {
				continue
			}
			name := full[len(t.path)]
			if len(full) == len(t.path)+1 {
				add(name, FormValue, e.field.Value)
			} else {
				add(name, FormDotted, nil)
			}
		}
	}
	for i := range entries {
		if entries[i].Form != FormValue {
			entries[i].Value = t.collect(append(slices.Clone(t.path), entries[i].Key))
		}
	}
	return entries
}

// collect gathers every pair beneath path into a StandardTable value.
func (t *Table) collect(path []string) *Value {
	v := &Value{Kind: StandardTable}
	for i := range t.doc.exprs {
		e := &t.doc.exprs[i]
		if e.kind != exprKeyValue || e.inArray {
			continue
		}
		full := e.path()
		if !hasStrictPrefix(full, path) {
			continue
		}
		v.Fields = append(v.Fields, Field{Key: full[len(path):], Value: e.field.Value})
	}
	return v
}

// Get returns the entry named key.
func (t *Table) Get(key string) (Entry, bool) {
	for _, e := range t.Entries() {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether the table has an entry named key.
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Sub returns the sub-table named key, or nil when key is not a table.
func (t *Table) Sub(key string) *Table {
	return t.doc.Table(append(slices.Clone(t.path), key)...)
}

// Set stores v under key. An existing pair keeps its position and key
// spelling; a missing key is appended.
func (t *Table) Set(key string, v *Value) error {
	full := append(slices.Clone(t.path), key)
	if i := t.doc.keyValue(full); i >= 0 {
		old := t.doc.exprs[i].field.Value
		return t.doc.splice(old.start, old.end, v.Text())
	}
	if t.doc.defined(full) {
		return fmt.Errorf("%w: %s", ErrNotValue, formatKey(full))
	}
	return t.Append(key, v)
}

// Append adds `key = v` after the last pair of the table. Tables that are
// only implied by sub-table headers get a [header] of their own first.
func (t *Table) Append(key string, v *Value) error {
	d := t.doc
	nl := d.newline()
	full := append(slices.Clone(t.path), key)

	if h := t.anchor(); h >= 0 {
		pos := d.sectionEnd(h)
		return d.splice(pos, pos, nl+keyLine([]string{key}, v))
	}
	if len(t.path) == 0 {
		last := -1
		for i := range d.exprs {
			if k := d.exprs[i].kind; k == exprTable || k == exprArrayTable {
				break
			} else if k == exprKeyValue {
				last = i
			}
		}
		if last < 0 {
			return d.splice(0, 0, keyLine(full, v)+nl)
		}
		pos := d.exprs[last].end
		return d.splice(pos, pos, nl+keyLine(full, v))
	}
	if last := t.lastDotted(); last >= 0 {
		e := &d.exprs[last]
		return d.splice(e.end, e.end, nl+d.indent(last)+keyLine(full[len(e.header):], v))
	}

	if _, err := d.EnsureTable(t.path...); err != nil {
		return err
	}
	if d.header(t.path) < 0 {
		// The table was implied by sub-table headers; give it its own.
		pos := len(d.src)
		text := nl + "[" + formatKey(t.path) + "]" + nl
		if pos > 0 && d.src[pos-1] != '\n' {
			text = nl + text
		}
		if err := d.splice(pos, pos, text); err != nil {
			return err
		}
	}
	return t.Append(key, v)
}

// Prepend adds `key = v` as the first pair of the table.
func (t *Table) Prepend(key string, v *Value) error {
	d := t.doc
	nl := d.newline()
	full := append(slices.Clone(t.path), key)

	if h := t.anchor(); h >= 0 {
		pos := d.exprs[h].end
		return d.splice(pos, pos, nl+keyLine([]string{key}, v))
	}
	if first := t.firstDotted(); first >= 0 {
		e := &d.exprs[first]
		pos := d.lineStart(e.start)
		return d.splice(pos, pos, d.indent(first)+keyLine(full[len(e.header):], v)+nl)
	}
	if len(t.path) == 0 {
		return d.splice(0, 0, keyLine(full, v)+nl)
	}
	return t.Append(key, v)
}

// Delete removes the pair stored under key, including its line. A dotted
// key is given as several parts. Deleting a missing key is a no-op.
func (t *Table) Delete(key ...string) error {
	full := append(slices.Clone(t.path), key...)
	i := t.doc.keyValue(full)
	if i < 0 {
		return nil
	}
	start, end := t.doc.lineSpan(i)
	return t.doc.splice(start, end, "")
}

// anchor returns the header expression new pairs are written under: the
// table's own header, or -1 when it has none. The root table has none.
func (t *Table) anchor() int {
	if len(t.path) == 0 {
		return -1
	}
	return t.doc.header(t.path)
}

func (t *Table) firstDotted() int {
	for i := range t.doc.exprs {
		if t.isDotted(i) {
			return i
		}
	}
	return -1
}

func (t *Table) lastDotted() int {
	last := -1
	for i := range t.doc.exprs {
		if t.isDotted(i) {
			last = i
		}
	}
	return last
}

// isDotted reports whether expression i is a pair beneath the table written
// with a dotted key from an ancestor's section.
func (t *Table) isDotted(i int) bool {
	e := &t.doc.exprs[i]
	if e.kind != exprKeyValue || e.inArray || len(e.header) >= len(t.path) {
		return false
	}
	return hasStrictPrefix(e.path(), t.path)
}

func (d *Document) indent(i int) string {
	e := &d.exprs[i]
	return string(d.src[d.lineStart(e.start):e.start])
}
