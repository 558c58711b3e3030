package tomledit

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrNotTable is returned when a table is requested at a key that holds
	// a non-table value (including inline tables, which cannot be extended
	// line by line).
	ErrNotTable = errors.New("tomledit: key does not hold a standard table")

	// ErrNotValue is returned by [Table.Set] when the key is declared as a
	// table rather than a plain key/value pair.
	ErrNotValue = errors.New("tomledit: key is declared as a table")
)

// ParseError reports a syntax or semantic error in a TOML document.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Document is an editable TOML document. Edits splice new text into the
// source, so every byte outside an edited region is preserved.
type Document struct {
	src      []byte
	exprs    []expression
	modified bool
}

// Parse validates data as TOML and indexes it for editing.
func Parse(data []byte) (*Document, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	exprs, err := index(data)
	if err != nil {
		return nil, err
	}
	return &Document{src: data, exprs: exprs}, nil
}

func validate(data []byte) error {
	var probe map[string]any
	err := toml.Unmarshal(data, &probe)
	if err == nil {
		return nil
	}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		line, col := derr.Position()
		return &ParseError{Line: line, Column: col, Message: derr.Error()}
	}
	return err
}

// Bytes returns the current document text.
func (d *Document) Bytes() []byte {
	return d.src
}

// String returns the current document text.
func (d *Document) String() string {
	return string(d.src)
}

// Modified reports whether any edit has been applied since Parse.
func (d *Document) Modified() bool {
	return d.modified
}

// Table returns a view of the standard table at path, or nil when the
// document does not define one. The root table is returned for an empty
// path. A table is defined by its [header], by dotted keys beneath it, or
// implicitly by a header of one of its sub-tables.
func (d *Document) Table(path ...string) *Table {
	if !d.defined(path) {
		return nil
	}
	return &Table{doc: d, path: slices.Clone(path)}
}

// EnsureTable returns the table at path, appending a [header] for it when
// the document does not define it yet. Ancestors are left implicit.
func (d *Document) EnsureTable(path ...string) (*Table, error) {
	if len(path) == 0 {
		return &Table{doc: d}, nil
	}
	for i := 1; i <= len(path); i++ {
		if d.keyValue(path[:i]) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotTable, formatKey(path[:i]))
		}
	}
	if t := d.Table(path...); t != nil {
		return t, nil
	}

	nl := d.newline()
	header := "[" + formatKey(path) + "]"
	pos := len(d.src)
	text := ""
	if parent := d.nearestHeader(path[:len(path)-1]); parent >= 0 {
		pos = d.sectionEnd(parent)
		text = nl + nl + header
	} else {
		if pos > 0 && !bytes.HasSuffix(d.src, []byte("\n")) {
			text = nl
		}
		if pos > 0 {
			text += nl
		}
		text += header + nl
	}
	if err := d.splice(pos, pos, text); err != nil {
		return nil, err
	}
	return &Table{doc: d, path: slices.Clone(path)}, nil
}

func (d *Document) defined(path []string) bool {
	if len(path) == 0 {
		return true
	}
	for i := range d.exprs {
		e := &d.exprs[i]
		switch e.kind {
		case exprTable:
			if hasPrefix(e.header, path) {
				return true
			}
		case exprKeyValue:
			if !e.inArray && hasStrictPrefix(e.path(), path) {
				return true
			}
		}
	}
	return false
}

// keyValue returns the index of the key/value pair whose full key is path.
func (d *Document) keyValue(path []string) int {
	for i := range d.exprs {
		e := &d.exprs[i]
		if e.kind == exprKeyValue && !e.inArray && slices.Equal(e.path(), path) {
			return i
		}
	}
	return -1
}

// header returns the index of the [header] expression for path.
func (d *Document) header(path []string) int {
	for i := range d.exprs {
		e := &d.exprs[i]
		if e.kind == exprTable && slices.Equal(e.header, path) {
			return i
		}
	}
	return -1
}

// nearestHeader returns the header of path or of its closest ancestor.
func (d *Document) nearestHeader(path []string) int {
	for n := len(path); n > 0; n-- {
		if h := d.header(path[:n]); h >= 0 {
			return h
		}
	}
	return -1
}

// lastInSection returns the index of the last key/value pair under the
// header at h, or h itself when the section holds no pairs.
func (d *Document) lastInSection(h int) int {
	last := h
	for i := h + 1; i < len(d.exprs); i++ {
		switch d.exprs[i].kind {
		case exprTable, exprArrayTable:
			return last
		case exprKeyValue:
			last = i
		}
	}
	return last
}

func (d *Document) sectionEnd(h int) int {
	return d.exprs[d.lastInSection(h)].end
}

// lineSpan returns the bytes of the lines holding expression i, including
// indentation and the terminating newline.
func (d *Document) lineSpan(i int) (int, int) {
	e := &d.exprs[i]
	start := d.lineStart(e.start)
	end := e.end
	switch {
	case bytes.HasPrefix(d.src[end:], []byte("\r\n")):
		end += 2
	case end < len(d.src) && d.src[end] == '\n':
		end++
	}
	return start, end
}

func (d *Document) lineStart(pos int) int {
	for pos > 0 && isBlank(d.src[pos-1]) {
		pos--
	}
	return pos
}

func (d *Document) newline() string {
	if bytes.Contains(d.src, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

// splice replaces src[start:end] with text and re-indexes the document.
func (d *Document) splice(start, end int, text string) error {
	next := make([]byte, 0, len(d.src)-(end-start)+len(text))
	next = append(next, d.src[:start]...)
	next = append(next, text...)
	next = append(next, d.src[end:]...)
	if err := validate(next); err != nil {
		return fmt.Errorf("tomledit: edit produced an invalid document: %w", err)
	}
	exprs, err := index(next)
	if err != nil {
		return err
	}
	d.src, d.exprs, d.modified = next, exprs, true
	return nil
}

func hasPrefix(s, prefix []string) bool {
	return len(s) >= len(prefix) && slices.Equal(s[:len(prefix)], prefix)
}

func hasStrictPrefix(s, prefix []string) bool {
	return len(s) > len(prefix) && hasPrefix(s, prefix)
}

func keyLine(key []string, v *Value) string {
	return formatKey(key) + " = " + v.Text()
}
