package tomledit

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the TOML type of a [Value].
type Kind int

const (
	Invalid Kind = iota
	String
	Bool
	Integer
	Float
	Datetime
	Array
	InlineTable
	// StandardTable is a table declared through a [header] or through
	// dotted keys. It only appears in values returned by [Table.Entries].
	StandardTable
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "boolean"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Datetime:
		return "datetime"
	case Array:
		return "array"
	case InlineTable:
		return "inline table"
	case StandardTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is a TOML value read from a document or built for insertion.
//
// Values read from a document remember their source text, so copying one
// into a new container reproduces it byte for byte.
type Value struct {
	Kind   Kind
	Str    string   // String
	Bool   bool     // Bool
	Items  []*Value // Array
	Fields []Field  // InlineTable, StandardTable

	raw        string
	start, end int
}

// Field is a key/value pair inside an inline table or a table.
type Field struct {
	Key   []string // dotted key parts, relative to the owning table
	Value *Value

	rawKey string
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{Kind: String, Str: s}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return &Value{Kind: Bool, Bool: b}
}

// NewInlineTable returns an inline table holding fields in order.
func NewInlineTable(fields ...Field) *Value {
	return &Value{Kind: InlineTable, Fields: fields}
}

// NewField returns a field with a single, undotted key.
func NewField(key string, v *Value) Field {
	return Field{Key: []string{key}, Value: v}
}

// Name returns the first part of the field's key.
func (f Field) Name() string {
	if len(f.Key) == 0 {
		return ""
	}
	return f.Key[0]
}

// Text renders the field as `key = value`, keeping the original key
// spelling when the field was read from a document.
func (f Field) Text() string {
	key := f.rawKey
	if key == "" {
		key = formatKey(f.Key)
	}
	return key + " = " + f.Value.Text()
}

// IsTable reports whether v is an inline or standard table.
func (v *Value) IsTable() bool {
	return v != nil && (v.Kind == InlineTable || v.Kind == StandardTable)
}

// Get returns the value stored under the single-part key in a table value.
func (v *Value) Get(key string) *Value {
	if !v.IsTable() {
		return nil
	}
	for _, f := range v.Fields {
		if len(f.Key) == 1 && f.Key[0] == key {
			return f.Value
		}
	}
	return nil
}

// AsString returns the string held by v.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != String {
		return "", false
	}
	return v.Str, true
}

// AsBool returns the boolean held by v.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.Kind != Bool {
		return false, false
	}
	return v.Bool, true
}

// Text renders v as TOML. Values read from a document render as their
// original source text.
func (v *Value) Text() string {
	if v.raw != "" {
		return v.raw
	}
	switch v.Kind {
	case String:
		return quote(v.Str)
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Array:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.Text()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case InlineTable, StandardTable:
		if len(v.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Text()
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return ""
	}
}

// String implements fmt.Stringer for diagnostics.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s", v.Kind, v.Text())
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

func formatKey(parts []string) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		if isBareKey(p) {
			out[i] = p
		} else {
			out[i] = quote(p)
		}
	}
	return strings.Join(out, ".")
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
