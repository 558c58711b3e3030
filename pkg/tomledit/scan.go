package tomledit

import (
	"fmt"

	"github.com/pelletier/go-toml/v2/unstable"
)

type exprKind int

const (
	exprComment exprKind = iota
	exprKeyValue
	exprTable
	exprArrayTable
)

// expression is one top-level TOML expression and the bytes it occupies.
// end excludes the whitespace and newline that follow the expression.
type expression struct {
	kind  exprKind
	start int
	end   int

	// header is the table the expression belongs to; for table headers it
	// is the header's own key.
	header  []string
	inArray bool

	field Field // key/value pairs only
}

func (e *expression) path() []string {
	p := make([]string, 0, len(e.header)+len(e.field.Key))
	p = append(p, e.header...)
	return append(p, e.field.Key...)
}

// scanner turns go-toml's AST into owned values carrying byte offsets.
// Nodes returned by the parser are only valid until the next expression, so
// everything is copied out while the expression is current.
type scanner struct {
	p    *unstable.Parser
	data []byte
}

func index(data []byte) ([]expression, error) {
	p := &unstable.Parser{KeepComments: true}
	p.Reset(data)
	s := &scanner{p: p, data: data}

	var (
		exprs   []expression
		header  []string
		inArray bool
	)
	for p.NextExpression() {
		n := p.Expression()
		switch n.Kind {
		case unstable.Comment:
			exprs = append(exprs, expression{kind: exprComment, start: int(n.Raw.Offset)})
		case unstable.Table, unstable.ArrayTable:
			key, keyStart, _ := s.key(n.Key())
			header, inArray = key, n.Kind == unstable.ArrayTable
			kind := exprTable
			if inArray {
				kind = exprArrayTable
			}
			exprs = append(exprs, expression{kind: kind, start: s.headerStart(keyStart), header: key, inArray: inArray})
		case unstable.KeyValue:
			f, keyStart, err := s.keyValue(n)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expression{
				kind:    exprKeyValue,
				start:   keyStart,
				header:  header,
				inArray: inArray,
				field:   f,
			})
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}

	for i := range exprs {
		limit := len(data)
		if i+1 < len(exprs) {
			limit = exprs[i+1].start
		}
		end := limit
		for end > exprs[i].start && isSpace(data[end-1]) {
			end--
		}
		exprs[i].end = end
	}
	return exprs, nil
}

func (s *scanner) key(it unstable.Iterator) (parts []string, start, end int) {
	start = -1
	for it.Next() {
		k := it.Node()
		parts = append(parts, string(k.Data))
		if start < 0 {
			start = int(k.Raw.Offset)
		}
		end = int(k.Raw.Offset + k.Raw.Length)
	}
	return parts, start, end
}

// headerStart walks back from a header's key to its opening bracket(s).
func (s *scanner) headerStart(keyStart int) int {
	i := keyStart
	for i > 0 && (s.data[i-1] == '[' || isBlank(s.data[i-1])) {
		i--
	}
	for i < keyStart && isBlank(s.data[i]) {
		i++
	}
	return i
}

func (s *scanner) keyValue(n *unstable.Node) (Field, int, error) {
	parts, start, keyEnd := s.key(n.Key())
	pos := s.skipBlank(keyEnd)
	if pos >= len(s.data) || s.data[pos] != '=' {
		return Field{}, 0, fmt.Errorf("tomledit: expected '=' after key at offset %d", keyEnd)
	}
	pos = s.skipBlank(pos + 1)
	v, err := s.value(n.Value(), pos)
	if err != nil {
		return Field{}, 0, err
	}
	return Field{Key: parts, Value: v, rawKey: string(s.data[start:keyEnd])}, start, nil
}

func (s *scanner) span(n *unstable.Node) (int, int) {
	r := n.Raw
	if r.Length == 0 {
		r = s.p.Range(n.Data)
	}
	return int(r.Offset), int(r.Offset + r.Length)
}

func (s *scanner) value(n *unstable.Node, start int) (*Value, error) {
	v := &Value{start: start}
	switch n.Kind {
	case unstable.String:
		v.Kind, v.Str = String, string(n.Data)
		v.start, v.end = s.span(n)
	case unstable.Bool:
		v.Kind, v.Bool = Bool, string(n.Data) == "true"
		v.start, v.end = s.span(n)
	case unstable.Integer:
		v.Kind = Integer
		v.start, v.end = s.span(n)
	case unstable.Float:
		v.Kind = Float
		v.start, v.end = s.span(n)
	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		v.Kind = Datetime
		v.start, v.end = s.span(n)
	case unstable.Array:
		v.Kind = Array
		pos := start + 1
		it := n.Children()
		for it.Next() {
			c := it.Node()
			if c.Kind == unstable.Comment {
				continue
			}
			item, err := s.value(c, s.skipFiller(pos))
			if err != nil {
				return nil, err
			}
			v.Items = append(v.Items, item)
			pos = item.end
		}
		end, err := s.expect(s.skipFiller(pos), ']')
		if err != nil {
			return nil, err
		}
		v.end = end
	case unstable.InlineTable:
		v.Kind = InlineTable
		v.start = int(n.Raw.Offset)
		pos := v.start + 1
		it := n.Children()
		for it.Next() {
			f, _, err := s.keyValue(it.Node())
			if err != nil {
				return nil, err
			}
			v.Fields = append(v.Fields, f)
			pos = f.Value.end
		}
		end, err := s.expect(s.skipFiller(pos), '}')
		if err != nil {
			return nil, err
		}
		v.end = end
	default:
		return nil, fmt.Errorf("tomledit: unexpected %s node at offset %d", n.Kind, start)
	}
	v.raw = string(s.data[v.start:v.end])
	return v, nil
}

func (s *scanner) expect(pos int, c byte) (int, error) {
	if pos >= len(s.data) || s.data[pos] != c {
		return 0, fmt.Errorf("tomledit: expected %q at offset %d", c, pos)
	}
	return pos + 1, nil
}

func (s *scanner) skipBlank(pos int) int {
	for pos < len(s.data) && isBlank(s.data[pos]) {
		pos++
	}
	return pos
}

// skipFiller skips whitespace, newlines, separators and comments between
// the elements of an array or inline table.
func (s *scanner) skipFiller(pos int) int {
	for pos < len(s.data) {
		switch c := s.data[pos]; {
		case isSpace(c), c == ',':
			pos++
		case c == '#':
			for pos < len(s.data) && s.data[pos] != '\n' {
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func isSpace(c byte) bool { return isBlank(c) || c == '\n' || c == '\r' }
