// Package frontmatter reads and writes the `---` delimited YAML block at the
// head of a markdown document.
package frontmatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a frontmatter block
const Delimiter = "---"

// DateLayout is how date values are written
const DateLayout = "2006-01-02"

// Split separates a document into its frontmatter fields and body.
//
// ok is false when the document does not start with a delimiter line, the
// block is never closed, or the block is not a YAML mapping. In that case
// fields is empty and body is the whole document. An empty block is valid.
func Split(doc string) (fields map[string]any, body string, ok bool) {
	text := strings.TrimPrefix(doc, "\ufeff")

	first, rest, found := strings.Cut(text, "\n")
	if !found || !isDelimiter(first) {
		return map[string]any{}, doc, false
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if isDelimiter(line) {
			fields, ok := decode(strings.Join(block, "\n"))
			if !ok {
				return map[string]any{}, doc, false
			}
			if !more {
				tail = ""
			}
			return fields, tail, true
		}
		if !more {
			return map[string]any{}, doc, false
		}
		block = append(block, line)
		rest = tail
	}
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, "\r") == Delimiter
}

func decode(block string) (map[string]any, bool) {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return nil, false
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, true
}

// Field is one key/value pair in emission order
type Field struct {
	Key   string
	Value any
}

// Encode writes fields as a delimited block, one line per scalar and one
// bullet line per sequence element. Order follows the slice.
func Encode(fields []Field) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")

	for _, f := range fields {
		switch v := f.Value.(type) {
		case []string:
			if len(v) == 0 {
				fmt.Fprintf(&b, "%s: []\n", f.Key)
				continue
			}
			fmt.Fprintf(&b, "%s:\n", f.Key)
			for _, elem := range v {
				fmt.Fprintf(&b, "  - %s\n", Scalar(elem))
			}
		default:
			fmt.Fprintf(&b, "%s: %s\n", f.Key, Scalar(v))
		}
	}

	b.WriteString(Delimiter + "\n")
	return b.String()
}

// Scalar renders a single value so that decoding it yields the same value.
// Strings are quoted only when a plain scalar would be read back as something
// else (a number, a bool, a date, or a key/value pair).
func Scalar(v any) string {
	switch v := v.(type) {
	case string:
		return quote(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(DateLayout)
	case nil:
		return "null"
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(s string) string {
	if strings.ContainsAny(s, "\r\n") {
		return strconv.Quote(s)
	}
	out, err := yaml.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(string(out), "\n")
}
