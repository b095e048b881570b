// Package dialect reads the forgiving config dialect used by the saber
// firmware: block and line comments, unquoted identifiers, trailing commas and
// an implicit root object. Text is rewritten into strict JSON and parsed into
// an order-preserving Node tree; parse errors are reported at the line of the
// original text.
package dialect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	identRe         = regexp.MustCompile(`[A-Za-z]\w+`)
	trailingCommaRe = regexp.MustCompile(`,([\s\x00]*[\]}])`)
)

// ParseError is a failure to read a document. Line is 1-based and refers to
// the original text, before comments were removed.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// mark stands in for a removed multi-line block comment until the rewrite is
// done, so that the position of the removal survives the later rewrites.
const mark = "\x00"

// shift records one removed multi-line block comment: the number of newlines
// it swallowed and, once the marks are dropped, its offset in the final text.
type shift struct {
	offset int64
	lines  int
}

type lineMap []shift

// original maps an offset of the final text back to a line of the source
// text: every removal at or before off adds the lines it swallowed.
func (lm lineMap) original(text string, off int64) int {
	line := lineAt(text, off)
	for _, sh := range lm {
		if sh.offset <= off {
			line += sh.lines
		}
	}
	return line
}

// marked maps an offset of text that still holds marks back to the source.
func (lm lineMap) marked(text string, off int64) int {
	if off > int64(len(text)) {
		off = int64(len(text))
	}
	line := lineAt(text, off)
	for _, sh := range lm[:strings.Count(text[:off], mark)] {
		line += sh.lines
	}
	return line
}

// Transpile parses config-dialect text into its root mapping.
// Any failure is returned as a *ParseError.
func Transpile(text string) (*Mapping, error) {
	prepared, lm, err := rewrite(text)
	if err != nil {
		return nil, err
	}
	root, err := decode(prepared)
	if err != nil {
		return nil, toParseError(err, prepared, lm)
	}
	return root, nil
}

// rewrite turns dialect text into strict JSON. Line structure is preserved
// apart from removed block comments, which lm accounts for.
func rewrite(text string) (string, lineMap, error) {
	if i := strings.Index(text, mark); i >= 0 {
		return "", nil, &ParseError{Line: lineAt(text, int64(i)), Message: "not allowed symbol: NUL"}
	}
	text, lm, err := stripBlockComments(text)
	if err != nil {
		return "", nil, err
	}
	text = stripLineComments(text)

	if i := strings.IndexByte(text, '"'); i >= 0 {
		return "", nil, &ParseError{
			Line:    lm.marked(text, int64(i)),
			Message: `not allowed symbol: "`,
		}
	}

	text = identRe.ReplaceAllString(text, `"$0"`)
	text = strings.ReplaceAll(text, "\t", "")
	for trailingCommaRe.MatchString(text) {
		text = trailingCommaRe.ReplaceAllString(text, "$1")
	}
	return dropMarks("{"+text+"}", lm), lm, nil
}

// dropMarks removes the marks from text, recording in lm where each one was.
func dropMarks(text string, lm lineMap) string {
	var b strings.Builder
	b.Grow(len(text))
	k := 0
	for {
		i := strings.Index(text, mark)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		lm[k].offset = int64(b.Len())
		k++
		text = text[i+len(mark):]
	}
}

func stripBlockComments(text string) (string, lineMap, error) {
	var lm lineMap
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			return text, lm, nil
		}
		end := strings.Index(text[start+2:], "*/")
		if end < 0 {
			return "", nil, &ParseError{
				Line:    lm.marked(text, int64(start)),
				Message: "comment started with /* is not closed",
			}
		}
		end += start + 4
		if n := strings.Count(text[start:end], "\n"); n > 0 {
			lm = append(lm, shift{lines: n})
			text = text[:start] + mark + text[end:]
			continue
		}
		text = text[:start] + text[end:]
	}
}

func stripLineComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if j := strings.Index(line, "//"); j >= 0 {
			// marks behind the comment still stand for removed lines
			lines[i] = line[:j] + strings.Repeat(mark, strings.Count(line[j:], mark))
		}
	}
	return strings.Join(lines, "\n")
}

// lineAt returns the 1-based line holding byte offset off.
func lineAt(text string, off int64) int {
	if off > int64(len(text)) {
		off = int64(len(text))
	}
	if off < 0 {
		off = 0
	}
	return strings.Count(text[:off], "\n") + 1
}

// syntaxError mirrors json.SyntaxError for failures detected here.
type syntaxError struct {
	msg    string
	offset int64
}

func (e *syntaxError) Error() string { return e.msg }

func toParseError(err error, text string, lm lineMap) *ParseError {
	var (
		jerr *json.SyntaxError
		serr *syntaxError
		off  int64
		msg  string
	)
	switch {
	case errors.As(err, &jerr):
		off, msg = jerr.Offset, jerr.Error()
	case errors.As(err, &serr):
		off, msg = serr.offset, serr.msg
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		off, msg = int64(len(text)), "unexpected end of input"
	default:
		off, msg = 0, err.Error()
	}
	return &ParseError{Line: lm.original(text, off), Message: cleanMessage(msg)}
}

// cleanMessage drops wording that asks for quoted keys: bare identifiers are
// part of the dialect, not a mistake.
func cleanMessage(msg string) string {
	msg = strings.ReplaceAll(msg, " enclosed in double quotes", "")
	msg = strings.ReplaceAll(msg, "object key string", "object key")
	return strings.TrimPrefix(msg, "json: ")
}

func decode(text string) (*Mapping, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, &syntaxError{msg: fmt.Sprintf("unexpected %v after end of document", tok), offset: dec.InputOffset()}
	}
	return AsMapping(root)
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return decodeMapping(dec)
		}
		if t == '[' {
			return decodeSequence(dec)
		}
		return nil, &syntaxError{msg: fmt.Sprintf("invalid character '%v'", t), offset: dec.InputOffset()}
	case string:
		return String(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Integer(i), nil
		}
		return String(t.String()), nil
	case bool:
		return Boolean(t), nil
	}
	return nil, &syntaxError{msg: "null values are not supported", offset: dec.InputOffset()}
}

func decodeMapping(dec *json.Decoder) (Node, error) {
	m := &Mapping{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &syntaxError{msg: fmt.Sprintf("expected object key, got %v", tok), offset: dec.InputOffset()}
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, Entry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeSequence(dec *json.Decoder) (Node, error) {
	seq := Sequence{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		seq = append(seq, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return seq, nil
}
