package dialect

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// ErrKind is wrapped by every accessor that finds a node of the wrong kind.
var ErrKind = errors.New("unexpected value kind")

// Kind identifies the variant of a Node.
type Kind int

const (
	KindMapping Kind = iota
	KindSequence
	KindString
	KindInteger
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "list"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	}
	return "unknown"
}

// Node is one value of a parsed document. The set of implementations is
// closed: *Mapping, Sequence, String, Integer and Boolean.
type Node interface {
	Kind() Kind
	node()
}

// Entry is one key/value pair of a Mapping, with the key as written.
type Entry struct {
	Key   string
	Value Node
}

// Mapping is an ordered object. Keys keep their original spelling but are
// always looked up case-insensitively.
type Mapping struct {
	Entries []Entry
}

type (
	Sequence []Node
	String   string
	Integer  int64
	Boolean  bool
)

func (*Mapping) Kind() Kind { return KindMapping }
func (Sequence) Kind() Kind { return KindSequence }
func (String) Kind() Kind   { return KindString }
func (Integer) Kind() Kind  { return KindInteger }
func (Boolean) Kind() Kind  { return KindBoolean }

func (*Mapping) node() {}
func (Sequence) node() {}
func (String) node()   {}
func (Integer) node()  {}
func (Boolean) node()  {}

// Fold returns the case-folded form used for every key and name comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Resolve returns the stored key matching template case-insensitively.
// When several keys fold to the same string the first one in document order
// wins; Collisions reports such keys.
func (m *Mapping) Resolve(template string) (string, bool) {
	if m == nil {
		return "", false
	}
	want := Fold(template)
	for _, e := range m.Entries {
		if Fold(e.Key) == want {
			return e.Key, true
		}
	}
	return "", false
}

// Get returns the value stored under the key matching template.
func (m *Mapping) Get(template string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	want := Fold(template)
	for _, e := range m.Entries {
		if Fold(e.Key) == want {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether a key matching template exists.
func (m *Mapping) Has(template string) bool {
	_, ok := m.Resolve(template)
	return ok
}

// Keys returns the stored keys in document order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Collisions returns every group of two or more keys that differ only in case,
// in document order of their first member.
func (m *Mapping) Collisions() [][]string {
	if m == nil {
		return nil
	}
	groups := make(map[string][]string)
	var order []string
	for _, e := range m.Entries {
		f := Fold(e.Key)
		if _, seen := groups[f]; !seen {
			order = append(order, f)
		}
		groups[f] = append(groups[f], e.Key)
	}
	var out [][]string
	for _, f := range order {
		if len(groups[f]) > 1 {
			out = append(out, groups[f])
		}
	}
	return out
}

func kindError(want Kind, n Node) error {
	if n == nil {
		return fmt.Errorf("%w: expected %s, got nothing", ErrKind, want)
	}
	return fmt.Errorf("%w: expected %s, got %s", ErrKind, want, n.Kind())
}

// AsMapping returns n as a mapping.
func AsMapping(n Node) (*Mapping, error) {
	if m, ok := n.(*Mapping); ok && m != nil {
		return m, nil
	}
	return nil, kindError(KindMapping, n)
}

// AsSequence returns n as a list.
func AsSequence(n Node) (Sequence, error) {
	if s, ok := n.(Sequence); ok {
		return s, nil
	}
	return nil, kindError(KindSequence, n)
}

// AsString returns n as a string scalar.
func AsString(n Node) (string, error) {
	if s, ok := n.(String); ok {
		return string(s), nil
	}
	return "", kindError(KindString, n)
}

// AsInteger returns n as an integer scalar.
func AsInteger(n Node) (int64, error) {
	if i, ok := n.(Integer); ok {
		return int64(i), nil
	}
	return 0, kindError(KindInteger, n)
}

// AsBoolean returns n as a boolean. The transpiler quotes bare true/false,
// so string scalars spelling a boolean are accepted as well.
func AsBoolean(n Node) (bool, error) {
	switch v := n.(type) {
	case Boolean:
		return bool(v), nil
	case String:
		switch Fold(string(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, kindError(KindBoolean, n)
}
