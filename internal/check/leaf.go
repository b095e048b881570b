package check

import (
	"fmt"
	"strings"

	"github.com/re-cinq/saberlint/internal/dialect"
)

// BigNumber is the sanity ceiling shared by every duration field.
const BigNumber = 36_000_000

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// Durations is the range of every millisecond field.
var Durations = Range{0, BigNumber}

// Percent is the range of volume, brightness and percentage fields.
var Percent = Range{0, 100}

// Existence returns the mapping stored under key, reporting an error when it
// is absent or not a mapping.
func Existence(s Scope, m *dialect.Mapping, key string) (*dialect.Mapping, bool) {
	n, ok := m.Get(key)
	if !ok {
		s.Errorf("%s settings are absent", key)
		return nil, false
	}
	sub, err := dialect.AsMapping(n)
	if err != nil {
		s.Errorf("%s must contain settings formatted as {key: value, ...}", key)
		return nil, false
	}
	return sub, true
}

// Optional is Existence for sections that may be left out.
func Optional(s Scope, m *dialect.Mapping, key string) (*dialect.Mapping, bool) {
	if !m.Has(key) {
		return nil, false
	}
	return Existence(s, m, key)
}

// Number checks an optional integer field against r. The returned bool is
// true only when the field is present and valid.
func Number(s Scope, m *dialect.Mapping, key string, r Range) (int64, bool) {
	n, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	v, err := dialect.AsInteger(n)
	if err != nil {
		s.Errorf("%s must be an integer", key)
		return 0, false
	}
	if !r.Contains(v) {
		s.Errorf("%s must be between %d and %d", key, r.Min, r.Max)
		return v, false
	}
	return v, true
}

// NumberWarn is Number with a narrower plausible range: a value inside hard
// but outside plausible is a warning, never an error.
func NumberWarn(s Scope, m *dialect.Mapping, key string, hard, plausible Range) (int64, bool) {
	v, ok := Number(s, m, key, hard)
	if ok && !plausible.Contains(v) {
		s.Warnf("%s value %d is outside the recommended range %d..%d, effect might not work", key, v, plausible.Min, plausible.Max)
	}
	return v, ok
}

// MinMax checks a field that is either an integer in r or a mapping
// {Min: a, Max: b} with both bounds in r and a <= b.
func MinMax(s Scope, m *dialect.Mapping, key string, r Range) {
	n, ok := m.Get(key)
	if !ok {
		return
	}
	switch v := n.(type) {
	case dialect.Integer:
		if !r.Contains(int64(v)) {
			s.Errorf("%s must be between %d and %d", key, r.Min, r.Max)
		}
	case *dialect.Mapping:
		sub := s.Sub(key)
		KeySet{Allowed: []string{"Min", "Max"}, Required: []string{"Min", "Max"}}.Check(sub, v)
		lo, okLo := Number(sub, v, "Min", r)
		hi, okHi := Number(sub, v, "Max", r)
		if okLo && okHi && lo > hi {
			sub.Errorf("Min must not be greater than Max")
		}
	default:
		s.Errorf("%s must be an integer or {Min: value, Max: value}", key)
	}
}

// Bool checks an optional boolean field.
func Bool(s Scope, m *dialect.Mapping, key string) (value, ok bool) {
	n, present := m.Get(key)
	if !present {
		return false, false
	}
	v, err := dialect.AsBoolean(n)
	if err != nil {
		s.Errorf("%s must be true or false", key)
		return false, false
	}
	return v, true
}

// String checks an optional string field.
func String(s Scope, m *dialect.Mapping, key string) (string, bool) {
	n, present := m.Get(key)
	if !present {
		return "", false
	}
	v, err := dialect.AsString(n)
	if err != nil {
		s.Errorf("%s must be a string", key)
		return "", false
	}
	return v, true
}

// Color checks an optional colour field: [R, G, B] with components 0..255,
// or a colour name passed through to the firmware.
func Color(s Scope, m *dialect.Mapping, key string) bool {
	n, ok := m.Get(key)
	if !ok {
		return true
	}
	return colorNode(s, n, key)
}

// ColorList checks an optional non-empty list of colours.
func ColorList(s Scope, m *dialect.Mapping, key string) bool {
	n, ok := m.Get(key)
	if !ok {
		return true
	}
	list, err := dialect.AsSequence(n)
	if err != nil || len(list) == 0 {
		s.Errorf("%s must be a non-empty list of colors", key)
		return false
	}
	valid := true
	for i, c := range list {
		if !colorNode(s, c, fmt.Sprintf("%s item %d", key, i+1)) {
			valid = false
		}
	}
	return valid
}

func colorNode(s Scope, n dialect.Node, label string) bool {
	switch v := n.(type) {
	case dialect.String:
		return true
	case dialect.Sequence:
		if len(v) == 3 {
			valid := true
			for _, c := range v {
				i, err := dialect.AsInteger(c)
				if err != nil || i < 0 || i > 255 {
					valid = false
				}
			}
			if valid {
				return true
			}
		}
	}
	s.Errorf("%s must be [R, G, B] with values from 0 to 255 or a color name", label)
	return false
}

// KeySet declares the keys a mapping may hold. Unknown keys are tolerated
// with a warning; missing required keys and keys differing only in case are
// errors.
type KeySet struct {
	Allowed  []string
	Required []string
}

// Check validates the keys of m.
func (k KeySet) Check(s Scope, m *dialect.Mapping) {
	for _, group := range m.Collisions() {
		s.Errorf("keys %s differ only in case", strings.Join(group, ", "))
	}
	for _, key := range m.Keys() {
		if !k.Allows(key) {
			s.Warnf("unknown key %s is ignored", key)
		}
	}
	for _, req := range k.Required {
		if !m.Has(req) {
			s.Errorf("%s is required", req)
		}
	}
}

// Allows reports whether key matches one of the allowed keys.
func (k KeySet) Allows(key string) bool {
	for _, a := range k.Allowed {
		if dialect.EqualFold(a, key) {
			return true
		}
	}
	return false
}
