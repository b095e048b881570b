// Package sequencer validates the auxiliary LED file: optional LED groups and
// the effects built from per-LED brightness sequences.
package sequencer

import (
	"strings"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

// GroupsKey is the top-level key that declares LED groups. Every other
// top-level key is an effect.
const GroupsKey = "LedGroups"

var sequencerKeys = check.KeySet{Allowed: []string{"Config", "Group", "Sequence", "Name"}}

// ValidateFile parses and validates a sequencer file. It returns the names of
// the effects that validated without errors, for the profile file to refer to.
func ValidateFile(text string) ([]string, *check.Report, error) {
	doc, err := dialect.Transpile(text)
	if err != nil {
		return nil, nil, err
	}
	t := check.NewTracker()
	r := Validate(doc, t)
	return t.Effects(), r, nil
}

// Validate checks a parsed sequencer document. Groups are declared in t
// before any effect is checked; effects without errors are recorded in t.
func Validate(doc *dialect.Mapping, t *check.Tracker) *check.Report {
	r := check.NewReport()

	for _, keys := range doc.Collisions() {
		r.Errorf(keys[0], "effects %s differ only in case, only the first one is checked", strings.Join(keys, ", "))
	}

	if n, ok := doc.Get(GroupsKey); ok {
		validateGroups(r.Scope(GroupsKey), n, t)
	}

	seen := check.NewNameSet()
	for _, e := range doc.Entries {
		if dialect.EqualFold(e.Key, GroupsKey) {
			continue
		}
		if _, dup := seen.Add(e.Key); dup {
			continue
		}
		validateEffect(r.Scope(e.Key), e.Value, t)
	}
	return r
}

func validateEffect(s check.Scope, n dialect.Node, t *check.Tracker) {
	t.BeginEffect(s.Section())

	list, err := dialect.AsSequence(n)
	if err != nil {
		s.Errorf("effect must be a list of sequencers, this effect is skipped")
		return
	}
	if len(list) == 0 {
		s.Errorf("effect has no sequencers, this effect is skipped")
		return
	}
	if len(list) > check.MaxLeds {
		s.Errorf("number of sequencers must be no more than %d, this effect is skipped", check.MaxLeds)
		return
	}

	for i, item := range list {
		validateSequencer(s.Sub("sequencer %d", i+1), item, t)
	}
	if !s.HasErrors() {
		t.DeclareEffect(t.Effect())
	}
}

func validateSequencer(s check.Scope, n dialect.Node, t *check.Tracker) {
	seq, err := dialect.AsMapping(n)
	if err != nil {
		s.Errorf("sequencer must be formatted as {Config: [...], Sequence: [...]}, this sequencer is skipped")
		return
	}
	sequencerKeys.Check(s, seq)
	check.String(s, seq, "Name")

	leds, ok := selectLeds(s, seq, t)
	if !ok {
		return
	}
	steps, ok := sequence(s, seq)
	if !ok {
		return
	}
	names := stepNames(s, steps)
	for i, step := range steps {
		validateStep(stepScope(s, i, step), step, len(leds), names)
	}
}

// selectLeds resolves the LEDs a sequencer drives, from either its Config
// list or a declared group, and claims them for the current effect.
func selectLeds(s check.Scope, seq *dialect.Mapping, t *check.Tracker) ([]int, bool) {
	cfg, hasConfig := seq.Get("Config")
	grp, hasGroup := seq.Get("Group")

	var leds []int
	ok := true
	switch {
	case hasConfig && hasGroup:
		s.Errorf("Config and Group are mutually exclusive, this sequencer is skipped")
		return nil, false
	case !hasConfig && !hasGroup:
		s.Errorf("no Config with a list of LEDs or Group name, this sequencer is skipped")
		return nil, false
	case hasGroup:
		name, err := dialect.AsString(grp)
		if err != nil {
			s.Errorf("Group must be the name of a group declared in %s, this sequencer is skipped", GroupsKey)
			return nil, false
		}
		if leds, ok = t.Group(name); !ok {
			s.Errorf("group %s is not declared in %s, this sequencer is skipped", name, GroupsKey)
			return nil, false
		}
	default:
		leds, ok = ledList(s, "Config", cfg)
	}

	for _, led := range leds {
		if !t.Claim(led) {
			s.Errorf("%s is already used by another sequencer of this effect", check.LEDName(led))
			ok = false
		}
	}
	return leds, ok
}

// ledList reads a non-empty list of distinct LEDs. The LEDs that parsed are
// returned even when others did not.
func ledList(s check.Scope, key string, n dialect.Node) ([]int, bool) {
	list, err := dialect.AsSequence(n)
	if err != nil {
		s.Errorf("%s must be a list of LEDs (for example [Led1, Led2])", key)
		return nil, false
	}
	if len(list) == 0 {
		s.Errorf("%s selects no LEDs", key)
		return nil, false
	}

	ok := true
	seen := make(map[int]bool, len(list))
	leds := make([]int, 0, len(list))
	for _, item := range list {
		led, err := check.ParseLED(item)
		if err != nil {
			s.Errorf("%s: %v", key, err)
			ok = false
			continue
		}
		if seen[led] {
			s.Errorf("%s: %s is listed more than once", key, check.LEDName(led))
			ok = false
			continue
		}
		seen[led] = true
		leds = append(leds, led)
	}
	return leds, ok
}
