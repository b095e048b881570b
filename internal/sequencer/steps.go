package sequencer

import (
	"strings"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

var (
	stepKeys   = []string{"Repeat", "Wait", "Brightness", "Smooth", "Name"}
	actionKeys = []string{"Repeat", "Brightness", "Wait"}
	repeatKeys = check.KeySet{
		Allowed:  []string{"StartingFrom", "Count"},
		Required: []string{"StartingFrom", "Count"},
	}
	copyModes = check.NewNameSet("CopyRed", "CopyBlue", "CopyGreen")
	// Wait stays strictly below the duration ceiling.
	waitRange = check.Range{Min: 0, Max: check.BigNumber - 1}
)

// Forever is the Count of a repeat that never ends. It is matched exactly.
const Forever = "forever"

func sequence(s check.Scope, seq *dialect.Mapping) (dialect.Sequence, bool) {
	n, ok := seq.Get("Sequence")
	if !ok {
		s.Errorf("no Sequence steps, this sequencer is skipped")
		return nil, false
	}
	steps, err := dialect.AsSequence(n)
	if err != nil || len(steps) == 0 {
		s.Errorf("Sequence must be a non-empty list of steps, this sequencer is skipped")
		return nil, false
	}
	return steps, true
}

func stepName(step dialect.Node) string {
	m, err := dialect.AsMapping(step)
	if err != nil {
		return ""
	}
	n, ok := m.Get("Name")
	if !ok {
		return ""
	}
	name, _ := dialect.AsString(n)
	return name
}

// stepNames collects the names of all steps before any step is checked, so a
// repeat may refer to a later step. Each duplicated name is reported once.
func stepNames(s check.Scope, steps dialect.Sequence) *check.NameSet {
	names := check.NewNameSet()
	reported := check.NewNameSet()
	for _, step := range steps {
		name := stepName(step)
		if name == "" {
			continue
		}
		if prev, dup := names.Add(name); dup {
			if _, again := reported.Add(name); !again {
				s.Errorf("step name %s is used more than once", prev)
			}
		}
	}
	return names
}

func stepScope(s check.Scope, i int, step dialect.Node) check.Scope {
	if name := stepName(step); name != "" {
		return s.Sub("step %d (%s)", i+1, name)
	}
	return s.Sub("step %d", i+1)
}

func validateStep(s check.Scope, n dialect.Node, ledCount int, names *check.NameSet) {
	step, err := dialect.AsMapping(n)
	if err != nil {
		s.Errorf("step must be formatted as {key: value, ...}")
		return
	}
	if !stepKeysValid(s, step) {
		return
	}

	check.String(s, step, "Name")
	brightness(s, step, ledCount)
	check.Number(s, step, "Wait", waitRange)
	if step.Has("Smooth") {
		if !step.Has("Brightness") {
			s.Errorf("Smooth is only allowed in steps with Brightness")
		} else {
			check.Number(s, step, "Smooth", check.Durations)
		}
	}
	repeat(s, step, names)
}

func stepKeysValid(s check.Scope, step *dialect.Mapping) bool {
	ok := true
	for _, keys := range step.Collisions() {
		s.Errorf("keys %s differ only in case", strings.Join(keys, ", "))
		ok = false
	}
	allowed := check.KeySet{Allowed: stepKeys}
	for _, key := range step.Keys() {
		if !allowed.Allows(key) {
			s.Errorf("invalid key %s, a step may only contain %s", key, strings.Join(stepKeys, ", "))
			ok = false
		}
	}
	action := false
	for _, key := range actionKeys {
		if step.Has(key) {
			action = true
		}
	}
	if !action {
		s.Errorf("each step must contain Brightness, Repeat or Wait")
		ok = false
	}
	return ok
}

func brightness(s check.Scope, step *dialect.Mapping, ledCount int) {
	n, ok := step.Get("Brightness")
	if !ok {
		return
	}
	list, err := dialect.AsSequence(n)
	if err != nil {
		s.Errorf("Brightness must be a list with one value per LED")
		return
	}
	if len(list) != ledCount {
		s.Errorf("incorrect leds number: Brightness has %d values for %d LEDs", len(list), ledCount)
		return
	}
	for i, v := range list {
		switch b := v.(type) {
		case dialect.Integer:
			if !check.Percent.Contains(int64(b)) {
				s.Errorf("brightness of LED %d must be between 0 and 100", i+1)
			}
		case dialect.String:
			if !copyModes.Has(string(b)) {
				s.Errorf("brightness of LED %d must be 0..100 or one of %s", i+1, strings.Join(copyModes.Names(), ", "))
			}
		default:
			s.Errorf("brightness of LED %d must be 0..100 or one of %s", i+1, strings.Join(copyModes.Names(), ", "))
		}
	}
}

func repeat(s check.Scope, step *dialect.Mapping, names *check.NameSet) {
	n, ok := step.Get("Repeat")
	if !ok {
		return
	}
	rep, err := dialect.AsMapping(n)
	if err != nil {
		s.Errorf("Repeat must be formatted as {StartingFrom: step name, Count: number}")
		return
	}
	rs := s.Sub("Repeat")
	repeatKeys.Check(rs, rep)

	if from, ok := rep.Get("StartingFrom"); ok {
		name, err := dialect.AsString(from)
		if err != nil || !names.Has(name) {
			rs.Errorf("StartingFrom must be the name of a step of this sequence")
		}
	}
	if count, ok := rep.Get("Count"); ok {
		switch c := count.(type) {
		case dialect.Integer:
			if c <= 0 {
				rs.Errorf("Count must be positive")
			}
		case dialect.String:
			if string(c) != Forever {
				rs.Errorf("Count must be a number or %s", Forever)
			}
		default:
			rs.Errorf("Count must be a number or %s", Forever)
		}
	}
}
