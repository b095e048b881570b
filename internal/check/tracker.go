package check

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/re-cinq/saberlint/internal/dialect"
)

// MaxLeds is the number of auxiliary LEDs a sequencer can drive.
const MaxLeds = 8

// ParseLED reads an LED reference: the token LedN in any case, with N a
// single digit in 1..MaxLeds.
func ParseLED(n dialect.Node) (int, error) {
	var text string
	switch v := n.(type) {
	case dialect.String:
		text = string(v)
	case dialect.Integer:
		text = strconv.FormatInt(int64(v), 10)
	default:
		return 0, fmt.Errorf("incorrect led value, expected Led1..Led%d", MaxLeds)
	}
	f := dialect.Fold(text)
	if len(f) == len("led")+1 && strings.HasPrefix(f, "led") {
		if i := int(f[3] - '0'); i >= 1 && i <= MaxLeds {
			return i, nil
		}
	}
	return 0, fmt.Errorf("incorrect led value %s, expected Led1..Led%d", text, MaxLeds)
}

// LEDName formats an LED index the way configs spell it.
func LEDName(i int) string {
	return "Led" + strconv.Itoa(i)
}

// NameSet is a set of names compared case-insensitively that remembers the
// first spelling and declaration order.
type NameSet struct {
	names map[string]string
	order []string
}

// NewNameSet returns a set holding names.
func NewNameSet(names ...string) *NameSet {
	n := &NameSet{names: make(map[string]string)}
	for _, name := range names {
		n.Add(name)
	}
	return n
}

// Add declares name. If an equal name exists, Add returns its spelling and
// true and leaves the set unchanged.
func (n *NameSet) Add(name string) (existing string, dup bool) {
	f := dialect.Fold(name)
	if prev, ok := n.names[f]; ok {
		return prev, true
	}
	n.names[f] = name
	n.order = append(n.order, name)
	return "", false
}

// Has reports whether name was declared.
func (n *NameSet) Has(name string) bool {
	_, ok := n.names[dialect.Fold(name)]
	return ok
}

// Names returns the declared names in order.
func (n *NameSet) Names() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

type group struct {
	name string
	leds []int
}

// Tracker accumulates cross-entity state for one validation run: LEDs
// claimed within the current effect, declared LED groups and auxiliary
// effects that validated cleanly. It is owned by the caller and never shared.
type Tracker struct {
	effect  string
	claimed map[int]bool
	groups  map[string]group
	effects *NameSet
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		claimed: make(map[int]bool),
		groups:  make(map[string]group),
		effects: NewNameSet(),
	}
}

// BeginEffect starts a new claim scope: LEDs are exclusive per effect.
func (t *Tracker) BeginEffect(name string) {
	t.effect = name
	t.claimed = make(map[int]bool)
}

// Effect returns the effect whose claims are being tracked.
func (t *Tracker) Effect() string {
	return t.effect
}

// Claim marks led as used by a sequencer of the current effect. It returns
// false if a sibling already claimed it.
func (t *Tracker) Claim(led int) bool {
	if t.claimed[led] {
		return false
	}
	t.claimed[led] = true
	return true
}


// DeclareGroup records an LED group. It returns false if a group with the
// same name (ignoring case) exists.
func (t *Tracker) DeclareGroup(name string, leds []int) bool {
	f := dialect.Fold(name)
	if _, ok := t.groups[f]; ok {
		return false
	}
	t.groups[f] = group{name: name, leds: append([]int(nil), leds...)}
	return true
}

// Group returns the LEDs of a declared group.
func (t *Tracker) Group(name string) ([]int, bool) {
	g, ok := t.groups[dialect.Fold(name)]
	if !ok {
		return nil, false
	}
	return append([]int(nil), g.leds...), true
}

// DeclareEffect records an auxiliary effect that validated without errors.
func (t *Tracker) DeclareEffect(name string) {
	t.effects.Add(name)
}

// Effects returns the recorded auxiliary effects in declaration order.
func (t *Tracker) Effects() []string {
	return t.effects.Names()
}
