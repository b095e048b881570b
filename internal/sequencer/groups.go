package sequencer

import (
	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

var groupKeys = check.KeySet{
	Allowed:  []string{"Name", "Leds"},
	Required: []string{"Name", "Leds"},
}

// validateGroups declares every well-formed group in t. A group with errors
// is not declared, so sequencers referring to it fail as well.
func validateGroups(s check.Scope, n dialect.Node, t *check.Tracker) {
	list, err := dialect.AsSequence(n)
	if err != nil {
		s.Errorf("%s must be a list of {Name: name, Leds: [Led1, ...]}", GroupsKey)
		return
	}

	for i, item := range list {
		gs := s.Sub("group %d", i+1)
		g, err := dialect.AsMapping(item)
		if err != nil {
			gs.Errorf("group must be formatted as {Name: name, Leds: [Led1, ...]}")
			continue
		}
		groupKeys.Check(gs, g)

		name, nameOK := check.String(gs, g, "Name")
		if nameOK && name == "" {
			gs.Errorf("Name must not be empty")
			nameOK = false
		}
		var leds []int
		ledsOK := false
		if n, ok := g.Get("Leds"); ok {
			leds, ledsOK = ledList(gs, "Leds", n)
		}
		if !nameOK || !ledsOK {
			continue
		}
		if !t.DeclareGroup(name, leds) {
			gs.Errorf("group %s is declared more than once", name)
		}
	}
}
