// Package profile validates the profiles file. Every top-level key is a
// profile holding optional effect sections.
package profile

import (
	"strings"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

// AuxKey names the auxiliary LED effect of an effect section.
const AuxKey = "AuxLedsEffect"

type effect struct {
	name  string
	check func(*profile, check.Scope, *dialect.Mapping)
}

var effects = []effect{
	{"PowerOn", (*profile).powerOn},
	{"AfterWake", (*profile).afterWake},
	{"PowerOff", (*profile).powerOff},
	{"WorkingMode", (*profile).workingMode},
	{"Flaming", (*profile).flaming},
	{"Flickering", (*profile).flickering},
	{"Blaster", (*profile).movement},
	{"Clash", (*profile).movement},
	{"Stab", (*profile).movement},
	{"Lockup", (*profile).lockup},
	{"Blade2", (*profile).blade2},
}

// EffectNames lists the effects a profile may configure.
func EffectNames() []string {
	names := make([]string, len(effects))
	for i, e := range effects {
		names[i] = e.name
	}
	return names
}

// ValidateFile parses and validates a profiles file. ledCount bounds every
// pixel size; auxEffects are the auxiliary effects AuxLedsEffect may name.
func ValidateFile(text string, ledCount int, auxEffects []string) (*check.Report, error) {
	doc, err := dialect.Transpile(text)
	if err != nil {
		return nil, err
	}
	return Validate(doc, ledCount, auxEffects), nil
}

// Validate checks a parsed profiles document.
func Validate(doc *dialect.Mapping, ledCount int, auxEffects []string) *check.Report {
	r := check.NewReport()
	for _, keys := range doc.Collisions() {
		r.Errorf(keys[0], "profiles %s differ only in case, only the first one is checked", strings.Join(keys, ", "))
	}

	aux := check.NewNameSet(auxEffects...)
	seen := check.NewNameSet()
	for _, e := range doc.Entries {
		if _, dup := seen.Add(e.Key); dup {
			continue
		}
		m, err := dialect.AsMapping(e.Value)
		if err != nil {
			r.Errorf(e.Key, "profile must be formatted as {Effect: {...}, ...}, this profile is skipped")
			continue
		}
		p := &profile{
			name:     e.Key,
			doc:      m,
			pixels:   check.Range{Min: 0, Max: int64(ledCount)},
			auxNames: aux,
		}
		p.validate(r)
	}
	return r
}

type profile struct {
	name     string
	doc      *dialect.Mapping
	pixels   check.Range
	auxNames *check.NameSet
}

func (p *profile) validate(r *check.Report) {
	check.KeySet{Allowed: EffectNames()}.Check(r.Scope(p.name), p.doc)
	for _, e := range effects {
		s := r.Scope(p.name + "/" + e.name)
		m, ok := check.Optional(s, p.doc, e.name)
		if !ok {
			continue
		}
		e.check(p, s, m)
	}
}

// aux checks the AuxLedsEffect reference of an effect section. An unknown
// name is only a warning: the firmware skips effects it does not know.
func (p *profile) aux(s check.Scope, m *dialect.Mapping) {
	name, ok := check.String(s, m, AuxKey)
	if ok && !p.auxNames.Has(name) {
		s.Warnf("unknown auxiliary effect %s, it will be skipped", name)
	}
}
