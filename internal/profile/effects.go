package profile

import (
	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

var (
	onOffKeys      = check.KeySet{Allowed: []string{"Blade", AuxKey}}
	workingKeys    = check.KeySet{Allowed: []string{"Color", "Flaming", "FlickeringAlways", AuxKey}}
	flamingKeys    = []string{"Size", "Speed", "Delay_ms", "Colors", AuxKey}
	flickeringKeys = []string{"Time", "Brightness", AuxKey}
	movementKeys   = check.KeySet{Allowed: []string{"Color", "Duration_ms", "SizePix", AuxKey}}
	lockupKeys     = check.KeySet{Allowed: []string{"Flicker", "Flashes", AuxKey}}
	flickerKeys    = check.KeySet{Allowed: []string{"Color", "Time", "Brightness"}}
	flashesKeys    = check.KeySet{Allowed: []string{"Period", "Color", "Duration_ms", "SizePix"}}
	blade2Keys     = check.KeySet{Allowed: []string{"Flaming", "WorkingMode", "Flickering", "DelayBeforeOn"}}
)

func (p *profile) afterWake(s check.Scope, m *dialect.Mapping) {
	check.KeySet{Allowed: []string{AuxKey}}.Check(s, m)
	p.aux(s, m)
}

func (p *profile) powerOn(s check.Scope, m *dialect.Mapping) {
	onOffKeys.Check(s, m)
	if blade, ok := check.Existence(s, m, "Blade"); ok {
		bs := s.Sub("Blade")
		check.KeySet{Allowed: []string{"Speed"}}.Check(bs, blade)
		check.Number(bs, blade, "Speed", check.Durations)
	}
	p.aux(s, m)
}

func (p *profile) powerOff(s check.Scope, m *dialect.Mapping) {
	onOffKeys.Check(s, m)
	if blade, ok := check.Existence(s, m, "Blade"); ok {
		bs := s.Sub("Blade")
		check.KeySet{Allowed: []string{"Speed", "MoveForward"}}.Check(bs, blade)
		check.Number(bs, blade, "Speed", check.Durations)
		check.Bool(bs, blade, "MoveForward")
	}
	p.aux(s, m)
}

func (p *profile) workingMode(s check.Scope, m *dialect.Mapping) {
	workingKeys.Check(s, m)
	check.Color(s, m, "Color")
	if on, ok := check.Bool(s, m, "Flaming"); ok && on && !p.doc.Has("Flaming") {
		s.Warnf("Flaming is enabled but the profile has no Flaming effect")
	}
	if on, ok := check.Bool(s, m, "FlickeringAlways"); ok && on && !p.doc.Has("Flickering") {
		s.Warnf("FlickeringAlways is enabled but the profile has no Flickering effect")
	}
	p.aux(s, m)
}

func (p *profile) flaming(s check.Scope, m *dialect.Mapping) {
	check.KeySet{Allowed: flamingKeys}.Check(s, m)
	p.flamingValues(s, m)
}

func (p *profile) flamingValues(s check.Scope, m *dialect.Mapping) {
	check.MinMax(s, m, "Size", p.pixels)
	check.MinMax(s, m, "Speed", check.Durations)
	check.MinMax(s, m, "Delay_ms", check.Durations)
	check.ColorList(s, m, "Colors")
	p.aux(s, m)
}

func (p *profile) flickering(s check.Scope, m *dialect.Mapping) {
	check.KeySet{Allowed: flickeringKeys}.Check(s, m)
	p.flickeringValues(s, m)
}

func (p *profile) flickeringValues(s check.Scope, m *dialect.Mapping) {
	check.MinMax(s, m, "Time", check.Durations)
	check.MinMax(s, m, "Brightness", check.Percent)
	p.aux(s, m)
}

// movement checks the Blaster, Clash and Stab effects.
func (p *profile) movement(s check.Scope, m *dialect.Mapping) {
	movementKeys.Check(s, m)
	check.Number(s, m, "Duration_ms", check.Durations)
	check.Number(s, m, "SizePix", p.pixels)
	check.Color(s, m, "Color")
	p.aux(s, m)
}

func (p *profile) lockup(s check.Scope, m *dialect.Mapping) {
	lockupKeys.Check(s, m)
	p.aux(s, m)

	if flicker, ok := check.Existence(s, m, "Flicker"); ok {
		fs := s.Sub("Flicker")
		flickerKeys.Check(fs, flicker)
		check.Color(fs, flicker, "Color")
		check.MinMax(fs, flicker, "Time", check.Durations)
		check.MinMax(fs, flicker, "Brightness", check.Percent)
	}
	if flashes, ok := check.Existence(s, m, "Flashes"); ok {
		fs := s.Sub("Flashes")
		flashesKeys.Check(fs, flashes)
		check.Color(fs, flashes, "Color")
		check.MinMax(fs, flashes, "Period", check.Durations)
		check.Number(fs, flashes, "Duration_ms", check.Durations)
		check.Number(fs, flashes, "SizePix", p.pixels)
	}
}

// blade2 checks the overrides of the secondary blade. Its Flaming and
// Flickering sections may also set AlwaysOn.
func (p *profile) blade2(s check.Scope, m *dialect.Mapping) {
	blade2Keys.Check(s, m)
	check.Number(s, m, "DelayBeforeOn", check.Durations)

	if flaming, ok := check.Optional(s, m, "Flaming"); ok {
		fs := s.Sub("Flaming")
		check.KeySet{Allowed: append([]string{"AlwaysOn"}, flamingKeys...)}.Check(fs, flaming)
		p.flamingValues(fs, flaming)
		check.Bool(fs, flaming, "AlwaysOn")
	}
	if flickering, ok := check.Optional(s, m, "Flickering"); ok {
		fs := s.Sub("Flickering")
		check.KeySet{Allowed: append([]string{"AlwaysOn"}, flickeringKeys...)}.Check(fs, flickering)
		p.flickeringValues(fs, flickering)
		check.Bool(fs, flickering, "AlwaysOn")
	}
	if working, ok := check.Optional(s, m, "WorkingMode"); ok {
		ws := s.Sub("WorkingMode")
		check.KeySet{Allowed: []string{"Color"}}.Check(ws, working)
		check.Color(ws, working, "Color")
	}
}
