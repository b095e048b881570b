package hardware

import (
	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

type movement struct {
	name  string
	keys  []string
	check func(check.Scope, *dialect.Mapping)
}

var movements = []movement{
	{"Swing", []string{"HighW", "WPercent", "Circle", "CircleW"}, swing},
	{"Spin", []string{"Enabled", "Counter", "W", "Circle", "WLow"}, spin},
	{"Clash", []string{"HighA", "Length", "HitLevel", "LowW"}, clash},
	{"Stab", []string{"Enabled", "HighA", "LowW", "HitLevel", "Length", "Percent"}, stab},
	{"Screw", []string{"Enabled", "LowW", "HighW"}, screw},
}

// motion checks the Motion section. Every movement is reported under its own
// section name.
func motion(r *check.Report, doc *dialect.Mapping) {
	s := r.Scope("Motion")
	m, ok := check.Existence(s, doc, "Motion")
	if !ok {
		return
	}
	allowed := make([]string, len(movements))
	for i, mv := range movements {
		allowed[i] = mv.name
	}
	check.KeySet{Allowed: allowed}.Check(s, m)

	for _, mv := range movements {
		ms := r.Scope(mv.name)
		sub, ok := check.Existence(ms, m, mv.name)
		if !ok {
			continue
		}
		check.KeySet{Allowed: mv.keys}.Check(ms, sub)
		mv.check(ms, sub)
	}
}

func swing(s check.Scope, m *dialect.Mapping) {
	check.NumberWarn(s, m, "HighW", W, WPlausible)
	check.Number(s, m, "WPercent", check.Percent)
	check.NumberWarn(s, m, "Circle", Circle, CirclePlausible)
	check.NumberWarn(s, m, "CircleW", W, WPlausible)
}

func spin(s check.Scope, m *dialect.Mapping) {
	check.Bool(s, m, "Enabled")
	check.NumberWarn(s, m, "Counter", counter, counterPlausible)
	w, wOK := check.NumberWarn(s, m, "W", W, WPlausible)
	check.NumberWarn(s, m, "Circle", Circle, CirclePlausible)
	low, lowOK := check.NumberWarn(s, m, "WLow", W, WPlausible)
	if wOK && lowOK && low >= w {
		s.Warnf("WLow should be less than W, effect might not work")
	}
}

func clash(s check.Scope, m *dialect.Mapping) {
	check.NumberWarn(s, m, "HighA", A, APlausible)
	check.Number(s, m, "Length", check.Durations)
	check.Number(s, m, "HitLevel", HitLevel)
	check.NumberWarn(s, m, "LowW", W, WPlausible)
}

func stab(s check.Scope, m *dialect.Mapping) {
	check.Bool(s, m, "Enabled")
	check.NumberWarn(s, m, "HighA", A, APlausible)
	check.NumberWarn(s, m, "LowW", W, WPlausible)
	check.Number(s, m, "HitLevel", HitLevel)
	check.Number(s, m, "Length", check.Durations)
	check.Number(s, m, "Percent", check.Percent)
}

func screw(s check.Scope, m *dialect.Mapping) {
	check.Bool(s, m, "Enabled")
	low, lowOK := check.NumberWarn(s, m, "LowW", W, WPlausible)
	high, highOK := check.NumberWarn(s, m, "HighW", W, WPlausible)
	if lowOK && highOK && low > high {
		s.Warnf("LowW should not be greater than HighW, effect might not work")
	}
}
