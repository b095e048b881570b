// Package hardware validates the hardware file: blade geometry, volume,
// timings and the motion detection thresholds.
package hardware

import (
	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/dialect"
)

const (
	// DefaultLedCount is used when the blade length cannot be read.
	DefaultLedCount = 144
	// MaxTotalLeds bounds BandNumber * PixPerBand.
	MaxTotalLeds = 2000

	// Section collects findings about the top level of the file.
	Section = "Common"
)

// Angular speed, acceleration and circle thresholds of the motion sensor.
var (
	W               = check.Range{Min: 1, Max: 500}
	WPlausible      = check.Range{Min: 10, Max: 400}
	A               = check.Range{Min: 100, Max: 14000}
	APlausible      = check.Range{Min: 300, Max: 10000}
	Circle          = check.Range{Min: 100, Max: 1000}
	CirclePlausible = check.Range{Min: 200, Max: 800}
	HitLevel        = check.Range{Min: -check.BigNumber, Max: -1}

	bandNumber          = check.Range{Min: 0, Max: 8}
	bandNumberPlausible = check.Range{Min: 1, Max: 8}
	pixPerBand          = check.Range{Min: 0, Max: DefaultLedCount}
	pixPerBandPlausible = check.Range{Min: 1, Max: DefaultLedCount}
	counter             = check.Range{Min: 1, Max: 10}
	counterPlausible    = check.Range{Min: 1, Max: 5}
)

var topKeys = check.KeySet{Allowed: []string{
	"Blade", "Blade2", "Volume", "PowerOffTimeout", "DeadTime", "ClashFlashDuration", "Motion",
}}

// ValidateFile parses and validates a hardware file and returns the number of
// LEDs of the main blade. DefaultLedCount is returned when the file cannot be
// parsed or Blade.PixPerBand is not a valid value.
func ValidateFile(text string) (int, *check.Report, error) {
	doc, err := dialect.Transpile(text)
	if err != nil {
		return DefaultLedCount, nil, err
	}
	ledCount, r := Validate(doc)
	return ledCount, r, nil
}

// Validate checks a parsed hardware document.
func Validate(doc *dialect.Mapping) (int, *check.Report) {
	r := check.NewReport()
	topKeys.Check(r.Scope(Section), doc)

	ledCount := DefaultLedCount
	if n, ok := blade(r.Scope("Blade"), doc, "Blade"); ok {
		ledCount = n
	}
	blade(r.Scope("Blade2"), doc, "Blade2")
	volume(r.Scope("Volume"), doc)
	check.Number(r.Scope("PowerOffTimeout"), doc, "PowerOffTimeout", check.Durations)
	deadTime(r.Scope("DeadTime"), doc)
	check.Number(r.Scope("ClashFlashDuration"), doc, "ClashFlashDuration", check.Durations)
	motion(r, doc)

	return ledCount, r
}

// blade checks one blade section and returns its PixPerBand when valid.
func blade(s check.Scope, doc *dialect.Mapping, key string) (int, bool) {
	m, ok := check.Existence(s, doc, key)
	if !ok {
		return 0, false
	}
	check.KeySet{Allowed: []string{"BandNumber", "PixPerBand"}}.Check(s, m)

	bands, bandsOK := check.NumberWarn(s, m, "BandNumber", bandNumber, bandNumberPlausible)
	pix, pixOK := check.NumberWarn(s, m, "PixPerBand", pixPerBand, pixPerBandPlausible)
	if bandsOK && pixOK && bands*pix > MaxTotalLeds {
		s.Errorf("total number of LEDs (BandNumber * PixPerBand = %d) must not exceed %d", bands*pix, MaxTotalLeds)
	}
	return int(pix), pixOK
}

func volume(s check.Scope, doc *dialect.Mapping) {
	m, ok := check.Existence(s, doc, "Volume")
	if !ok {
		return
	}
	keys := []string{"Common", "CoarseLow", "CoarseMid", "CoarseHigh"}
	check.KeySet{Allowed: keys}.Check(s, m)
	for _, key := range keys {
		check.Number(s, m, key, check.Percent)
	}
}

func deadTime(s check.Scope, doc *dialect.Mapping) {
	m, ok := check.Existence(s, doc, "DeadTime")
	if !ok {
		return
	}
	keys := []string{"AfterPowerOn", "AfterBlaster", "AfterClash"}
	check.KeySet{Allowed: keys}.Check(s, m)
	for _, key := range keys {
		check.Number(s, m, key, check.Durations)
	}
}
