package engine_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/dialect"
	"github.com/re-cinq/saberlint/internal/engine"
)

const auxLeds = `Blink: [{Config: [Led1], Sequence: [{Brightness: [100]}, {Wait: 200}]}],
Broken: [{Config: [Led9], Sequence: [{Wait: 1}]}],
`

const common = `Blade: {BandNumber: 1, PixPerBand: 60},
Blade2: {BandNumber: 1, PixPerBand: 20},
Volume: {Common: 100},
DeadTime: {AfterPowerOn: 200},
Motion: {
	Swing: {HighW: 200}, Spin: {Enabled: true}, Clash: {HighA: 3000},
	Stab: {Enabled: false}, Screw: {Enabled: false},
},
`

const profiles = `Default: {
	PowerOn: {Blade: {Speed: 300}, AuxLedsEffect: Blink},
	Clash: {SizePix: 50, AuxLedsEffect: Broken},
},
`

var _ = Describe("Run", func() {
	var (
		dir string
		cfg *config.Config
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		cfg = config.Default()
	})

	It("validates the three files in order, feeding names and LED count forward", func() {
		writeFile(dir, "AuxLeds.ini", auxLeds)
		writeFile(dir, "Common.ini", common)
		writeFile(dir, "Profiles.ini", profiles)

		res := engine.Run(cfg, dir)

		Expect(res.Files).To(HaveLen(3))
		Expect(res.Files[0].Role).To(Equal(engine.RoleSequencer))
		Expect(res.Files[2].Path).To(Equal(filepath.Join(dir, "Profiles.ini")))
		Expect(res.AuxEffects).To(Equal([]string{"Blink"}))
		Expect(res.LedCount).To(Equal(60))

		Expect(res.File(engine.RoleSequencer).Report.Errors()).To(HaveKey("Broken"))
		Expect(res.File(engine.RoleHardware).Report.Findings()).To(BeEmpty())
		Expect(res.File(engine.RoleProfiles).Report.Warnings()).To(Equal(map[string]string{
			"Default/Clash": "unknown auxiliary effect Broken, it will be skipped",
		}))
		Expect(res.HasErrors(false)).To(BeTrue())
	})

	It("uses the configured default LED count when the hardware file is absent", func() {
		cfg.Defaults.LedCount = 40
		writeFile(dir, "Profiles.ini", "Default: {Clash: {SizePix: 50}}")

		res := engine.Run(cfg, dir)

		Expect(res.File(engine.RoleSequencer).Missing).To(BeTrue())
		Expect(res.File(engine.RoleHardware).Missing).To(BeTrue())
		Expect(res.LedCount).To(Equal(40))
		Expect(res.File(engine.RoleProfiles).Report.Errors()).To(Equal(map[string]string{
			"Default/Clash": "SizePix must be between 0 and 40",
		}))
	})

	It("keeps going after a parse failure and reports it with its line", func() {
		writeFile(dir, "AuxLeds.ini", auxLeds)
		writeFile(dir, "Common.ini", "Blade: {\n/* two\nlines */\nBandNumber: 1 PixPerBand: 2}\n")
		writeFile(dir, "Profiles.ini", "Default: {AfterWake: {AuxLedsEffect: Blink}}")

		res := engine.Run(cfg, dir)

		hw := res.File(engine.RoleHardware)
		Expect(hw.Failed()).To(BeTrue())
		Expect(hw.Report).To(BeNil())
		var perr *dialect.ParseError
		Expect(errors.As(hw.Err, &perr)).To(BeTrue())
		Expect(perr.Line).To(Equal(4))

		Expect(res.LedCount).To(Equal(144))
		Expect(res.File(engine.RoleProfiles).Report.Findings()).To(BeEmpty())
		errs, _ := res.Counts()
		Expect(errs).To(Equal(2))
	})

	It("follows the configured file names", func() {
		cfg.Files.Profiles = "Presets.ini"
		writeFile(dir, "Presets.ini", "Default: {Blaster: {Duration_ms: -1}}")

		res := engine.Run(cfg, dir)

		prof := res.File(engine.RoleProfiles)
		Expect(prof.Missing).To(BeFalse())
		Expect(prof.Report.HasErrors()).To(BeTrue())
	})

	It("counts warnings as errors only when strict", func() {
		writeFile(dir, "Profiles.ini", "Default: {AfterWake: {AuxLedsEffect: Sparkle}}")

		res := engine.Run(cfg, dir)

		Expect(res.HasErrors(false)).To(BeFalse())
		Expect(res.HasErrors(true)).To(BeTrue())
		_, warnings := res.Counts()
		Expect(warnings).To(Equal(1))
	})

	It("treats a run without any file as clean", func() {
		res := engine.Run(cfg, dir)
		Expect(res.HasErrors(true)).To(BeFalse())
		for _, f := range res.Files {
			Expect(f.Missing).To(BeTrue())
		}
	})
})

var _ = Describe("Count", func() {
	It("totals findings and counts a failed file as one error", func() {
		rep := check.NewReport()
		rep.Errorf("Blink", "effect has no sequencers, this effect is skipped")
		rep.Warnf("Blink", "sequencer 1: unknown key Speed is ignored")
		files := []*engine.FileResult{
			{Role: engine.RoleSequencer, Report: rep},
			{Role: engine.RoleHardware, Err: &dialect.ParseError{Line: 2, Message: "boom"}},
			{Role: engine.RoleProfiles, Missing: true},
		}

		errs, warnings := engine.Count(files)

		Expect(errs).To(Equal(2))
		Expect(warnings).To(Equal(1))
	})
})

var _ = Describe("Roles", func() {
	It("lists the file kinds in validation order", func() {
		Expect(engine.Roles()).To(Equal([]engine.Role{engine.RoleSequencer, engine.RoleHardware, engine.RoleProfiles}))
	})
})

var _ = Describe("Single", func() {
	It("validates one file of the given kind", func() {
		dir := GinkgoT().TempDir()
		writeFile(dir, "Profiles.ini", "Default: {Clash: {SizePix: 30, AuxLedsEffect: blink}}")

		f, err := engine.Single(engine.RoleProfiles, filepath.Join(dir, "Profiles.ini"), 20, []string{"Blink"})

		Expect(err).NotTo(HaveOccurred())
		Expect(f.Report.Findings()).To(Equal([]check.Finding{{
			Severity: check.SeverityError,
			Section:  "Default/Clash",
			Message:  "SizePix must be between 0 and 20",
		}}))
	})

	It("fails for a missing file", func() {
		_, err := engine.Single(engine.RoleHardware, filepath.Join(GinkgoT().TempDir(), "Common.ini"), 144, nil)
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("rejects an unknown kind", func() {
		dir := GinkgoT().TempDir()
		writeFile(dir, "x.ini", "Default: {}")
		_, err := engine.Single(engine.Role("sounds"), filepath.Join(dir, "x.ini"), 144, nil)
		Expect(err).To(MatchError(ContainSubstring("unknown file kind")))
	})
})
