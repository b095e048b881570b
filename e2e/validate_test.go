package e2e_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("saberlint validate", func() {
	var dir string

	BeforeEach(func() {
		dir = tempSaber()
	})

	It("validates a single sequencer file", func() {
		out := saberlintOK(dir, "validate", "sequencer", "AuxLeds.ini")
		Expect(out).To(ContainSubstring("AuxLeds.ini (sequencer)"))
		Expect(out).To(ContainSubstring("✓ no problems found"))
	})

	It("validates a single hardware file", func() {
		writeFile(dir, "Common.ini", "Blade: {BandNumber: 1, PixPerBand: 60}")
		out := saberlintFails(dir, "validate", "hardware", "Common.ini")
		Expect(out).To(ContainSubstring("Motion settings are absent"))
	})

	It("checks profiles against --leds and --aux", func() {
		writeFile(dir, "Profiles.ini", "Default: {Clash: {SizePix: 30, AuxLedsEffect: Sparkle}}")

		out := saberlintFails(dir, "validate", "profiles", "Profiles.ini", "--leds", "20")
		Expect(out).To(ContainSubstring("SizePix must be between 0 and 20"))
		Expect(out).To(ContainSubstring("unknown auxiliary effect Sparkle"))

		out = saberlintOK(dir, "validate", "profiles", "Profiles.ini", "--aux", "Blink,Sparkle")
		Expect(out).NotTo(ContainSubstring("Sparkle"))
	})

	It("fails for a missing file", func() {
		out := saberlintFails(dir, "validate", "hardware", "Missing.ini")
		Expect(out).To(ContainSubstring("Missing.ini"))
	})

	It("rejects an unknown kind", func() {
		out := saberlintFails(dir, "validate", "sounds", "Common.ini")
		Expect(out).To(ContainSubstring(`unknown file kind "sounds"`))
	})

	It("requires a kind and a file", func() {
		saberlintFails(dir, "validate", "hardware")
	})

	Context("config", func() {
		It("prints valid for a correct config", func() {
			writeFile(dir, ".saberlint.yaml", "output:\n  format: json\n")
			out := saberlintOK(dir, "validate", "config", ".saberlint.yaml")
			Expect(out).To(Equal("valid"))
		})

		It("reports each problem", func() {
			writeFile(dir, ".saberlint.yaml", "files:\n  hardware: Profiles.ini\noutput:\n  color: sometimes\n")
			out := saberlintFails(dir, "validate", "config", ".saberlint.yaml")
			Expect(out).To(ContainSubstring("output.color"))
			Expect(out).To(ContainSubstring(`"Profiles.ini" is already used`))
		})
	})
})
