package e2e_test

import (
	"encoding/json"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("saberlint check", func() {
	It("accepts a valid set of files", func() {
		dir := tempSaber()
		out := saberlintOK(dir, "check")

		Expect(out).To(ContainSubstring("AuxLeds.ini (sequencer)"))
		Expect(out).To(ContainSubstring("Common.ini (hardware)"))
		Expect(out).To(ContainSubstring("Profiles.ini (profiles)"))
		Expect(out).To(ContainSubstring("✓ no problems found"))
		Expect(out).To(HaveSuffix("0 errors, 0 warnings"))
		Expect(out).NotTo(ContainSubstring("\x1b["))
	})

	It("checks the directory given as argument", func() {
		dir := tempSaber()
		out := saberlintOK(filepath.Dir(dir), "check", filepath.Base(dir))
		Expect(out).To(ContainSubstring(filepath.Join(filepath.Base(dir), "Common.ini")))
	})

	It("rejects a path that is not a directory", func() {
		dir := tempSaber()
		out := saberlintFails(dir, "check", "Common.ini")
		Expect(out).To(ContainSubstring("is not a directory"))
	})

	It("reports absent files without failing", func() {
		dir := tempDir()
		out := saberlintOK(dir, "check")

		Expect(out).To(ContainSubstring("○ absent"))
		Expect(out).To(ContainSubstring("warning: AuxLeds.ini is absent"))
		Expect(out).To(ContainSubstring("default LED count (144) is used"))
	})

	It("fails with the section and message of an error", func() {
		dir := tempSaber()
		writeFile(dir, "Profiles.ini", "Default: {Clash: {SizePix: 100}}")

		out := saberlintFails(dir, "check")
		Expect(out).To(ContainSubstring("Default/Clash"))
		Expect(out).To(ContainSubstring("✗ error: SizePix must be between 0 and 60"))
		Expect(out).To(ContainSubstring("1 error, 0 warnings"))
	})

	It("reports syntax errors at the line of the original file", func() {
		dir := tempSaber()
		writeFile(dir, "Common.ini", "/* header\n   comment */\nBlade: {\n  BandNumber: 1\n  PixPerBand: 60\n}\n")

		out := saberlintFails(dir, "check")
		Expect(out).To(ContainSubstring("line 5"))
		Expect(out).To(ContainSubstring("default LED count (144) is used"))
	})

	It("carries auxiliary effect names from the sequencer file to the profiles", func() {
		dir := tempSaber()
		writeFile(dir, "Profiles.ini", "Default: {Clash: {SizePix: 10, AuxLedsEffect: blink}, Stab: {AuxLedsEffect: Sparkle}}")

		out := saberlintOK(dir, "check")
		Expect(out).To(ContainSubstring("! warning: unknown auxiliary effect Sparkle, it will be skipped"))
		Expect(out).NotTo(ContainSubstring("unknown auxiliary effect blink"))
	})

	Context("with --strict", func() {
		It("fails on warnings", func() {
			dir := tempSaber()
			writeFile(dir, "Profiles.ini", "Default: {Stab: {AuxLedsEffect: Sparkle}}")

			saberlintOK(dir, "check")
			saberlintFails(dir, "check", "--strict")
		})
	})

	Context("with --format json", func() {
		It("writes a machine-readable report to stdout", func() {
			dir := tempSaber()
			writeFile(dir, "AuxLeds.ini", "Blink: [{Config: [Led1, Led1], Sequence: [{Wait: 1}]}]")

			out, code := saberlintStdout(dir, "check", "--format", "json")
			Expect(code).To(Equal(1))

			var doc struct {
				Files []struct {
					Role     string `json:"role"`
					Status   string `json:"status"`
					Findings []struct {
						Severity string `json:"severity"`
						Section  string `json:"section"`
					} `json:"findings"`
				} `json:"files"`
				Errors int `json:"errors"`
			}
			Expect(json.Unmarshal([]byte(out), &doc)).To(Succeed())
			Expect(doc.Files).To(HaveLen(3))
			Expect(doc.Files[0].Role).To(Equal("sequencer"))
			Expect(doc.Files[0].Status).To(Equal("findings"))
			Expect(doc.Files[0].Findings[0].Section).To(Equal("Blink"))
			Expect(doc.Errors).To(BeNumerically(">", 0))
		})
	})

	Context("with --format yaml", func() {
		It("writes YAML", func() {
			dir := tempSaber()
			out, code := saberlintStdout(dir, "check", "-f", "yaml")
			Expect(code).To(Equal(0))

			var doc map[string]any
			Expect(yaml.Unmarshal([]byte(out), &doc)).To(Succeed())
			Expect(doc).To(HaveKeyWithValue("errors", 0))
			Expect(doc["files"]).To(HaveLen(3))
		})
	})

	It("rejects an unknown output format", func() {
		dir := tempSaber()
		out := saberlintFails(dir, "check", "--format", "xml")
		Expect(out).To(ContainSubstring("output.format"))
	})
})

var _ = Describe("saberlint config file", func() {
	It("is found in a parent directory", func() {
		root := tempDir()
		writeFile(root, ".saberlint.yaml", "files:\n  profiles: Presets.ini\n")
		writeFile(root, "saber/Presets.ini", "Default: {Clash: {SizePix: 500}}")

		out := saberlintFails(filepath.Join(root, "saber"), "check")
		Expect(out).To(ContainSubstring("using config"))
		Expect(out).To(ContainSubstring("Presets.ini (profiles)"))
	})

	It("can be given with --config", func() {
		dir := tempSaber()
		writeFile(dir, "Profiles.ini", "Default: {Stab: {AuxLedsEffect: Sparkle}}")
		writeFile(dir, "conf/strict.yaml", "strict: true\n")

		saberlintFails(dir, "check", "--config", "conf/strict.yaml")
	})

	It("lets flags override it", func() {
		dir := tempSaber()
		writeFile(dir, "Profiles.ini", "Default: {Stab: {AuxLedsEffect: Sparkle}}")
		writeFile(dir, ".saberlint.yaml", "strict: true\n")

		saberlintOK(dir, "check", "--strict=false")
	})

	It("fails when --config names a missing file", func() {
		dir := tempSaber()
		out := saberlintFails(dir, "check", "-c", "nope.yaml")
		Expect(out).To(ContainSubstring("config file nope.yaml not found"))
	})

	It("reports invalid settings", func() {
		dir := tempSaber()
		writeFile(dir, ".saberlint.yaml", "defaults:\n  led_count: 0\n")

		out := saberlintFails(dir, "check")
		Expect(out).To(ContainSubstring("defaults.led_count"))
	})

	It("rejects unknown keys", func() {
		dir := tempSaber()
		writeFile(dir, ".saberlint.yaml", "colour: always\n")

		out := saberlintFails(dir, "check")
		Expect(out).To(ContainSubstring("colour"))
	})

	It("keeps informational lines out of quiet runs", func() {
		dir := tempSaber()
		writeFile(dir, ".saberlint.yaml", "strict: false\n")

		Expect(saberlintOK(dir, "check")).To(ContainSubstring("using config"))
		Expect(saberlintOK(dir, "check", "-q")).NotTo(ContainSubstring("using config"))
	})
})
