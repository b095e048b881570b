package e2e_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("saberlint schema", func() {
	It("outputs valid JSON with expected top-level keys", func() {
		out := saberlintOK(tempDir(), "schema")

		var schema map[string]any
		Expect(json.Unmarshal([]byte(out), &schema)).To(Succeed())
		Expect(schema).To(HaveKey("description"))

		props, ok := schema["properties"].(map[string]any)
		Expect(ok).To(BeTrue(), "schema should have properties")
		Expect(props).To(HaveKey("files"))
		Expect(props).To(HaveKey("defaults"))
		Expect(props).To(HaveKey("output"))
		Expect(props).To(HaveKey("strict"))
	})
})

var _ = Describe("saberlint explain", func() {
	It("describes the dialect, the rules and the config", func() {
		out := saberlintOK(tempDir(), "explain")
		Expect(out).To(ContainSubstring("DIALECT"))
		Expect(out).To(ContainSubstring("RULES"))
		Expect(out).To(ContainSubstring(".saberlint.yaml"))
	})
})

var _ = Describe("saberlint version", func() {
	It("prints the version", func() {
		Expect(saberlintOK(tempDir(), "version")).To(Equal("saberlint dev"))
	})
})

var _ = Describe("saberlint init", func() {
	It("writes a default config that validates", func() {
		dir := tempDir()
		saberlintOK(dir, "init")

		var cfg map[string]any
		Expect(yaml.Unmarshal([]byte(readFile(dir, ".saberlint.yaml")), &cfg)).To(Succeed())
		Expect(cfg).To(HaveKey("files"))
		Expect(saberlintOK(dir, "validate", "config", ".saberlint.yaml")).To(Equal("valid"))
	})

	It("keeps an existing config unless forced", func() {
		dir := tempDir()
		writeFile(dir, ".saberlint.yaml", "strict: true\n")

		out := saberlintFails(dir, "init")
		Expect(out).To(ContainSubstring("already exists"))
		Expect(readFile(dir, ".saberlint.yaml")).To(Equal("strict: true\n"))

		saberlintOK(dir, "init", "--force")
		Expect(readFile(dir, ".saberlint.yaml")).To(ContainSubstring("led_count: 144"))
	})

	It("writes into the directory given as argument", func() {
		dir := tempDir()
		writeFile(dir, "saber/.keep", "")
		saberlintOK(dir, "init", "saber")
		Expect(readFile(dir, "saber/.saberlint.yaml")).To(ContainSubstring("format: text"))
	})
})
