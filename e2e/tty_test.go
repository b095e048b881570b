package e2e_test

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// onTerminal runs the binary attached to a pseudo-terminal and returns
// everything it printed. Variables that switch colour detection off are
// dropped from the environment.
func onTerminal(dir string, args ...string) string {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	for _, kv := range os.Environ() {
		switch name, _, _ := strings.Cut(kv, "="); name {
		case "NO_COLOR", "TERM", "CI", "CLICOLOR", "CLICOLOR_FORCE":
			continue
		}
		cmd.Env = append(cmd.Env, kv)
	}
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	defer ptmx.Close()

	var buf bytes.Buffer
	// Reading fails with EIO once the child has exited.
	_, _ = io.Copy(&buf, ptmx)
	_ = cmd.Wait()
	return buf.String()
}

var _ = Describe("saberlint on a terminal", func() {
	It("colours the report with --color auto", func() {
		out := onTerminal(tempSaber(), "check")
		Expect(out).To(ContainSubstring("\x1b["))
		Expect(out).To(ContainSubstring("no problems found"))
	})

	It("keeps the report plain with --color never", func() {
		out := onTerminal(tempSaber(), "check", "--color", "never")
		Expect(out).NotTo(ContainSubstring("\x1b["))
		Expect(out).To(ContainSubstring("✓ no problems found"))
	})
})
