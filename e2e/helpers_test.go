package e2e_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const auxLeds = `// auxiliary LEDs
LedGroups: [{Name: Front, Leds: [Led2, Led3]}],
Blink: [
	{Config: [Led1], Sequence: [{Brightness: [100], Name: On}, {Wait: 200}, {Repeat: {StartingFrom: On, Count: forever}}]},
	{Group: Front, Sequence: [{Brightness: [CopyRed, 40], Smooth: 100}]},
],
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
	Clash: {SizePix: 50, AuxLedsEffect: Blink},
},
`

// tempDir creates a fresh temp directory that is removed after the test.
func tempDir() string {
	dir, err := os.MkdirTemp("", "saberlint-test-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { os.RemoveAll(dir) })
	return dir
}

// tempSaber creates a temp directory holding a valid set of saber files.
func tempSaber() string {
	dir := tempDir()
	writeFile(dir, "AuxLeds.ini", auxLeds)
	writeFile(dir, "Common.ini", common)
	writeFile(dir, "Profiles.ini", profiles)
	return dir
}

func command(dir string, args ...string) *exec.Cmd {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	return cmd
}

// saberlint runs the binary in the given directory and returns stdout+stderr.
func saberlint(dir string, args ...string) (string, error) {
	out, err := command(dir, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// saberlintOK runs the binary and expects success.
func saberlintOK(dir string, args ...string) string {
	out, err := saberlint(dir, args...)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "saberlint %s failed: %s", strings.Join(args, " "), out)
	return out
}

// saberlintFails runs the binary and expects exit status 1.
func saberlintFails(dir string, args ...string) string {
	out, err := saberlint(dir, args...)
	ExpectWithOffset(1, exitCode(err)).To(Equal(1), "saberlint %s: %s", strings.Join(args, " "), out)
	return out
}

// saberlintStdout runs the binary and returns stdout only, along with the exit code.
func saberlintStdout(dir string, args ...string) (string, int) {
	var stdout bytes.Buffer
	cmd := command(dir, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = GinkgoWriter
	return stdout.String(), exitCode(cmd.Run())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	ExpectWithOffset(2, ok).To(BeTrue(), "unexpected error: %v", err)
	return exitErr.ExitCode()
}

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(dir, name, content string) {
	p := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(p), 0o755)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	err = os.WriteFile(p, []byte(content), 0o644)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
}

// readFile reads a file and returns its content.
func readFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return string(data)
}
