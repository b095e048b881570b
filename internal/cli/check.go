package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/re-cinq/saberlint/internal/engine"
	"github.com/re-cinq/saberlint/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate the sequencer, hardware and profiles files of a directory",
	Long: `Validate the three configuration files of a directory (defaults to the
current directory). The sequencer file is checked first, then the hardware
file, then the profiles file, which is checked against the auxiliary effect
names and the LED count produced by the first two.

Exits 1 when any error is found, or any warning with --strict.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}

		cfg, err := loadAndValidateConfig(cmd, dir)
		if err != nil {
			return err
		}

		res := engine.Run(cfg, dir)
		if err := report.Write(cmd.OutOrStdout(), res.Files, reportOptions(cfg)); err != nil {
			return err
		}
		if res.HasErrors(cfg.Strict) {
			return errFindings
		}
		return nil
	},
}

func init() {
	addOutputFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
