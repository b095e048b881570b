package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/engine"
	"github.com/re-cinq/saberlint/internal/fileutil"
	"github.com/re-cinq/saberlint/internal/report"
)

var validateFlags struct {
	leds int
	aux  []string
}

var validateCmd = &cobra.Command{
	Use:   "validate <sequencer|hardware|profiles|config> <file>",
	Short: "Validate a single file of the given kind",
	Long: `Validate one file on its own. A profiles file is checked against the
LED count given by --leds and the auxiliary effect names given by --aux.

The config kind validates a ` + config.FileName + ` file and prints "valid".`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: validateKinds(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, path := args[0], args[1]
		if kind == "config" {
			return validateConfigFile(cmd, path)
		}

		cfg, err := loadAndValidateConfig(cmd, filepath.Dir(path))
		if err != nil {
			return err
		}
		leds := cfg.Defaults.LedCount
		if cmd.Flags().Changed("leds") {
			leds = validateFlags.leds
		}

		f, err := engine.Single(engine.Role(kind), path, leds, validateFlags.aux)
		if err != nil {
			return err
		}
		if err := report.Write(cmd.OutOrStdout(), []*engine.FileResult{f}, reportOptions(cfg)); err != nil {
			return err
		}
		if f.HasErrors(cfg.Strict) {
			return errFindings
		}
		return nil
	},
}

// validateKinds lists the file kinds validate accepts.
func validateKinds() []string {
	var kinds []string
	for _, role := range engine.Roles() {
		kinds = append(kinds, string(role))
	}
	return append(kinds, "config")
}

func validateConfigFile(cmd *cobra.Command, path string) error {
	if !fileutil.Exists(path) {
		return fmt.Errorf("config file %s not found", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	errs := config.Validate(cfg)
	if len(errs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	}
	fileutil.LogError("%s", strings.Join(errs, "\n"))
	return errFindings
}

func init() {
	addOutputFlags(validateCmd)
	validateCmd.Flags().IntVar(&validateFlags.leds, "leds", 0, "LED count of the main blade (default: defaults.led_count from the config)")
	validateCmd.Flags().StringSliceVar(&validateFlags.aux, "aux", nil, "comma-separated auxiliary effect names known to the profiles file")
	rootCmd.AddCommand(validateCmd)
}
