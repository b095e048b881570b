package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/fileutil"
	"github.com/re-cinq/saberlint/internal/report"
)

const configFileHint = config.FileName + " found from the checked directory upwards"

// errFindings signals a failed validation whose report was already written.
var errFindings = errors.New("validation found errors")

// outputFlags are shared by the commands that print a report.
var outputFlags struct {
	format string
	color  string
	strict bool
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFlags.format, "format", "f", config.FormatText, "output format: text, yaml or json")
	cmd.Flags().StringVar(&outputFlags.color, "color", config.ColorAuto, "colour text output: auto, always or never")
	cmd.Flags().BoolVar(&outputFlags.strict, "strict", false, "treat warnings as errors")
}

// resolveConfigPath returns the config file to use for dir, or "" when there
// is none and defaults apply.
func resolveConfigPath(dir string) (string, error) {
	if configPath != "" {
		if !fileutil.Exists(configPath) {
			return "", fmt.Errorf("config file %s not found", configPath)
		}
		return configPath, nil
	}
	return fileutil.FindFileUp(dir, config.FileName), nil
}

// loadAndValidateConfig loads the config for dir, applies flags the user set
// explicitly and validates the result, printing errors to stderr.
func loadAndValidateConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	path, err := resolveConfigPath(dir)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if path != "" {
		fileutil.LogInfo("using config %s", path)
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	applyOutputFlags(cmd, cfg)

	errs := config.Validate(cfg)
	if len(errs) > 0 {
		for _, e := range errs {
			fileutil.LogError("Error: %s", e)
		}
		return nil, fmt.Errorf("%d config validation error(s)", len(errs))
	}

	return cfg, nil
}

// applyOutputFlags lets command-line flags override the config file.
func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = outputFlags.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = outputFlags.color
	}
	if flags.Changed("strict") {
		cfg.Strict = outputFlags.strict
	}
}

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{Format: cfg.Output.Format, Color: cfg.Output.Color}
}
