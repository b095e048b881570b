package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/re-cinq/saberlint/internal/fileutil"
)

var (
	configPath string
	quiet      bool
	Version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:           "saberlint",
	Short:         "Validate lightsaber firmware configuration files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		fileutil.Quiet = quiet
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: "+configFileHint+")")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational messages")
}

// Execute runs the root command. Findings have already been printed when
// errFindings comes back, so only other errors are logged here.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFindings) {
		fileutil.LogError("Error: %s", err)
	}
	return err
}
