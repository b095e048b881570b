package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/fileutil"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default " + config.FileName + " into a directory",
	Long: `Write a ` + config.FileName + ` holding the default settings into the target
directory (defaults to the current directory). An existing file is kept
unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a directory", absDir)
		}

		path := filepath.Join(absDir, config.FileName)
		if fileutil.Exists(path) && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		data, err := config.Default().Marshal()
		if err != nil {
			return err
		}
		if err := fileutil.WriteFile(path, data); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  config %s\n", path)
		return nil
	},
}
