package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migembed",
	Short: "Embed SQL migrations into Go source",
	Long: `migembed turns a directory of versioned SQL migration files into a Go
source file that returns the migrations as an ordered slice. Name files
<version>-<description>.sql and run migembed from go:generate:

  //go:generate migembed generate --migrations-dir migrations --project-dir .

The generated file is rewritten only when a migration was added, removed,
renamed, edited or touched since the last run.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Missing or invalid configuration
  11 - Migration file could not be parsed or read
  12 - Generated file could not be written
  13 - Migrations directory could not be read
  15 - Generated file is stale (check command)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
