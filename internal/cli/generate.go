package cli

import (
	"github.com/spf13/cobra"
)

type generateFlagValues struct {
	paths   pathFlags
	force   bool
	lenient bool
}

var generateFlags generateFlagValues

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the embedded migrations file when sources changed",
	Long: `Scan the migrations directory and rewrite the generated Go file if it is
missing or out of date. Every .sql file must be named <version>-<description>.sql
with an integer version.

The generated file is written to <project-dir>/internal/migrations/migrations_generated.go
unless migembed.yaml says otherwise:

  migrations_dir: migrations
  output:
    dir: internal/migrations
    file: migrations_generated.go
    package: migrations
    func: Migrations
  order: version   # or "directory" to keep listing order

Errors stop the run with a non-zero exit code. --lenient logs them and exits 0,
leaving any previous generated file in place.

Examples:
  migembed generate --migrations-dir ./migrations --project-dir .
  MIGRATIONS_DIR=./migrations PROJECT_DIR=. migembed generate -v
  migembed generate --force`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addPathFlags(generateCmd, &generateFlags.paths)
	generateCmd.Flags().BoolVar(&generateFlags.force, "force", false,
		"Regenerate even when the generated file is up to date")
	generateCmd.Flags().BoolVar(&generateFlags.lenient, "lenient", false,
		"Log generation errors and exit successfully")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := newLogger(verbose)

	cfg, err := resolveGenerationConfig(generateFlags.paths, verbose)
	if err == nil {
		cfg.Force = generateFlags.force
		_, err = newGenerationService(logger).Generate(commandContext(cmd), cfg)
	}

	if err != nil && generateFlags.lenient {
		logger.Error("Migration generation failed: %v", err)
		return nil
	}
	return err
}

func resetGenerateFlags() {
	generateFlags = generateFlagValues{}
}
