package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/migembed/pkg/migembed"
)

var checkFlags pathFlags

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the generated migrations file is stale",
	Long: `Run the same staleness check as generate without writing anything.
Prints "up to date" or "stale: <reason>" to stdout and exits with code 15
when the generated file needs regenerating. Intended for CI.

Examples:
  migembed check --migrations-dir ./migrations --project-dir .`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addPathFlags(checkCmd, &checkFlags)
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := resolveGenerationConfig(checkFlags, verbose)
	if err != nil {
		return err
	}

	result, err := newGenerationService(newLogger(verbose)).Check(commandContext(cmd), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Stale {
		fmt.Fprintf(out, "stale: %s\n", result.Reason)
		return fmt.Errorf("%w: %s", migembed.ErrStale, result.ArtifactPath)
	}
	fmt.Fprintln(out, "up to date")
	return nil
}
