package main

import (
	"os"

	"github.com/darianmavgo/ora2pg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ora2pg",
		Short: "Convert Oracle schema dumps to PostgreSQL",
		Long: `ora2pg rewrites an Oracle SQL schema dump into a PostgreSQL 17 schema one line
at a time, using ordered pattern rules instead of a full parser. Constructs it
cannot translate are commented out or flagged for manual review.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd(), newRulesCmd(), newConfigCmd(), newValidateCmd())
	return root
}

// loadConfig reads the HCL config at path, or returns the defaults when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}
