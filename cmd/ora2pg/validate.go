package main

import (
	"fmt"
	"os"

	"github.com/darianmavgo/ora2pg/logutil"
	"github.com/darianmavgo/ora2pg/validate"
	"github.com/dustin/go-humanize"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that every statement of a converted file parses as PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.New(verbose)
			if err != nil {
				return errors.Annotate(err, "failed to create logger")
			}
			defer logger.Sync()

			file, err := os.Open(args[0])
			if err != nil {
				return errors.Annotatef(err, "failed to open %s", args[0])
			}
			defer file.Close()

			res, err := validate.Check(cmd.Context(), file, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, issue := range res.Issues {
				fmt.Fprintf(out, "%s:%d: %s\n", args[0], issue.Line, issue.Message)
			}
			fmt.Fprintf(out, "Checked %s statements, %s failed to parse.\n",
				humanize.Comma(int64(res.Statements)), humanize.Comma(int64(len(res.Issues))))
			if len(res.Issues) > 0 {
				return errors.Errorf("%d statements failed to parse", len(res.Issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}
