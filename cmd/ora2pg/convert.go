package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/darianmavgo/ora2pg/converters"
	_ "github.com/darianmavgo/ora2pg/converters/all"
	"github.com/darianmavgo/ora2pg/converters/common"
	"github.com/darianmavgo/ora2pg/logutil"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type convertFlags struct {
	input      string
	output     string
	configPath string
	reportPath string
	validate   bool
	verbose    bool
}

func newConvertCmd() *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an Oracle schema file to PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Oracle schema file (required)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "PostgreSQL output file (default <input>_postgresql.sql)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "HCL configuration file")
	cmd.Flags().StringVarP(&f.reportPath, "report", "r", "", "Write a review report (.db, .sqlite, .sqlite3 or .xlsx)")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "Parse converted statements with the PostgreSQL parser")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.MarkFlagRequired("input")
	return cmd
}

func runConvert(cmd *cobra.Command, f *convertFlags) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}

	// Fail on a bad report path before doing any work.
	var driver string
	if f.reportPath != "" {
		if driver, err = converters.DriverForPath(f.reportPath); err != nil {
			return err
		}
	}

	logger, err := logutil.New(f.verbose)
	if err != nil {
		return errors.Annotate(err, "failed to create logger")
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	output := f.output
	if output == "" {
		output = converters.DefaultOutputPath(f.input)
	}

	out := cmd.OutOrStdout()
	report, err := converters.ConvertFile(ctx, f.input, output, &converters.Options{
		Config:   cfg,
		Progress: out,
		Logger:   logger,
		Validate: f.validate,
	})
	if err != nil {
		return err
	}

	if f.validate {
		fmt.Fprintf(out, "Statements failing to parse: %d\n", report.Stats.Findings[converters.ParseRule])
	}
	if driver != "" {
		if err := writeReport(ctx, driver, f.reportPath, report, logger); err != nil {
			return err
		}
		fmt.Fprintf(out, "Review report written to: %s\n", f.reportPath)
	}

	fmt.Fprintf(out, "\nOutput written to: %s\n", output)
	return converters.WriteNotes(out)
}

func writeReport(ctx context.Context, driver, path string, report *converters.Report, logger *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Annotate(err, "failed to create report directory")
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "failed to create report %s", path)
	}
	defer file.Close()

	if err := converters.Export(ctx, driver, report, file, &common.ExportOptions{Logger: logger}); err != nil {
		return errors.Annotatef(err, "failed to write report %s", path)
	}
	return errors.Annotatef(file.Close(), "failed to close report %s", path)
}
