// Package converters drives a whole Oracle schema file through the line
// rewriter and exports the review report through pluggable sinks.
package converters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darianmavgo/ora2pg/config"
	"github.com/darianmavgo/ora2pg/rewriter"
	"github.com/darianmavgo/ora2pg/validate"
	"github.com/dustin/go-humanize"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// Options controls a conversion run. The zero value is usable.
type Options struct {
	Config *config.Config
	// Progress receives the banner, progress lines and summary. Nil discards them.
	Progress io.Writer
	Logger   *zap.Logger
	// Now is the clock used for the header timestamp.
	Now func() time.Time
	// Validate parses every converted statement with the PostgreSQL parser
	// and records failures as findings.
	Validate bool
}

func (o *Options) normalize() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.Config == nil {
		out.Config = config.DefaultConfig()
	}
	if out.Progress == nil {
		out.Progress = io.Discard
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	return &out
}

// DefaultOutputPath derives the output file name from the input file name.
func DefaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_postgresql.sql"
}

// Convert reads an Oracle schema from r and writes the PostgreSQL version
// to w, header first. Rewrites never fail; only I/O errors and
// cancellation stop the run.
func Convert(ctx context.Context, r io.Reader, w io.Writer, opts *Options) (*Report, error) {
	opts = opts.normalize()
	interval := opts.Config.ProgressInterval
	if interval <= 0 {
		interval = config.DefaultProgressInterval
	}

	input, err := newDecoder(r, opts.Config.InputEncoding)
	if err != nil {
		return nil, err
	}
	rw := rewriter.New(opts.Config, opts.Logger)

	var validator *validate.Validator
	if opts.Validate {
		validator = validate.New(opts.Logger)
	}

	report := NewReport()
	report.Started = opts.Now()

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	if _, err := bw.WriteString(Header(report.Started)); err != nil {
		return nil, errors.Annotate(err, "failed to write header")
	}

	br := bufio.NewReader(input)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Trace(err)
		}
		line, readErr := br.ReadString('\n')
		if line != "" {
			lineNo++
			line = normalizeNewline(line)
			res := rw.Transform(line)
			report.Record(lineNo, line, res)
			if validator != nil {
				validator.Add(lineNo, res.Line)
			}
			if _, err := bw.WriteString(res.Line); err != nil {
				return nil, errors.Annotate(err, "failed to write output")
			}
			if lineNo%interval == 0 {
				fmt.Fprintf(opts.Progress, "  Processed %s lines...\n", humanize.Comma(int64(lineNo)))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.Annotate(readErr, "failed to read input")
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, errors.Annotate(err, "failed to write output")
	}

	if validator != nil {
		for _, issue := range validator.Finish() {
			report.AddFinding(Finding{
				Line:      issue.Line,
				Rule:      ParseRule,
				Note:      issue.Message,
				Converted: issue.Statement,
			})
		}
		opts.Logger.Info("validated output",
			zap.Int("statements", validator.Statements()),
			zap.Int("failed", report.Stats.Findings[ParseRule]))
	}

	report.Finished = opts.Now()
	report.BytesWritten = cw.n
	return report, nil
}

// ConvertFile converts inputPath into outputPath, creating the output
// directory if needed, and prints the banner and summary to opts.Progress.
func ConvertFile(ctx context.Context, inputPath, outputPath string, opts *Options) (*Report, error) {
	opts = opts.normalize()

	in, err := os.Open(inputPath)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to open input %s", inputPath)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, errors.Annotate(err, "failed to create output directory")
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to create output %s", outputPath)
	}
	defer out.Close()

	fmt.Fprintf(opts.Progress, "Converting %s to %s...\n", inputPath, outputPath)
	fmt.Fprintln(opts.Progress, "This may take a while for large files...")
	opts.Logger.Info("conversion started",
		zap.String("input", inputPath), zap.String("output", outputPath))

	report, err := Convert(ctx, in, out, opts)
	if err != nil {
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, errors.Annotatef(err, "failed to close output %s", outputPath)
	}
	report.InputPath = inputPath
	report.OutputPath = outputPath

	opts.Logger.Info("conversion finished",
		zap.Int("lines", report.Stats.Lines),
		zap.Int("findings", len(report.Findings)),
		zap.String("size", humanize.Bytes(uint64(report.BytesWritten))),
		zap.Duration("elapsed", report.Finished.Sub(report.Started)))

	if err := WriteSummary(opts.Progress, report); err != nil {
		return nil, err
	}
	return report, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
