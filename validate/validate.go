// Package validate checks converted output with the PostgreSQL parser.
// It reports statements that do not parse and never changes the text.
package validate

import (
	"bufio"
	"context"
	"io"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// Issue is a statement that PostgreSQL could not parse.
type Issue struct {
	// Line is the 1-based line where the statement starts.
	Line      int
	Statement string
	Message   string
}

// Validator groups lines into statements and parses each one.
// Statements end at a line ending with ";" or at a line holding only "/".
type Validator struct {
	logger     *zap.Logger
	buf        strings.Builder
	start      int
	statements int
	issues     []Issue
}

// New creates a Validator.
func New(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Add feeds one line of converted output. Comment lines are ignored.
func (v *Validator) Add(lineNo int, line string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "--"):
		return
	case trimmed == "/":
		v.flush()
		return
	case trimmed == "":
		if v.buf.Len() > 0 {
			v.buf.WriteByte('\n')
		}
		return
	}

	if v.buf.Len() == 0 {
		v.start = lineNo
	}
	v.buf.WriteString(strings.TrimRight(line, "\r\n"))
	v.buf.WriteByte('\n')
	if strings.HasSuffix(trimmed, ";") {
		v.flush()
	}
}

// Finish parses any unterminated trailing statement and returns all issues.
func (v *Validator) Finish() []Issue {
	v.flush()
	return v.issues
}

// Statements returns the number of statements parsed so far.
func (v *Validator) Statements() int {
	return v.statements
}

func (v *Validator) flush() {
	stmt := strings.TrimSpace(v.buf.String())
	v.buf.Reset()
	if stmt == "" {
		return
	}
	v.statements++
	if _, err := pg_query.Parse(stmt); err != nil {
		v.logger.Debug("statement does not parse",
			zap.Int("line", v.start), zap.Error(err))
		v.issues = append(v.issues, Issue{
			Line:      v.start,
			Statement: stmt,
			Message:   err.Error(),
		})
	}
}

// Result is the outcome of checking a whole file.
type Result struct {
	Statements int
	Issues     []Issue
}

// Check reads converted SQL from r and parses every statement in it.
func Check(ctx context.Context, r io.Reader, logger *zap.Logger) (*Result, error) {
	v := New(logger)
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Trace(err)
		}
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			v.Add(lineNo, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Annotate(err, "failed to read input")
		}
	}
	issues := v.Finish()
	return &Result{Statements: v.Statements(), Issues: issues}, nil
}
