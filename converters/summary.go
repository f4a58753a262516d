package converters

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/darianmavgo/ora2pg/rewriter"
	"github.com/dustin/go-humanize"
	"github.com/pingcap/errors"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

var headerLines = []string{
	"-- PostgreSQL 17 Schema",
	"-- Converted from Oracle format",
	"-- Conversion date: %s",
	"--",
	"-- IMPORTANT: This is an automated conversion.",
	"-- Please review the following:",
	"-- 1. NVL2 functions may need manual conversion to CASE statements",
	"-- 2. DECODE functions need conversion to CASE statements",
	"-- 3. Oracle packages need to be converted to PostgreSQL schemas/functions",
	"-- 4. PL/SQL procedures/functions need conversion to PL/pgSQL",
	"-- 5. Triggers need syntax adjustments",
	"-- 6. Some Oracle-specific features may need alternative approaches",
	"--",
	"",
}

// Header returns the comment block written at the top of every output file.
func Header(at time.Time) string {
	var b strings.Builder
	for _, line := range headerLines {
		if strings.Contains(line, "%s") {
			line = fmt.Sprintf(line, at.Format(timestampLayout))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

var summaryLabels = []struct {
	kind   rewriter.Kind
	label  string
	suffix string
}{
	{rewriter.DropViews, "DROP Views:      ", ""},
	{rewriter.DropTables, "DROP Tables:     ", ""},
	{rewriter.DropSequences, "DROP Sequences:  ", ""},
	{rewriter.DropTypes, "DROP Types:      ", ""},
	{rewriter.DropPackages, "DROP Packages:   ", " (commented out)"},
	{rewriter.DropFunctions, "DROP Functions:  ", ""},
	{rewriter.DropProcedures, "DROP Procedures: ", ""},
	{rewriter.DropTriggers, "DROP Triggers:   ", ""},
	{rewriter.DropIndexes, "DROP Indexes:    ", ""},
	{rewriter.CreateViews, "CREATE Views:    ", ""},
	{rewriter.CreateTables, "CREATE Tables:   ", ""},
	{rewriter.CreateSequences, "CREATE Sequences: ", ""},
	{rewriter.CreateIndexes, "CREATE Indexes:  ", ""},
	{rewriter.Grants, "GRANT Statements: ", ""},
}

var separator = strings.Repeat("=", 60)

// WriteSummary prints the line total and the statement counters.
func WriteSummary(w io.Writer, report *Report) error {
	s := report.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "\nConversion complete! Processed %s lines.\n", humanize.Comma(int64(s.Lines)))
	b.WriteString("\nConversion Statistics:\n")
	b.WriteString(separator + "\n")
	for _, l := range summaryLabels {
		fmt.Fprintf(&b, "%s%d%s\n", l.label, s.Count(l.kind), l.suffix)
	}
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Lines translated: %s, flagged for review: %s, unchanged: %s\n",
		humanize.Comma(int64(s.Outcomes[rewriter.Translated])),
		humanize.Comma(int64(s.Outcomes[rewriter.Flagged])),
		humanize.Comma(int64(s.Outcomes[rewriter.Unchanged])))
	if n := s.FindingTotal(); n > 0 {
		fmt.Fprintf(&b, "Review findings: %s\n", humanize.Comma(int64(n)))
	}

	_, err := io.WriteString(w, b.String())
	return errors.Annotate(err, "failed to write summary")
}

var notes = []string{
	"1. Review and test the converted schema before deployment",
	"2. Some Oracle-specific constructs have been commented out",
	"3. Complex NVL2 and DECODE functions may need manual conversion",
	"4. Oracle packages need to be redesigned as PostgreSQL schemas with functions",
	"5. PL/SQL code blocks need conversion to PL/pgSQL",
	"6. Test all triggers, functions, and procedures thoroughly",
}

// WriteNotes prints the fixed list of caveats shown after every run.
func WriteNotes(w io.Writer) error {
	var b strings.Builder
	b.WriteString("\nIMPORTANT NOTES:\n")
	for _, n := range notes {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return errors.Annotate(err, "failed to write notes")
}
