package converters

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/darianmavgo/ora2pg/converters/common"
	"github.com/darianmavgo/ora2pg/rewriter"
	"github.com/pingcap/errors"
)

// Report table names.
const (
	SummaryTable  = "summary"
	FindingsTable = "findings"
)

// ParseRule is the rule name attached to findings from output validation.
const ParseRule = "pg_parse"

// Finding is a line that needs human review.
type Finding struct {
	// Line is the 1-based input line number.
	Line      int
	Rule      string
	Note      string
	Original  string
	Converted string
}

// Report is everything a conversion run observed. It can be exported
// through any registered report sink.
type Report struct {
	InputPath    string
	OutputPath   string
	Started      time.Time
	Finished     time.Time
	BytesWritten int64
	Stats        *rewriter.Stats
	Findings     []Finding
}

var _ common.RowProvider = (*Report)(nil)

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Stats: rewriter.NewStats()}
}

// Record adds one transformed line to the report.
func (r *Report) Record(lineNo int, original string, res rewriter.Result) {
	r.Stats.Add(res)
	for _, f := range res.Findings {
		r.Findings = append(r.Findings, Finding{
			Line:      lineNo,
			Rule:      f.Rule,
			Note:      f.Note,
			Original:  strings.TrimRight(original, "\r\n"),
			Converted: strings.TrimRight(res.Line, "\r\n"),
		})
	}
}

// AddFinding records a finding that did not come from a rewrite rule.
func (r *Report) AddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
	r.Stats.Findings[f.Rule]++
}

func (r *Report) GetTableNames() []string {
	return []string{SummaryTable, FindingsTable}
}

func (r *Report) GetHeaders(tableName string) []string {
	switch tableName {
	case SummaryTable:
		return []string{"metric", "value"}
	case FindingsTable:
		return []string{"line", "rule", "note", "original", "converted"}
	}
	return nil
}

func (r *Report) GetColumnTypes(tableName string) []string {
	switch tableName {
	case SummaryTable:
		return []string{"TEXT", "INTEGER"}
	case FindingsTable:
		return []string{"INTEGER", "TEXT", "TEXT", "TEXT", "TEXT"}
	}
	return nil
}

func (r *Report) ScanRows(ctx context.Context, tableName string, yield func([]interface{}, error) error) error {
	var rows [][]interface{}
	switch tableName {
	case SummaryTable:
		rows = r.summaryRows()
	case FindingsTable:
		rows = make([][]interface{}, 0, len(r.Findings))
		for _, f := range r.Findings {
			rows = append(rows, []interface{}{int64(f.Line), f.Rule, f.Note, f.Original, f.Converted})
		}
	default:
		return errors.Errorf("unknown report table %q", tableName)
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		if err := yield(row, nil); err != nil {
			return err
		}
	}
	return nil
}

// summaryRows lists line totals, statement counters, outcomes and
// per-rule finding totals, in that order.
func (r *Report) summaryRows() [][]interface{} {
	s := r.Stats
	rows := [][]interface{}{{"lines", int64(s.Lines)}}
	for _, k := range rewriter.Kinds {
		rows = append(rows, []interface{}{string(k), int64(s.Count(k))})
	}
	for _, o := range rewriter.Outcomes {
		rows = append(rows, []interface{}{"outcome." + o.String(), int64(s.Outcomes[o])})
	}

	rules := make([]string, 0, len(s.Findings))
	for rule := range s.Findings {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	for _, rule := range rules {
		rows = append(rows, []interface{}{"finding." + rule, int64(s.Findings[rule])})
	}
	return rows
}
