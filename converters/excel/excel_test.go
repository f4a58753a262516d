package excel

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/darianmavgo/ora2pg/converters"
	"github.com/darianmavgo/ora2pg/rewriter"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *converters.Report {
	report := converters.NewReport()
	rw := rewriter.New(nil, nil)
	lines := []string{
		"DROP TABLE emp cascade constraints;\n",
		"SELECT value FROM v$parameter;\n",
		"SELECT NVL2(a, 1, 0) FROM t;\n",
	}
	for i, line := range lines {
		report.Record(i+1, line, rw.Transform(line))
	}
	return report
}

func TestExportWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, converters.Export(context.Background(), "excel", sampleReport(), &buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{converters.SummaryTable, converters.FindingsTable}, f.GetSheetList())

	rows, err := f.GetRows(converters.FindingsTable)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"line", "rule", "note", "original", "converted"}, rows[0])
	require.Equal(t, "2", rows[1][0])
	require.Equal(t, "system_view", rows[1][1])
	require.Equal(t, "SELECT value FROM v$parameter;", rows[1][3])
	require.Equal(t, "nvl2_review", rows[2][1])

	summary, err := f.GetRows(converters.SummaryTable)
	require.NoError(t, err)
	require.Equal(t, []string{"metric", "value"}, summary[0])
	require.Equal(t, []string{"lines", "3"}, summary[1])
	require.Equal(t, []string{"drop_views", "0"}, summary[2])
	require.Equal(t, []string{"drop_tables", "1"}, summary[3])
}

func TestExportWorkbookEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(context.Background(), converters.NewReport(), &buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(converters.FindingsTable)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestClampCell(t *testing.T) {
	long := strings.Repeat("x", excelize.TotalCellChars+10)
	require.Len(t, clampCell(long), excelize.TotalCellChars)
	require.Equal(t, "short", clampCell("short"))
	require.Equal(t, int64(7), clampCell(int64(7)))
}
