package converters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/darianmavgo/ora2pg/converters/common"
	"github.com/stretchr/testify/require"
)

// tsvDriver writes every table as tab-separated text.
type tsvDriver struct{}

func (tsvDriver) Export(ctx context.Context, provider common.RowProvider, w io.Writer, opts *common.ExportOptions) error {
	for _, table := range provider.GetTableNames() {
		err := provider.ScanRows(ctx, table, func(row []interface{}, err error) error {
			if err != nil {
				return err
			}
			_, werr := fmt.Fprintf(w, "%s\t%v\n", table, row)
			return werr
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func TestRegistry(t *testing.T) {
	Register("tsv-test", tsvDriver{})
	require.Contains(t, Drivers(), "tsv-test")

	require.Panics(t, func() { Register("tsv-test", tsvDriver{}) })
	require.Panics(t, func() { Register("nil-test", nil) })

	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), "tsv-test", buildReport(), &buf, nil))
	require.Contains(t, buf.String(), "summary\t[lines 3]\n")
	require.Contains(t, buf.String(), "findings\t[3 pg_parse syntax error  ]\n")

	err := Export(context.Background(), "missing", buildReport(), &buf, nil)
	require.ErrorContains(t, err, `unknown driver "missing"`)
}

func TestDriverForPath(t *testing.T) {
	tests := map[string]string{
		"review.db":          "sqlite",
		"review.sqlite":      "sqlite",
		"out/REVIEW.SQLITE3": "sqlite",
		"review.xlsx":        "excel",
	}
	for path, want := range tests {
		got, err := DriverForPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := DriverForPath("review.csv")
	require.ErrorContains(t, err, `unsupported report file type: ".csv"`)
}
