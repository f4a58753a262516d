// Package excel writes review reports as .xlsx workbooks, one sheet per table.
package excel

import (
	"context"
	"io"

	"github.com/darianmavgo/ora2pg/converters"
	"github.com/darianmavgo/ora2pg/converters/common"
	"github.com/pingcap/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func init() {
	converters.Register("excel", &Driver{})
}

// Driver is the "excel" report sink.
type Driver struct{}

func (d *Driver) Export(ctx context.Context, provider common.RowProvider, w io.Writer, opts *common.ExportOptions) error {
	return ExportWorkbook(ctx, provider, w, opts)
}

// ExportWorkbook streams every table of provider into its own sheet, with a
// bold header row, and writes the workbook to w.
func ExportWorkbook(ctx context.Context, provider common.RowProvider, w io.Writer, opts *common.ExportOptions) error {
	opts = opts.Normalize()

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Annotate(err, "failed to create header style")
	}

	defaultSheet := f.GetSheetName(0)
	sheets := 0
	for _, tableName := range provider.GetTableNames() {
		headers := provider.GetHeaders(tableName)
		if len(headers) == 0 {
			continue
		}

		if sheets == 0 {
			if err := f.SetSheetName(defaultSheet, tableName); err != nil {
				return errors.Annotatef(err, "failed to name sheet %s", tableName)
			}
		} else if _, err := f.NewSheet(tableName); err != nil {
			return errors.Annotatef(err, "failed to create sheet %s", tableName)
		}
		sheets++

		rows, err := writeSheet(ctx, f, provider, tableName, headers, headerStyle, opts)
		if err != nil {
			return err
		}
		opts.Logger.Debug("sheet written", zap.String("sheet", tableName), zap.Int("rows", rows))
	}

	if err := f.Write(w); err != nil {
		return errors.Annotate(err, "failed to write workbook")
	}
	return nil
}

func writeSheet(ctx context.Context, f *excelize.File, provider common.RowProvider, sheet string,
	headers []string, headerStyle int, opts *common.ExportOptions) (int, error) {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return 0, errors.Annotatef(err, "failed to open stream writer for sheet %s", sheet)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return 0, errors.Annotatef(err, "failed to write header for sheet %s", sheet)
	}

	rowIdx := 1
	err = provider.ScanRows(ctx, sheet, func(row []interface{}, rowErr error) error {
		if rowErr != nil {
			return rowErr
		}
		rowIdx++
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return errors.Trace(err)
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = clampCell(v)
		}
		return sw.SetRow(cell, values)
	})
	if err != nil {
		return 0, errors.Annotatef(err, "failed to write rows for sheet %s", sheet)
	}
	if err := sw.Flush(); err != nil {
		return 0, errors.Annotatef(err, "failed to flush sheet %s", sheet)
	}
	return rowIdx - 1, nil
}

// clampCell cuts strings to the cell length Excel accepts.
func clampCell(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok || len(s) <= excelize.TotalCellChars {
		return v
	}
	r := []rune(s)
	if len(r) <= excelize.TotalCellChars {
		return v
	}
	return string(r[:excelize.TotalCellChars])
}
