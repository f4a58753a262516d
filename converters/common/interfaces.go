package common

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// RowProvider exposes tabular data to a report sink.
type RowProvider interface {
	GetTableNames() []string
	GetHeaders(tableName string) []string
	// GetColumnTypes returns one SQL type per header.
	GetColumnTypes(tableName string) []string
	// ScanRows iterates over rows for the given table.
	// It calls the yield function for each row.
	// If yield returns an error, iteration stops and that error is returned.
	ScanRows(ctx context.Context, tableName string, yield func([]interface{}, error) error) error
}

// Driver writes the tables of a RowProvider to w in its own format.
type Driver interface {
	Export(ctx context.Context, provider RowProvider, w io.Writer, opts *ExportOptions) error
}

// ExportOptions holds the settings shared by all report sinks.
type ExportOptions struct {
	// BatchSize is the number of rows written per transaction or flush.
	BatchSize int
	// LogErrors records row errors in an error table instead of aborting.
	// Sinks without such a table ignore it.
	LogErrors bool
	Logger    *zap.Logger
}

// DefaultBatchSize is used when ExportOptions.BatchSize is not positive.
const DefaultBatchSize = 1000

// Normalize returns a copy of opts with defaults filled in. A nil opts is valid.
func (opts *ExportOptions) Normalize() *ExportOptions {
	out := ExportOptions{}
	if opts != nil {
		out = *opts
	}
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultBatchSize
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return &out
}
