// Package sqlite writes review reports as SQLite databases.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/darianmavgo/ora2pg/converters"
	"github.com/darianmavgo/ora2pg/converters/common"
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// ErrorTable receives rows that could not be written when LogErrors is set.
const ErrorTable = "_ora2pg_errors"

func init() {
	converters.Register("sqlite", &Driver{})
}

// Driver is the "sqlite" report sink.
type Driver struct{}

func (d *Driver) Export(ctx context.Context, provider common.RowProvider, w io.Writer, opts *common.ExportOptions) error {
	return ImportToSQLite(ctx, provider, w, opts)
}

// ImportToSQLite writes every table of provider into a SQLite database and
// writes the database to writer.
// If writer is a regular *os.File, the database is built in place so that
// partial data survives an interruption. Otherwise it is built in a
// temporary file and copied.
func ImportToSQLite(ctx context.Context, provider common.RowProvider, writer io.Writer, opts *common.ExportOptions) error {
	opts = opts.Normalize()
	logger := opts.Logger

	var dbPath string
	useTemp := true
	if f, ok := writer.(*os.File); ok {
		stat, err := f.Stat()
		if err == nil && stat.Mode().IsRegular() {
			dbPath = f.Name()
			useTemp = false
			logger.Debug("using direct file", zap.String("path", dbPath))
		}
	}

	if useTemp {
		tmpFile, err := os.CreateTemp("", "ora2pg-report-*.db")
		if err != nil {
			return errors.Annotate(err, "failed to create temp file")
		}
		dbPath = tmpFile.Name()
		tmpFile.Close()
		defer os.Remove(dbPath)
		logger.Debug("created temp file", zap.String("path", dbPath))
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return errors.Annotate(err, "failed to open database")
	}
	// One connection keeps tx.Stmt cheap and avoids locking.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA page_size = 65536; PRAGMA cache_size = -2000;"); err != nil {
		db.Close()
		return errors.Annotate(err, "failed to set PRAGMAs")
	}

	err = populateDB(ctx, db, provider, opts)
	if closeErr := db.Close(); err == nil && closeErr != nil {
		err = errors.Annotate(closeErr, "failed to close database")
	}
	if err != nil {
		return err
	}

	if useTemp {
		f, err := os.Open(dbPath)
		if err != nil {
			return errors.Annotate(err, "failed to open temp file for reading")
		}
		defer f.Close()
		if _, err := io.Copy(writer, f); err != nil {
			return errors.Annotate(err, "failed to write to output")
		}
	}
	logger.Debug("report database written")
	return nil
}

func populateDB(ctx context.Context, db *sql.DB, provider common.RowProvider, opts *common.ExportOptions) error {
	logger := opts.Logger

	var logStmtMain *sql.Stmt
	if opts.LogErrors {
		_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+ErrorTable+` (
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			message TEXT,
			table_name TEXT,
			row_data TEXT
		)`)
		if err != nil {
			return errors.Annotate(err, "failed to create error log table")
		}
		logStmtMain, err = db.PrepareContext(ctx, `INSERT INTO `+ErrorTable+` (message, table_name, row_data) VALUES (?, ?, ?)`)
		if err != nil {
			return errors.Annotate(err, "failed to prepare log statement")
		}
		defer logStmtMain.Close()
	}

	tableNames := provider.GetTableNames()
	sqlNames := common.GenTableNames(tableNames)
	for i, tableName := range tableNames {
		headers := provider.GetHeaders(tableName)
		if len(headers) == 0 {
			continue
		}
		if err := populateTable(ctx, db, provider, tableName, sqlNames[i], headers, logStmtMain, opts); err != nil {
			return err
		}
		logger.Debug("finished table", zap.String("table", sqlNames[i]))
	}
	return nil
}

func populateTable(ctx context.Context, db *sql.DB, provider common.RowProvider, tableName, sqlName string,
	headers []string, logStmtMain *sql.Stmt, opts *common.ExportOptions) error {
	columns := common.GenColumnNames(headers)
	createSQL := common.GenCreateTableSQLWithTypes(sqlName, columns, provider.GetColumnTypes(tableName))
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return errors.Annotatef(err, "failed to create table %s", sqlName)
	}

	insertSQL, err := common.GenInsertStmt(sqlName, columns)
	if err != nil {
		return errors.Annotatef(err, "failed to generate insert statement for table %s", sqlName)
	}
	mainStmt, err := db.PrepareContext(ctx, insertSQL)
	if err != nil {
		return errors.Annotatef(err, "failed to prepare insert statement for table %s", sqlName)
	}
	defer mainStmt.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "failed to begin transaction")
	}
	stmt := tx.Stmt(mainStmt)
	var logStmt *sql.Stmt
	if logStmtMain != nil {
		logStmt = tx.Stmt(logStmtMain)
	}

	logRow := func(msg string, row []interface{}) error {
		if _, err := logStmt.Exec(msg, sqlName, fmt.Sprintf("%v", row)); err != nil {
			return errors.Annotate(err, "failed to log error")
		}
		return nil
	}

	rowCount := 0
	err = provider.ScanRows(ctx, tableName, func(row []interface{}, rowErr error) error {
		if rowErr != nil {
			if logStmt != nil {
				return logRow(rowErr.Error(), row)
			}
			return rowErr
		}

		// Pad short rows with NULL and cut long ones to the header width.
		if len(row) < len(headers) {
			padded := make([]interface{}, len(headers))
			copy(padded, row)
			row = padded
		} else if len(row) > len(headers) {
			row = row[:len(headers)]
		}

		if _, err := stmt.Exec(row...); err != nil {
			if logStmt != nil {
				return logRow(err.Error(), row)
			}
			return errors.Annotatef(err, "failed to insert row in table %s", sqlName)
		}

		rowCount++
		if rowCount%opts.BatchSize == 0 {
			stmt.Close()
			if logStmt != nil {
				logStmt.Close()
			}
			if err := tx.Commit(); err != nil {
				return errors.Annotatef(err, "failed to commit transaction for table %s", sqlName)
			}
			var err error
			tx, err = db.BeginTx(ctx, nil)
			if err != nil {
				return errors.Annotate(err, "failed to begin transaction")
			}
			stmt = tx.Stmt(mainStmt)
			if logStmtMain != nil {
				logStmt = tx.Stmt(logStmtMain)
			}
		}
		return nil
	})

	stmt.Close()
	if logStmt != nil {
		logStmt.Close()
	}
	if err != nil {
		tx.Rollback()
		return errors.Annotatef(err, "failed to scan rows for table %s", sqlName)
	}
	if err := tx.Commit(); err != nil {
		return errors.Annotatef(err, "failed to commit transaction for table %s", sqlName)
	}
	opts.Logger.Debug("table written", zap.String("table", sqlName), zap.Int("rows", rowCount))
	return nil
}
