package common

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	TBPRE = "tb"
	CLPRE = "cl"
)

var (
	space = regexp.MustCompile(`\s+`)
	reg   = regexp.MustCompile(`[^a-zA-Z0-9 _]+`)
)

/*
	GenCompliantNames generates names that can be used in sqlite.

Column names and table names follow the same rules, so one function takes the
prefix as input: lower case, snake case, disallowed characters stripped, SQL
keywords avoided. If a standardized name results in an unusable result then
the name is {prefix}{idx}.
*/
func GenCompliantNames(rawnames []string, prefix string) []string {
	gorgeous := make([]string, len(rawnames))

	counter := map[string]int{}
	for idx, item := range rawnames {
		item = strings.TrimSpace(item)
		item = reg.ReplaceAllString(item, "")
		item = space.ReplaceAllString(item, "_")
		item = strings.ToLower(item)
		if keywords[item] {
			item = fmt.Sprintf("%s%d", prefix, idx)
		}

		if len(item) == 0 {
			gorgeous[idx] = fmt.Sprintf("%s%d", prefix, idx)
			continue
		}

		// cannot start with a number
		if item[0] >= '0' && item[0] <= '9' {
			item = fmt.Sprintf("%s%d%s", prefix, idx, item)
		}

		counter[item]++
		if counter[item] == 1 {
			gorgeous[idx] = item
		} else {
			gorgeous[idx] = fmt.Sprintf("%s%d", item, counter[item])
		}
	}
	return gorgeous
}

// GenColumnNames generates sanitized SQL column names from raw headers.
func GenColumnNames(rawheaders []string) []string {
	return GenCompliantNames(rawheaders, CLPRE)
}

// GenTableNames generates sanitized SQL table names from raw table names.
func GenTableNames(rawtables []string) []string {
	return GenCompliantNames(rawtables, TBPRE)
}

// GenInsertStmt generates a prepared INSERT statement with ? placeholders.
func GenInsertStmt(table string, fields []string) (string, error) {
	if table == "" || len(fields) == 0 {
		return "", fmt.Errorf("table name and fields are required")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(fields, ","),
		strings.Repeat("?,", len(fields)-1)+"?",
	), nil
}

// GenCreateTableSQLWithTypes generates a CREATE TABLE statement. Columns
// without a type, or with an empty one, are TEXT.
func GenCreateTableSQLWithTypes(tableName string, columnNames []string, colTypes []string) string {
	var builder strings.Builder
	builder.Grow(len(tableName) + len(columnNames)*20)

	builder.WriteString("CREATE TABLE ")
	builder.WriteString(tableName)
	builder.WriteString(" (")
	for i, name := range columnNames {
		colType := "TEXT"
		if i < len(colTypes) && colTypes[i] != "" {
			colType = colTypes[i]
		}
		builder.WriteString(name)
		builder.WriteByte(' ')
		builder.WriteString(colType)
		if i < len(columnNames)-1 {
			builder.WriteString(", ")
		}
	}
	builder.WriteByte(')')
	return builder.String()
}

// keywords are the SQLite keywords that need quoting when used as identifiers.
// https://sqlite.org/lang_keywords.html
var keywords = func() map[string]bool {
	m := make(map[string]bool)
	for _, k := range strings.Fields(`
		abort action add after all alter always analyze and as
		asc attach autoincrement before begin between by cascade case cast
		check collate column commit conflict constraint create cross current current_date
		current_time current_timestamp database default deferrable deferred delete desc detach distinct
		do drop each else end escape except exclude exclusive exists
		explain fail filter first following for foreign from full generated
		glob group groups having if ignore immediate in index indexed
		initially inner insert instead intersect into is isnull join key
		last left like limit match materialized natural no not nothing
		notnull null nulls of offset on or order others outer
		over partition plan pragma preceding primary query raise range recursive
		references regexp reindex release rename replace restrict returning right rollback
		row rows savepoint select set table temp temporary then ties
		to transaction trigger unbounded union unique update using vacuum values
		view virtual when where window with without`) {
		m[k] = true
	}
	return m
}()
