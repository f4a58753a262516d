package rewriter

// Keyword checks are whole-word and need not be adjacent.
const (
	createKeyword = `(?i)\bCREATE\b`
	grantStart    = `(?i)^\s*GRANT\s+`
)

func createRules() []Rule {
	return []Rule{
		newCountRule("create_view",
			"Strip FORCE/EDITIONABLE from CREATE VIEW and count views",
			200, CreateViews,
			[]string{createKeyword, `(?i)\bVIEW\b`},
			`(?i)\bFORCE\s+EDITIONABLE\s+`,
			`(?i)\bFORCE\s+`,
			`(?i)\bEDITIONABLE\s+`,
		),
		newCountRule("create_table",
			"Strip EDITIONABLE from CREATE TABLE and count tables",
			210, CreateTables,
			[]string{createKeyword, `(?i)\bTABLE\b`},
			`(?i)\bEDITIONABLE\s+`,
		),
		newCountRule("create_sequence",
			"Count CREATE SEQUENCE statements",
			220, CreateSequences,
			[]string{createKeyword, `(?i)\bSEQUENCE\b`},
		),
		newCountRule("create_index",
			"Count CREATE INDEX statements",
			230, CreateIndexes,
			[]string{createKeyword, `(?i)\bINDEX\b`},
		),
		newCountRule("grant",
			"Count GRANT statements",
			300, Grants,
			[]string{grantStart},
		),
	}
}
