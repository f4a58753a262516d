package rewriter

// dataTypeRules maps Oracle column types to PostgreSQL. Order matters: the
// NUMBER forms go from most to least specific, and LONG RAW is rewritten
// before the bare LONG rule that would otherwise see it.
func dataTypeRules() []Rule {
	return []Rule{
		NewSubstitution("number_integer", "NUMBER(p,0) to INTEGER",
			500, `(?i)\bNUMBER\s*\(\s*(\d+)\s*,\s*0\s*\)`, "INTEGER"),
		NewSubstitution("number_scaled", "NUMBER(p,s) to NUMERIC(p,s)",
			501, `(?i)\bNUMBER\s*\(\s*(\d+)\s*,\s*(\d+)\s*\)`, "NUMERIC(${1},${2})"),
		NewSubstitution("number_precision", "NUMBER(p) to NUMERIC(p)",
			502, `(?i)\bNUMBER\s*\(\s*(\d+)\s*\)`, "NUMERIC(${1})"),
		NewSubstitution("number_plain", "NUMBER to NUMERIC",
			503, `(?i)\bNUMBER\b`, "NUMERIC").NotFollowedBy(`\s*\(`),
		NewSubstitution("varchar2", "VARCHAR2 and NVARCHAR2 to VARCHAR",
			510, `(?i)\bN?VARCHAR2\b`, "VARCHAR"),
		NewSubstitution("clob", "CLOB and NCLOB to TEXT",
			520, `(?i)\bN?CLOB\b`, "TEXT"),
		NewSubstitution("blob", "BLOB to BYTEA",
			521, `(?i)\bBLOB\b`, "BYTEA"),
		NewSubstitution("long_raw", "LONG RAW to BYTEA",
			530, `(?i)\bLONG\s+RAW\b`, "BYTEA"),
		NewSubstitution("long", "LONG to TEXT",
			531, `(?i)\bLONG\b`, "TEXT").NotFollowedBy(`\s+RAW`),
		NewSubstitution("raw", "RAW(n) to BYTEA, dropping the size",
			532, `(?i)\bRAW\s*\(\s*\d+\s*\)`, "BYTEA"),
		NewSubstitution("date", "DATE to TIMESTAMP (Oracle DATE carries time of day)",
			540, `(?i)\bDATE\b`, "TIMESTAMP"),
	}
}
