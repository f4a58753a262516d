package rewriter

import (
	"testing"

	"github.com/darianmavgo/ora2pg/config"
	"github.com/stretchr/testify/require"
)

func TestTransformIdentity(t *testing.T) {
	r := New(nil, nil)
	lines := []string{
		"",
		"\n",
		"   \t\n",
		"-- comment\n",
		"  -- DROP VIEW foo;\n",
		"INSERT INTO t (a, b) VALUES (1, 'x');\n",
		"ALTER TABLE t ADD CONSTRAINT pk PRIMARY KEY (id);\n",
		"  ) SEGMENT CREATION IMMEDIATE\n",
		"/\n",
	}
	for _, line := range lines {
		res := r.Transform(line)
		require.Equal(t, line, res.Line)
		require.Equal(t, Unchanged, res.Outcome)
		require.Empty(t, res.Events)
		require.Empty(t, res.Findings)
	}
}

func TestTransformDrop(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  string
		event Kind
	}{
		{"View", "DROP VIEW foo;\n", "DROP VIEW IF EXISTS foo CASCADE;\n", DropViews},
		{"ViewNoNewline", "DROP VIEW foo;", "DROP VIEW IF EXISTS foo CASCADE;", DropViews},
		{"ViewTrailingSpace", "DROP VIEW foo;   \n", "DROP VIEW IF EXISTS foo CASCADE;\n", DropViews},
		{"ViewNoSemicolon", "DROP VIEW foo\n", "DROP VIEW IF EXISTS foo\n", DropViews},
		{"TypeLowercase", "drop type t_obj;\n", "drop type IF EXISTS t_obj CASCADE;\n", DropTypes},
		{"Function", "DROP FUNCTION f_calc;\n", "DROP FUNCTION IF EXISTS f_calc CASCADE;\n", DropFunctions},
		{"Procedure", "  DROP PROCEDURE p_load;\n", "  DROP PROCEDURE IF EXISTS p_load CASCADE;\n", DropProcedures},
		{"TableCascade", "DROP TABLE emp cascade constraints;\n", "DROP TABLE IF EXISTS emp CASCADE;\n", DropTables},
		{"TablePlain", "DROP TABLE emp;\n", "DROP TABLE IF EXISTS emp;\n", DropTables},
		{"SequenceUnterminated", "DROP SEQUENCE s1", "DROP SEQUENCE IF EXISTS s1;\n", DropSequences},
		{"SequenceUnterminatedNewline", "DROP SEQUENCE s1\n", "DROP SEQUENCE IF EXISTS s1;\n", DropSequences},
		{"SequenceTerminated", "DROP SEQUENCE s1;\n", "DROP SEQUENCE IF EXISTS s1;\n", DropSequences},
		{"Trigger", "DROP TRIGGER trg_emp;\n", "DROP TRIGGER IF EXISTS trg_emp;\n", DropTriggers},
		{"Index", "DROP INDEX idx_emp;\n", "DROP INDEX IF EXISTS idx_emp;\n", DropIndexes},
		{"QualifiedView", `DROP VIEW "ARGUS_APP"."V_EMP";` + "\n", `DROP VIEW IF EXISTS "V_EMP" CASCADE;` + "\n", DropViews},
	}

	r := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Transform(tt.line)
			require.Equal(t, tt.want, res.Line)
			require.Equal(t, []Kind{tt.event}, res.Events)
			require.Equal(t, Translated, res.Outcome)
		})
	}
}

func TestTransformDropPackage(t *testing.T) {
	r := New(nil, nil)
	res := r.Transform("DROP PACKAGE ARGUS_APP.PKG_UTIL;\n")
	require.Equal(t, "-- DROP PACKAGE PKG_UTIL; -- Oracle package, convert to PostgreSQL schema/functions\n", res.Line)
	require.Equal(t, []Kind{DropPackages}, res.Events)
	require.Equal(t, Flagged, res.Outcome)
	require.Equal(t, []Finding{{Rule: "drop_statement", Note: packageNote}}, res.Findings)

	res = r.Transform("DROP PACKAGE BODY pkg_util;")
	require.Equal(t, "-- DROP PACKAGE BODY pkg_util; -- Oracle package, convert to PostgreSQL schema/functions\n", res.Line)
	require.Equal(t, []Kind{DropPackages}, res.Events)
}

func TestTransformCreateAndGrant(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		events []Kind
	}{
		{
			"ViewModifiers",
			`CREATE OR REPLACE FORCE EDITIONABLE VIEW "ARGUS_APP"."V_EMP" ("ID", "NAME") AS` + "\n",
			`CREATE OR REPLACE VIEW "V_EMP" ("ID", "NAME") AS` + "\n",
			[]Kind{CreateViews},
		},
		{
			"ViewForceOnly",
			"create or replace force view v_dept as\n",
			"create or replace view v_dept as\n",
			[]Kind{CreateViews},
		},
		{
			"Table",
			`CREATE TABLE "ARGUS_APP"."EMP"` + "\n",
			`CREATE TABLE "EMP"` + "\n",
			[]Kind{CreateTables},
		},
		{
			"TableEditionable",
			"CREATE EDITIONABLE TABLE emp (id NUMBER(10,0));\n",
			"CREATE TABLE emp (id INTEGER);\n",
			[]Kind{CreateTables},
		},
		{
			"Sequence",
			`CREATE SEQUENCE "ARGUS_APP"."EMP_SEQ" MINVALUE 1 INCREMENT BY 1 START WITH 1 CACHE 20;` + "\n",
			`CREATE SEQUENCE "EMP_SEQ" MINVALUE 1 INCREMENT BY 1 START WITH 1 CACHE 20;` + "\n",
			[]Kind{CreateSequences},
		},
		{
			"UniqueIndex",
			`CREATE UNIQUE INDEX "ARGUS_APP"."EMP_PK" ON "ARGUS_APP"."EMP" ("ID")` + "\n",
			`CREATE UNIQUE INDEX "EMP_PK" ON "EMP" ("ID")` + "\n",
			[]Kind{CreateIndexes},
		},
		{
			"Grant",
			`  GRANT SELECT ON "ARGUS_APP"."EMP" TO "REPORTER";` + "\n",
			`  GRANT SELECT ON "EMP" TO "REPORTER";` + "\n",
			[]Kind{Grants},
		},
	}

	r := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Transform(tt.line)
			require.Equal(t, tt.want, res.Line)
			require.Equal(t, tt.events, res.Events)
		})
	}
}

func TestTransformCountOnlyLineIsUnchanged(t *testing.T) {
	r := New(nil, nil)
	res := r.Transform("CREATE SEQUENCE emp_seq START WITH 1;\n")
	require.Equal(t, "CREATE SEQUENCE emp_seq START WITH 1;\n", res.Line)
	require.Equal(t, []Kind{CreateSequences}, res.Events)
	require.Equal(t, Unchanged, res.Outcome)
}

func TestTransformKeywordsAreWholeWords(t *testing.T) {
	r := New(nil, nil)
	res := r.Transform(`  "CREATED_BY" VARCHAR2(30), "VIEWER_ID" NUMBER(10,0),` + "\n")
	require.Equal(t, `  "CREATED_BY" VARCHAR(30), "VIEWER_ID" INTEGER,`+"\n", res.Line)
	require.Empty(t, res.Events)
}

func TestTransformSchemaQualifier(t *testing.T) {
	r := New(nil, nil)
	tests := []struct {
		line string
		want string
	}{
		{`SELECT * FROM "ARGUS_APP".EMPLOYEES;`, `SELECT * FROM EMPLOYEES;`},
		{`SELECT * FROM ARGUS_APP.EMPLOYEES;`, `SELECT * FROM EMPLOYEES;`},
		{`SELECT * FROM argus_app.employees e JOIN Argus_App.depts d ON 1 = 1;`, `SELECT * FROM employees e JOIN depts d ON 1 = 1;`},
		{`SELECT * FROM "argus_app".EMPLOYEES;`, `SELECT * FROM "argus_app".EMPLOYEES;`},
		{`SELECT * FROM MY_ARGUS_APP.EMPLOYEES;`, `SELECT * FROM MY_ARGUS_APP.EMPLOYEES;`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, r.Transform(tt.line).Line, tt.line)
	}

	cfg := config.DefaultConfig()
	cfg.Schemas = []string{"HR", "SALES$"}
	r = New(cfg, nil)
	require.Equal(t, "SELECT * FROM EMP, ORDERS, ARGUS_APP.X;",
		r.Transform(`SELECT * FROM HR.EMP, "SALES$".ORDERS, ARGUS_APP.X;`).Line)
}

func TestTransformDataTypes(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`  "ID" NUMBER(10,0) NOT NULL ENABLE,`, `  "ID" INTEGER NOT NULL ENABLE,`},
		{`  "ID" number( 19 , 0 ),`, `  "ID" INTEGER,`},
		{`  "SALARY" NUMBER(8,2),`, `  "SALARY" NUMERIC(8,2),`},
		{`  "SALARY" NUMBER(8, 2),`, `  "SALARY" NUMERIC(8,2),`},
		{`  "QTY" NUMBER(5),`, `  "QTY" NUMERIC(5),`},
		{`  "AMT" NUMBER,`, `  "AMT" NUMERIC,`},
		{`  "A" NUMBER, "B" NUMBER(*),`, `  "A" NUMERIC, "B" NUMBER(*),`},
		{`  "NAME" VARCHAR2(100 BYTE),`, `  "NAME" VARCHAR(100 BYTE),`},
		{`  "TITLE" NVARCHAR2(50),`, `  "TITLE" VARCHAR(50),`},
		{`  "BODY" CLOB, "NBODY" NCLOB,`, `  "BODY" TEXT, "NBODY" TEXT,`},
		{`  "IMG" BLOB,`, `  "IMG" BYTEA,`},
		{`  "DATA" LONG RAW,`, `  "DATA" BYTEA,`},
		{`  "NOTES" LONG,`, `  "NOTES" TEXT,`},
		{`  "GUID" RAW(16),`, `  "GUID" BYTEA,`},
		{`  "HIRED" DATE,`, `  "HIRED" TIMESTAMP,`},
		{`  "HIRED" DATE DEFAULT SYSDATE,`, `  "HIRED" TIMESTAMP DEFAULT CURRENT_TIMESTAMP,`},
		{`  "UPDATED_DATE" VARCHAR2(10),`, `  "UPDATED_DATE" VARCHAR(10),`},
	}

	r := New(nil, nil)
	for _, tt := range tests {
		res := r.Transform(tt.line + "\n")
		require.Equal(t, tt.want+"\n", res.Line, tt.line)
		require.Equal(t, Translated, res.Outcome, tt.line)
	}
}

func TestTransformFunctions(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"SELECT NVL(a, 0) FROM t;", "SELECT COALESCE(a, 0) FROM t;"},
		{"SELECT TRUNC(hire_date) FROM emp;", "SELECT DATE_TRUNC('day', hire_date) FROM emp;"},
		{"SELECT TRUNC(SYSDATE) FROM emp;", "SELECT DATE_TRUNC('day', CURRENT_TIMESTAMP) FROM emp;"},
		{"WHERE INSTR(name, 'a') > 0", "WHERE POSITION('a' IN name) > 0"},
		{"SELECT SUBSTR(name, 1, 3) FROM emp;", "SELECT SUBSTRING(name, 1, 3) FROM emp;"},
		{"SELECT SYSDATE FROM DUAL;", "SELECT CURRENT_TIMESTAMP FROM (SELECT 1) AS dual;"},
		{"select 1 from dual", "select 1 FROM (SELECT 1) AS dual"},
	}

	r := New(nil, nil)
	for _, tt := range tests {
		res := r.Transform(tt.line)
		require.Equal(t, tt.want, res.Line, tt.line)
		require.Equal(t, Translated, res.Outcome, tt.line)
		require.Empty(t, res.Findings, tt.line)
	}
}

func TestTransformReviewFindings(t *testing.T) {
	tests := []struct {
		line string
		rule string
	}{
		{"SELECT NVL2(a, 'y', 'n') FROM t;", "nvl2_review"},
		{"SELECT DECODE(status, 'A', 'Active', 'Inactive') FROM t;", "decode_review"},
		{"SELECT TRUNC(hire_date, 'MM') FROM emp;", "trunc_review"},
		{"SELECT INSTR(name, 'a', 1, 2) FROM emp;", "instr_review"},
	}

	r := New(nil, nil)
	for _, tt := range tests {
		res := r.Transform(tt.line)
		require.Equal(t, tt.line, res.Line, "review rules must not change text")
		require.Equal(t, Flagged, res.Outcome)
		require.Len(t, res.Findings, 1)
		require.Equal(t, tt.rule, res.Findings[0].Rule)
	}
}

func TestTransformNVL2OptIn(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EnabledRules = []string{"nvl2_case"}
	r := New(cfg, nil)

	res := r.Transform("SELECT NVL2(a , 'y', 'n') FROM t;")
	require.Equal(t, "SELECT CASE WHEN a IS NOT NULL THEN 'y' ELSE 'n' END FROM t;", res.Line)
	require.Equal(t, Translated, res.Outcome)
	require.Empty(t, res.Findings)
}

func TestTransformSystemView(t *testing.T) {
	r := New(nil, nil)
	res := r.Transform("SELECT value FROM v$parameter WHERE name = 'db_block_size';\n")
	require.Equal(t, "-- SELECT value FROM v$parameter WHERE name = 'db_block_size'; -- Oracle system view, needs manual conversion\n", res.Line)
	require.Equal(t, Flagged, res.Outcome)
	require.Equal(t, "system_view", res.Findings[0].Rule)
}

func TestTransformCountsBeforeDisable(t *testing.T) {
	r := New(nil, nil)
	res := r.Transform("CREATE VIEW v_params AS SELECT name FROM V$PARAMETER;\n")
	require.Equal(t, []Kind{CreateViews}, res.Events)
	require.Equal(t, Flagged, res.Outcome)
	require.Equal(t, "-- CREATE VIEW v_params AS SELECT name FROM V$PARAMETER; -- Oracle system view, needs manual conversion\n", res.Line)
}

func TestTransformIdempotentTypesAndDual(t *testing.T) {
	r := New(nil, nil)
	lines := []string{
		`  "ID" NUMBER(10,0), "SALARY" NUMBER(8,2), "QTY" NUMBER(5), "AMT" NUMBER,` + "\n",
		`  "NAME" VARCHAR2(20), "BODY" CLOB, "IMG" BLOB, "DATA" LONG RAW, "NOTES" LONG,` + "\n",
		`  "GUID" RAW(16), "HIRED" DATE` + "\n",
		"SELECT 1 FROM DUAL;\n",
		"  NUMERIC(8,2)\n",
	}
	for _, line := range lines {
		once := r.Transform(line).Line
		twice := r.Transform(once).Line
		require.Equal(t, once, twice, line)
	}
}

func TestTransformDisabledRule(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DisabledRules = []string{"dual_table", "date"}
	r := New(cfg, nil)

	res := r.Transform("SELECT SYSDATE FROM DUAL;")
	require.Equal(t, "SELECT CURRENT_TIMESTAMP FROM DUAL;", res.Line)

	res = r.Transform(`  "HIRED" DATE,`)
	require.Equal(t, `  "HIRED" DATE,`, res.Line)
	require.Equal(t, Unchanged, res.Outcome)
}
