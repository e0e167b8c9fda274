package sqlbuild

import (
	"errors"
	"reflect"
	"testing"
)

func defaultOf(v Value) *Value { return &v }

func TestCreateTable(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		cols    []ColumnSpec
		opts    *TableOptions
		wantSQL string
	}{
		{
			name:  "single integer primary key",
			table: "users",
			cols: []ColumnSpec{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "email", Type: TypeText, NotNull: true, Unique: true},
			},
			wantSQL: `CREATE TABLE "users" ("id" INTEGER PRIMARY KEY, "email" TEXT NOT NULL UNIQUE)`,
		},
		{
			name:  "autoincrement",
			table: "logs",
			cols: []ColumnSpec{
				{Name: "id", Type: TypeInteger, PrimaryKey: true, AutoIncrement: true},
				{Name: "line", Type: TypeText},
			},
			wantSQL: `CREATE TABLE "logs" ("id" INTEGER PRIMARY KEY AUTOINCREMENT, "line" TEXT)`,
		},
		{
			name:  "composite primary key emitted as trailing clause",
			table: "memberships",
			cols: []ColumnSpec{
				{Name: "user_id", Type: TypeInteger, PrimaryKey: true},
				{Name: "group_id", Type: TypeInteger, PrimaryKey: true},
				{Name: "role", Type: TypeText},
			},
			wantSQL: `CREATE TABLE "memberships" ("user_id" INTEGER, "group_id" INTEGER, "role" TEXT, PRIMARY KEY ("user_id", "group_id"))`,
		},
		{
			name:  "defaults inlined as literals",
			table: "settings",
			cols: []ColumnSpec{
				{Name: "key", Type: TypeText, PrimaryKey: true},
				{Name: "enabled", Type: TypeBoolean, Default: defaultOf(Bool(true))},
				{Name: "weight", Type: TypeReal, Default: defaultOf(Float(1.5))},
				{Name: "retries", Type: TypeInteger, Default: defaultOf(Int(3))},
				{Name: "label", Type: TypeText, Default: defaultOf(String("it's fine"))},
				{Name: "blob_val", Type: TypeBlob, Default: defaultOf(Bytes([]byte{0xAB}))},
				{Name: "note", Type: TypeText, Default: defaultOf(Null())},
			},
			wantSQL: `CREATE TABLE "settings" ("key" TEXT PRIMARY KEY, ` +
				`"enabled" BOOLEAN DEFAULT TRUE, ` +
				`"weight" REAL DEFAULT 1.5, ` +
				`"retries" INTEGER DEFAULT 3, ` +
				`"label" TEXT DEFAULT 'it''s fine', ` +
				`"blob_val" BLOB DEFAULT X'ab', ` +
				`"note" TEXT DEFAULT NULL)`,
		},
		{
			name:  "if not exists with table options",
			table: "kv",
			cols: []ColumnSpec{
				{Name: "k", Type: TypeText, PrimaryKey: true},
				{Name: "v", Type: TypeText},
			},
			opts:    &TableOptions{IfNotExists: true, WithoutRowID: true, Strict: true},
			wantSQL: `CREATE TABLE IF NOT EXISTS "kv" ("k" TEXT PRIMARY KEY, "v" TEXT) WITHOUT ROWID, STRICT`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := CreateTable(tt.table, tt.cols, tt.opts)
			if err != nil {
				t.Fatalf("CreateTable error = %v", err)
			}
			if stmt.SQL != tt.wantSQL {
				t.Errorf("SQL = %s\nwant %s", stmt.SQL, tt.wantSQL)
			}
			if stmt.Params != nil {
				t.Errorf("DDL must not carry params, got %v", stmt.Params)
			}
		})
	}
}

func TestCreateTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		table string
		cols  []ColumnSpec
		as    func(error) bool
	}{
		{
			name:  "no columns",
			table: "t",
			as:    func(err error) bool { return errors.Is(err, ErrEmptyTable) },
		},
		{
			name:  "bad table name",
			table: "t t",
			cols:  []ColumnSpec{{Name: "a", Type: TypeText}},
			as:    isInvalidIdentifier,
		},
		{
			name:  "bad column name",
			table: "t",
			cols:  []ColumnSpec{{Name: "a b", Type: TypeText}},
			as:    isInvalidIdentifier,
		},
		{
			name:  "unknown column type",
			table: "t",
			cols:  []ColumnSpec{{Name: "a", Type: "VARCHAR(20)"}},
			as: func(err error) bool {
				var e *InvalidColumnTypeError
				return errors.As(err, &e)
			},
		},
		{
			name:  "autoincrement on text column",
			table: "t",
			cols:  []ColumnSpec{{Name: "a", Type: TypeText, PrimaryKey: true, AutoIncrement: true}},
			as:    isInvalidColumnSpec,
		},
		{
			name:  "autoincrement without primary key",
			table: "t",
			cols:  []ColumnSpec{{Name: "a", Type: TypeInteger, AutoIncrement: true}},
			as:    isInvalidColumnSpec,
		},
		{
			name:  "two autoincrement columns",
			table: "t",
			cols: []ColumnSpec{
				{Name: "a", Type: TypeInteger, PrimaryKey: true, AutoIncrement: true},
				{Name: "b", Type: TypeInteger, PrimaryKey: true, AutoIncrement: true},
			},
			as: isInvalidColumnSpec,
		},
		{
			name:  "autoincrement with composite primary key",
			table: "t",
			cols: []ColumnSpec{
				{Name: "a", Type: TypeInteger, PrimaryKey: true, AutoIncrement: true},
				{Name: "b", Type: TypeInteger, PrimaryKey: true},
			},
			as: isInvalidColumnSpec,
		},
		{
			name:  "unset default value",
			table: "t",
			cols:  []ColumnSpec{{Name: "a", Type: TypeText, Default: &Value{}}},
			as:    isInvalidColumnSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := CreateTable(tt.table, tt.cols, nil)
			if err == nil {
				t.Fatalf("CreateTable succeeded, want error; SQL = %s", stmt.SQL)
			}
			if !tt.as(err) {
				t.Errorf("error = %v has the wrong type", err)
			}
		})
	}
}

func isInvalidColumnSpec(err error) bool {
	var e *InvalidColumnSpecError
	return errors.As(err, &e)
}

func TestDropTable(t *testing.T) {
	stmt, err := DropTable("users", false)
	if err != nil {
		t.Fatalf("DropTable error = %v", err)
	}
	if stmt.SQL != `DROP TABLE "users"` {
		t.Errorf("SQL = %s", stmt.SQL)
	}

	stmt, err = DropTable("users", true)
	if err != nil {
		t.Fatalf("DropTable error = %v", err)
	}
	if stmt.SQL != `DROP TABLE IF EXISTS "users"` {
		t.Errorf("SQL = %s", stmt.SQL)
	}

	if _, err := DropTable("u;", false); err == nil {
		t.Error("bad table name should fail")
	}
}

func TestListTables(t *testing.T) {
	stmt := ListTables()
	wantSQL := `SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE ? AND name NOT LIKE ? ORDER BY name`
	if stmt.SQL != wantSQL {
		t.Errorf("SQL = %s, want %s", stmt.SQL, wantSQL)
	}
	wantParams := []Value{String("table"), String("sqlite_%"), String("_cf_%")}
	if !reflect.DeepEqual(stmt.Params, wantParams) {
		t.Errorf("params = %v, want %v", stmt.Params, wantParams)
	}
}

func TestTableColumns(t *testing.T) {
	stmt, err := TableColumns("users")
	if err != nil {
		t.Fatalf("TableColumns error = %v", err)
	}
	if stmt.SQL != `PRAGMA table_info("users")` {
		t.Errorf("SQL = %s", stmt.SQL)
	}
	if stmt.Params != nil {
		t.Errorf("PRAGMA must not carry params, got %v", stmt.Params)
	}

	if _, err := TableColumns("users; --"); err == nil {
		t.Error("bad table name should fail")
	}
}
