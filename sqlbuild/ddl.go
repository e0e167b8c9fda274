package sqlbuild

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// ColumnType is a column's declared SQLite type, from the fixed set the
// DDL builder accepts. BOOLEAN, DATETIME, and JSON are declared type
// names with INTEGER/TEXT affinity under SQLite's rules; D1 accepts them
// in non-STRICT tables.
type ColumnType string

const (
	TypeText     ColumnType = "TEXT"
	TypeInteger  ColumnType = "INTEGER"
	TypeReal     ColumnType = "REAL"
	TypeBlob     ColumnType = "BLOB"
	TypeBoolean  ColumnType = "BOOLEAN"
	TypeDatetime ColumnType = "DATETIME"
	TypeJSON     ColumnType = "JSON"
)

// ColumnSpec describes one column of a CREATE TABLE statement.
//
// At most one column may set AutoIncrement, and that column must be an
// INTEGER primary key. Default, when non-nil, is inlined as a literal:
// SQLite does not allow bound parameters in DDL, so string defaults are
// single-quote escaped and blobs rendered as hex literals.
type ColumnSpec struct {
	Name          string
	Type          ColumnType
	PrimaryKey    bool
	NotNull       bool
	Unique        bool
	AutoIncrement bool
	Default       *Value
}

// TableOptions adjusts CREATE TABLE output.
type TableOptions struct {
	IfNotExists  bool
	WithoutRowID bool
	Strict       bool
}

// CreateTable builds a CREATE TABLE statement. When more than one column
// is marked as primary key, a single trailing composite PRIMARY KEY
// clause is emitted instead of inline per-column markers.
func CreateTable(table string, cols []ColumnSpec, opts *TableOptions) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(cols) == 0 {
		return Statement{}, ErrEmptyTable
	}
	if opts == nil {
		opts = &TableOptions{}
	}

	var pkCols []string
	autoIncrements := 0
	for _, col := range cols {
		if col.PrimaryKey {
			pkCols = append(pkCols, col.Name)
		}
		if col.AutoIncrement {
			autoIncrements++
			if !col.PrimaryKey || col.Type != TypeInteger {
				return Statement{}, &InvalidColumnSpecError{Column: col.Name, Reason: "AUTOINCREMENT requires an INTEGER primary key"}
			}
		}
	}
	if autoIncrements > 1 {
		return Statement{}, &InvalidColumnSpecError{Column: table, Reason: "at most one AUTOINCREMENT column is allowed"}
	}
	compositePK := len(pkCols) > 1
	if compositePK && autoIncrements > 0 {
		return Statement{}, &InvalidColumnSpecError{Column: table, Reason: "AUTOINCREMENT is incompatible with a composite primary key"}
	}

	defs := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		def, err := buildColumnDef(col, compositePK)
		if err != nil {
			return Statement{}, err
		}
		defs = append(defs, def)
	}
	if compositePK {
		quoted := make([]string, len(pkCols))
		for i, name := range pkCols {
			quoted[i] = quoteIdent(name)
		}
		defs = append(defs, "PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if opts.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(quoteIdent(table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(defs, ", "))
	sb.WriteString(")")

	var tableOpts []string
	if opts.WithoutRowID {
		tableOpts = append(tableOpts, "WITHOUT ROWID")
	}
	if opts.Strict {
		tableOpts = append(tableOpts, "STRICT")
	}
	if len(tableOpts) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(tableOpts, ", "))
	}

	return Statement{SQL: sb.String()}, nil
}

func buildColumnDef(col ColumnSpec, compositePK bool) (string, error) {
	if err := ValidIdentifier(col.Name); err != nil {
		return "", err
	}
	switch col.Type {
	case TypeText, TypeInteger, TypeReal, TypeBlob, TypeBoolean, TypeDatetime, TypeJSON:
	default:
		return "", &InvalidColumnTypeError{Type: string(col.Type)}
	}

	var sb strings.Builder
	sb.WriteString(quoteIdent(col.Name))
	sb.WriteString(" ")
	sb.WriteString(string(col.Type))

	if col.PrimaryKey && !compositePK {
		sb.WriteString(" PRIMARY KEY")
		if col.AutoIncrement {
			sb.WriteString(" AUTOINCREMENT")
		}
	}
	if col.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if col.Unique {
		sb.WriteString(" UNIQUE")
	}
	if col.Default != nil {
		lit, err := defaultLiteral(*col.Default)
		if err != nil {
			return "", &InvalidColumnSpecError{Column: col.Name, Reason: err.Error()}
		}
		sb.WriteString(" DEFAULT ")
		sb.WriteString(lit)
	}
	return sb.String(), nil
}

// defaultLiteral renders a DEFAULT value as an inline literal. Strings
// are escaped by doubling embedded single quotes; everything else has no
// escaping surface.
func defaultLiteral(v Value) (string, error) {
	switch v.Kind() {
	case KindNull:
		return "NULL", nil
	case KindBool:
		if v.b {
			return "TRUE", nil
		}
		return "FALSE", nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64), nil
	case KindString:
		return "'" + strings.ReplaceAll(v.s, "'", "''") + "'", nil
	case KindBytes:
		return "X'" + hex.EncodeToString(v.raw) + "'", nil
	default:
		return "", &UnsupportedTypeError{GoType: "invalid sqlbuild.Value"}
	}
}

// DropTable builds a DROP TABLE statement.
func DropTable(table string, ifExists bool) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	if ifExists {
		return Statement{SQL: "DROP TABLE IF EXISTS " + quoteIdent(table)}, nil
	}
	return Statement{SQL: "DROP TABLE " + quoteIdent(table)}, nil
}

// ListTables builds the statement that lists user tables, excluding
// SQLite internals and D1's bookkeeping tables.
func ListTables() Statement {
	return Statement{
		SQL:    `SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE ? AND name NOT LIKE ? ORDER BY name`,
		Params: []Value{String("table"), String("sqlite_%"), String("_cf_%")},
	}
}

// TableColumns builds the PRAGMA statement describing a table's columns.
// PRAGMA arguments cannot be bound, so the table name is validated and
// then inlined as a quoted identifier.
func TableColumns(table string) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	return Statement{SQL: "PRAGMA table_info(" + quoteIdent(table) + ")"}, nil
}
