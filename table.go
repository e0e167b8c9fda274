package d1

import (
	"context"
	"fmt"
	"sort"

	"github.com/jezweb/go-d1/sqlbuild"
)

// Table-level operations: each builds a statement with sqlbuild and
// executes it through the client. Builder failures surface before any
// network I/O.

// InsertRow inserts a single row. The slice order of row fixes the
// column and parameter order.
func (c *Client) InsertRow(ctx context.Context, table string, row []sqlbuild.ColumnValue) (*QueryMeta, error) {
	stmt, err := sqlbuild.Insert(table, row)
	if err != nil {
		return nil, err
	}
	return c.Exec(ctx, stmt)
}

// InsertRows inserts multiple rows in one statement.
func (c *Client) InsertRows(ctx context.Context, table string, columns []string, rows [][]sqlbuild.Value) (*QueryMeta, error) {
	stmt, err := sqlbuild.InsertMany(table, columns, rows)
	if err != nil {
		return nil, err
	}
	return c.Exec(ctx, stmt)
}

// SelectRowsOptions narrows a SelectRows call. All fields are optional.
type SelectRowsOptions struct {
	// Columns to project. Empty means "*".
	Columns []string

	// Where conditions joined by Logic (AND when empty).
	Where []sqlbuild.Condition
	Logic sqlbuild.Logic

	// OrderBy terms, applied in order.
	OrderBy []sqlbuild.Order

	// Limit and Offset page the result. Both are bound parameters.
	Limit  int
	Offset int

	// Cursor resumes a previous page. When set it overrides Limit and
	// Offset; pass Page.NextCursor from the prior call.
	Cursor string
}

// Page is one page of rows plus the token for the next one. NextCursor
// is empty on the last page.
type Page struct {
	Rows       []Row
	NextCursor string
	Meta       QueryMeta
}

// SelectRows fetches rows with optional filtering, ordering, and opaque
// cursor pagination. Cursors are only issued when a positive Limit (or a
// cursor) is supplied and the page came back full.
func (c *Client) SelectRows(ctx context.Context, table string, opts *SelectRowsOptions) (*Page, error) {
	if opts == nil {
		opts = &SelectRowsOptions{}
	}

	limit, offset := opts.Limit, opts.Offset
	if opts.Cursor != "" {
		cur, err := decodePageCursor(opts.Cursor)
		if err != nil {
			return nil, err
		}
		if cur.Table != table {
			return nil, fmt.Errorf("%w: cursor was issued for table %q", ErrInvalidCursor, cur.Table)
		}
		limit, offset = cur.Limit, cur.Offset
	}

	stmt, err := sqlbuild.BuildQuery(sqlbuild.Query{
		Table:   table,
		Columns: opts.Columns,
		Where:   opts.Where,
		Logic:   opts.Logic,
		OrderBy: opts.OrderBy,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	results, err := c.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}

	page := &Page{}
	if len(results) > 0 {
		page.Rows = results[0].Rows
		page.Meta = results[0].Meta
	}

	if limit > 0 && len(page.Rows) == limit {
		next, err := encodePageCursor(pageCursor{Table: table, Offset: offset + limit, Limit: limit})
		if err != nil {
			return nil, err
		}
		page.NextCursor = next
	}
	return page, nil
}

// FindOptions describes a convenience lookup: exact matches plus
// substring matches, ANDed together.
type FindOptions struct {
	// Equals are exact-match filters.
	Equals []sqlbuild.ColumnValue

	// Contains are substring filters. Each becomes a LIKE with the
	// search term wrapped in % wildcards; this wrapping happens only
	// here, never in the raw builders. Filters are applied in sorted
	// column order so the same options always build the same SQL.
	Contains map[string]string

	// OrderBy names a single sort column; Desc flips the direction.
	OrderBy string
	Desc    bool

	Limit int
}

// Find fetches rows matching simple equality and substring filters. For
// anything richer use SelectRows or BuildQuery.
func (c *Client) Find(ctx context.Context, table string, opts *FindOptions) ([]Row, error) {
	if opts == nil {
		opts = &FindOptions{}
	}

	var conds []sqlbuild.Condition
	for _, eq := range opts.Equals {
		conds = append(conds, sqlbuild.Eq(eq.Column, eq.Value))
	}
	containsCols := make([]string, 0, len(opts.Contains))
	for col := range opts.Contains {
		containsCols = append(containsCols, col)
	}
	sort.Strings(containsCols)
	for _, col := range containsCols {
		conds = append(conds, sqlbuild.Like(col, sqlbuild.String("%"+opts.Contains[col]+"%")))
	}

	q := sqlbuild.Query{
		Table: table,
		Where: conds,
		Limit: opts.Limit,
	}
	if opts.OrderBy != "" {
		dir := sqlbuild.Asc
		if opts.Desc {
			dir = sqlbuild.Desc
		}
		q.OrderBy = []sqlbuild.Order{{Field: opts.OrderBy, Direction: dir}}
	}

	stmt, err := sqlbuild.BuildQuery(q)
	if err != nil {
		return nil, err
	}
	return c.QueryRows(ctx, stmt)
}

// UpdateRows updates rows matching the conditions. An empty where list
// updates every row in the table; no safety filter is injected, so guard
// that case explicitly.
func (c *Client) UpdateRows(ctx context.Context, table string, set []sqlbuild.ColumnValue, where []sqlbuild.Condition, logic sqlbuild.Logic) (*QueryMeta, error) {
	stmt, err := sqlbuild.Update(table, set, where, logic)
	if err != nil {
		return nil, err
	}
	return c.Exec(ctx, stmt)
}

// DeleteRows deletes rows matching the conditions. An empty where list
// deletes every row; limit > 0 caps the affected rows.
func (c *Client) DeleteRows(ctx context.Context, table string, where []sqlbuild.Condition, logic sqlbuild.Logic, limit int) (*QueryMeta, error) {
	stmt, err := sqlbuild.Delete(table, where, logic, limit)
	if err != nil {
		return nil, err
	}
	return c.Exec(ctx, stmt)
}

// CreateTable creates a table from column specs.
func (c *Client) CreateTable(ctx context.Context, table string, cols []sqlbuild.ColumnSpec, opts *sqlbuild.TableOptions) (*QueryMeta, error) {
	stmt, err := sqlbuild.CreateTable(table, cols, opts)
	if err != nil {
		return nil, err
	}
	return c.Exec(ctx, stmt)
}

// DropTable drops a table.
func (c *Client) DropTable(ctx context.Context, table string, ifExists bool) (*QueryMeta, error) {
	stmt, err := sqlbuild.DropTable(table, ifExists)
	if err != nil {
		return nil, err
	}
	return c.Exec(ctx, stmt)
}

// ListTables returns the user table names, excluding SQLite internals
// and D1 bookkeeping tables.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	rows, err := c.QueryRows(ctx, sqlbuild.ListTables())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// TableColumn describes one column of an existing table, as reported by
// PRAGMA table_info. PrimaryKey is the column's 1-based position in the
// primary key, or 0 when it is not part of it.
type TableColumn struct {
	CID        int    `d1:"cid"`
	Name       string `d1:"name"`
	Type       string `d1:"type"`
	NotNull    bool   `d1:"notnull"`
	Default    any    `d1:"dflt_value"`
	PrimaryKey int    `d1:"pk"`
}

// TableColumns describes the columns of an existing table.
func (c *Client) TableColumns(ctx context.Context, table string) ([]TableColumn, error) {
	stmt, err := sqlbuild.TableColumns(table)
	if err != nil {
		return nil, err
	}
	rows, err := c.QueryRows(ctx, stmt)
	if err != nil {
		return nil, err
	}
	var cols []TableColumn
	if err := DecodeRows(rows, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}
