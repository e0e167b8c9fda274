package d1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/jezweb/go-d1/sqlbuild"
)

// capturedRequest records one statement the test server received.
type capturedRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// rowServer answers every request with the given rows and records the
// statements it received.
func rowServer(t *testing.T, rows string) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req capturedRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		captured = append(captured, req)
		fmt.Fprintf(w, `{
			"result": [{"results": %s, "success": true,
				"meta": {"rows_read": 2, "changes": 1, "last_row_id": 10}}],
			"success": true, "errors": [], "messages": []
		}`, rows)
	})
	return client, &captured
}

func TestInsertRow(t *testing.T) {
	client, captured := rowServer(t, "[]")

	meta, err := client.InsertRow(context.Background(), "users", []sqlbuild.ColumnValue{
		sqlbuild.Set("name", sqlbuild.String("Ada")),
		sqlbuild.Set("age", sqlbuild.Int(36)),
	})
	if err != nil {
		t.Fatalf("InsertRow error = %v", err)
	}
	if meta.Changes != 1 || meta.LastRowID != 10 {
		t.Errorf("meta = %+v", meta)
	}

	got := (*captured)[0]
	if got.SQL != `INSERT INTO "users" ("name", "age") VALUES (?, ?)` {
		t.Errorf("SQL = %s", got.SQL)
	}
	if len(got.Params) != 2 || got.Params[0] != "Ada" || got.Params[1] != float64(36) {
		t.Errorf("params = %v", got.Params)
	}
}

func TestInsertRowBuilderErrorSkipsNetwork(t *testing.T) {
	client, captured := rowServer(t, "[]")

	_, err := client.InsertRow(context.Background(), "users; --", nil)
	var identErr *sqlbuild.InvalidIdentifierError
	if !errors.As(err, &identErr) {
		t.Fatalf("error = %v, want InvalidIdentifierError", err)
	}
	if len(*captured) != 0 {
		t.Error("a builder error must not reach the network")
	}
}

func TestInsertRows(t *testing.T) {
	client, captured := rowServer(t, "[]")

	_, err := client.InsertRows(context.Background(), "events",
		[]string{"kind"},
		[][]sqlbuild.Value{{sqlbuild.String("click")}, {sqlbuild.String("view")}},
	)
	if err != nil {
		t.Fatalf("InsertRows error = %v", err)
	}
	if got := (*captured)[0].SQL; got != `INSERT INTO "events" ("kind") VALUES (?), (?)` {
		t.Errorf("SQL = %s", got)
	}
}

func TestSelectRowsPagination(t *testing.T) {
	client, captured := rowServer(t, `[{"id": 1}, {"id": 2}]`)

	page, err := client.SelectRows(context.Background(), "users", &SelectRowsOptions{Limit: 2})
	if err != nil {
		t.Fatalf("SelectRows error = %v", err)
	}
	if len(page.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(page.Rows))
	}
	if page.NextCursor == "" {
		t.Fatal("a full page must carry a next cursor")
	}

	cur, err := decodePageCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("cursor does not decode: %v", err)
	}
	if cur.Table != "users" || cur.Offset != 2 || cur.Limit != 2 {
		t.Errorf("cursor = %+v", cur)
	}

	// Resume: the cursor's limit and offset drive the next page.
	if _, err := client.SelectRows(context.Background(), "users", &SelectRowsOptions{Cursor: page.NextCursor}); err != nil {
		t.Fatalf("SelectRows with cursor error = %v", err)
	}
	got := (*captured)[1]
	if got.SQL != `SELECT * FROM "users" LIMIT ? OFFSET ?` {
		t.Errorf("SQL = %s", got.SQL)
	}
	if len(got.Params) != 2 || got.Params[0] != float64(2) || got.Params[1] != float64(2) {
		t.Errorf("params = %v", got.Params)
	}
}

func TestSelectRowsPartialPageEndsPagination(t *testing.T) {
	client, _ := rowServer(t, `[{"id": 1}]`)

	page, err := client.SelectRows(context.Background(), "users", &SelectRowsOptions{Limit: 5})
	if err != nil {
		t.Fatalf("SelectRows error = %v", err)
	}
	if page.NextCursor != "" {
		t.Errorf("partial page must not carry a cursor, got %q", page.NextCursor)
	}
}

func TestSelectRowsCursorTableMismatch(t *testing.T) {
	client, captured := rowServer(t, "[]")

	token, err := encodePageCursor(pageCursor{Table: "orders", Offset: 0, Limit: 5})
	if err != nil {
		t.Fatalf("encodePageCursor error = %v", err)
	}
	_, err = client.SelectRows(context.Background(), "users", &SelectRowsOptions{Cursor: token})
	if !errors.Is(err, ErrInvalidCursor) {
		t.Errorf("error = %v, want ErrInvalidCursor", err)
	}
	if len(*captured) != 0 {
		t.Error("a cursor mismatch must not reach the network")
	}
}

func TestFindWrapsContainsInWildcards(t *testing.T) {
	client, captured := rowServer(t, `[{"id": 1}]`)

	_, err := client.Find(context.Background(), "users", &FindOptions{
		Contains: map[string]string{"name": "smith"},
		OrderBy:  "name",
		Desc:     true,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("Find error = %v", err)
	}

	got := (*captured)[0]
	wantSQL := `SELECT * FROM "users" WHERE "name" LIKE ? ORDER BY "name" DESC LIMIT ?`
	if got.SQL != wantSQL {
		t.Errorf("SQL = %s\nwant %s", got.SQL, wantSQL)
	}
	if len(got.Params) != 2 || got.Params[0] != "%smith%" {
		t.Errorf("params = %v, want the term wrapped in wildcards", got.Params)
	}
}

func TestFindDeterministic(t *testing.T) {
	client, captured := rowServer(t, "[]")

	opts := &FindOptions{
		Contains: map[string]string{
			"name":  "smith",
			"email": "example",
			"city":  "berlin",
		},
	}

	// Contains is a map; the generated SQL must not depend on its
	// iteration order. Columns come out sorted.
	wantSQL := `SELECT * FROM "users" WHERE "city" LIKE ? AND "email" LIKE ? AND "name" LIKE ?`
	for i := 0; i < 30; i++ {
		if _, err := client.Find(context.Background(), "users", opts); err != nil {
			t.Fatalf("Find error = %v", err)
		}
		got := (*captured)[i]
		if got.SQL != wantSQL {
			t.Fatalf("call %d: SQL = %s\nwant %s", i, got.SQL, wantSQL)
		}
		if len(got.Params) != 3 || got.Params[0] != "%berlin%" || got.Params[1] != "%example%" || got.Params[2] != "%smith%" {
			t.Fatalf("call %d: params = %v", i, got.Params)
		}
	}
}

func TestFindEquals(t *testing.T) {
	client, captured := rowServer(t, "[]")

	_, err := client.Find(context.Background(), "users", &FindOptions{
		Equals: []sqlbuild.ColumnValue{sqlbuild.Set("status", sqlbuild.String("active"))},
	})
	if err != nil {
		t.Fatalf("Find error = %v", err)
	}
	got := (*captured)[0]
	if got.SQL != `SELECT * FROM "users" WHERE "status" = ?` {
		t.Errorf("SQL = %s", got.SQL)
	}
	if len(got.Params) != 1 || got.Params[0] != "active" {
		t.Errorf("params = %v", got.Params)
	}
}

func TestUpdateRows(t *testing.T) {
	client, captured := rowServer(t, "[]")

	_, err := client.UpdateRows(context.Background(), "users",
		[]sqlbuild.ColumnValue{sqlbuild.Set("active", sqlbuild.Bool(false))},
		[]sqlbuild.Condition{sqlbuild.Eq("id", sqlbuild.Int(9))},
		sqlbuild.LogicAnd,
	)
	if err != nil {
		t.Fatalf("UpdateRows error = %v", err)
	}
	if got := (*captured)[0].SQL; got != `UPDATE "users" SET "active" = ? WHERE "id" = ?` {
		t.Errorf("SQL = %s", got)
	}
}

func TestDeleteRows(t *testing.T) {
	client, captured := rowServer(t, "[]")

	_, err := client.DeleteRows(context.Background(), "sessions",
		[]sqlbuild.Condition{sqlbuild.Lt("expires_at", sqlbuild.Int(100))},
		"", 50,
	)
	if err != nil {
		t.Fatalf("DeleteRows error = %v", err)
	}
	if got := (*captured)[0].SQL; got != `DELETE FROM "sessions" WHERE "expires_at" < ? LIMIT ?` {
		t.Errorf("SQL = %s", got)
	}
}

func TestListTables(t *testing.T) {
	client, captured := rowServer(t, `[{"name": "orders"}, {"name": "users"}]`)

	names, err := client.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables error = %v", err)
	}
	if len(names) != 2 || names[0] != "orders" || names[1] != "users" {
		t.Errorf("names = %v", names)
	}
	if got := (*captured)[0].SQL; got != `SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE ? AND name NOT LIKE ? ORDER BY name` {
		t.Errorf("SQL = %s", got)
	}
}

func TestTableColumns(t *testing.T) {
	client, captured := rowServer(t, `[
		{"cid": 0, "name": "id", "type": "INTEGER", "notnull": 0, "dflt_value": null, "pk": 1},
		{"cid": 1, "name": "email", "type": "TEXT", "notnull": 1, "dflt_value": null, "pk": 0}
	]`)

	cols, err := client.TableColumns(context.Background(), "users")
	if err != nil {
		t.Fatalf("TableColumns error = %v", err)
	}
	if got := (*captured)[0].SQL; got != `PRAGMA table_info("users")` {
		t.Errorf("SQL = %s", got)
	}
	if len(cols) != 2 {
		t.Fatalf("got %d columns, want 2", len(cols))
	}
	if cols[0].Name != "id" || cols[0].PrimaryKey != 1 || cols[0].NotNull {
		t.Errorf("cols[0] = %+v", cols[0])
	}
	if cols[1].Name != "email" || !cols[1].NotNull {
		t.Errorf("cols[1] = %+v", cols[1])
	}
}

func TestCreateAndDropTable(t *testing.T) {
	client, captured := rowServer(t, "[]")
	ctx := context.Background()

	_, err := client.CreateTable(ctx, "kv", []sqlbuild.ColumnSpec{
		{Name: "k", Type: sqlbuild.TypeText, PrimaryKey: true},
		{Name: "v", Type: sqlbuild.TypeText},
	}, &sqlbuild.TableOptions{IfNotExists: true})
	if err != nil {
		t.Fatalf("CreateTable error = %v", err)
	}
	if _, err := client.DropTable(ctx, "kv", true); err != nil {
		t.Fatalf("DropTable error = %v", err)
	}

	if got := (*captured)[0].SQL; got != `CREATE TABLE IF NOT EXISTS "kv" ("k" TEXT PRIMARY KEY, "v" TEXT)` {
		t.Errorf("create SQL = %s", got)
	}
	if got := (*captured)[1].SQL; got != `DROP TABLE IF EXISTS "kv"` {
		t.Errorf("drop SQL = %s", got)
	}
}
