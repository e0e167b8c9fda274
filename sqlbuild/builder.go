package sqlbuild

// QueryBuilder assembles a Query descriptor through a fluent API.
// Not thread-safe - build each statement on its own builder.
//
// Example:
//
//	stmt, err := sqlbuild.NewQuery("orders").
//	    Columns("customer_id").
//	    Aggregate(sqlbuild.AggSum, "amount", "total").
//	    Where(sqlbuild.Ge("created_at", sqlbuild.String("2024-01-01"))).
//	    GroupBy("customer_id").
//	    OrderBy("total", sqlbuild.Desc).
//	    Limit(10).
//	    Build()
type QueryBuilder struct {
	q Query
}

// NewQuery starts a query builder for the given table.
func NewQuery(table string) *QueryBuilder {
	return &QueryBuilder{q: Query{Table: table}}
}

// Columns adds projection columns.
func (b *QueryBuilder) Columns(cols ...string) *QueryBuilder {
	b.q.Columns = append(b.q.Columns, cols...)
	return b
}

// Aggregate adds an aggregate projection. Pass alias "" to omit AS.
func (b *QueryBuilder) Aggregate(fn AggregateFunc, column, alias string) *QueryBuilder {
	b.q.Aggregates = append(b.q.Aggregates, Aggregate{Func: fn, Column: column, Alias: alias})
	return b
}

// Where appends filter conditions.
func (b *QueryBuilder) Where(conds ...Condition) *QueryBuilder {
	b.q.Where = append(b.q.Where, conds...)
	return b
}

// Logic sets the AND/OR token joining Where and Having conditions.
func (b *QueryBuilder) Logic(logic Logic) *QueryBuilder {
	b.q.Logic = logic
	return b
}

// Join appends a join clause. The ON expression is caller-trusted; see
// the Join type.
func (b *QueryBuilder) Join(jt JoinType, table, on string) *QueryBuilder {
	b.q.Joins = append(b.q.Joins, Join{Type: jt, Table: table, On: on})
	return b
}

// GroupBy appends grouping columns.
func (b *QueryBuilder) GroupBy(cols ...string) *QueryBuilder {
	b.q.GroupBy = append(b.q.GroupBy, cols...)
	return b
}

// Having appends post-aggregation conditions.
func (b *QueryBuilder) Having(conds ...Condition) *QueryBuilder {
	b.q.Having = append(b.q.Having, conds...)
	return b
}

// OrderBy appends a sort term.
func (b *QueryBuilder) OrderBy(field string, dir Direction) *QueryBuilder {
	b.q.OrderBy = append(b.q.OrderBy, Order{Field: field, Direction: dir})
	return b
}

// Limit caps the row count.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.q.Limit = n
	return b
}

// Offset skips rows. Emitted only together with a limit.
func (b *QueryBuilder) Offset(n int) *QueryBuilder {
	b.q.Offset = n
	return b
}

// Descriptor returns the accumulated Query without building it.
func (b *QueryBuilder) Descriptor() Query {
	return b.q
}

// Build compiles the accumulated descriptor via BuildQuery.
func (b *QueryBuilder) Build() (Statement, error) {
	return BuildQuery(b.q)
}
