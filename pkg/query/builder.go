package query

import (
	"fmt"
	"strings"
)

const placeholder = "$?"

type condition struct {
	clause string
	args   []any
}

// Builder composes WHERE, ORDER BY, and paging clauses. Placeholders are
// numbered when the statement is built so conditions can be added in any order.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort SortField
}

// NewBuilder creates a Builder ordering by defaultSort when no sort is set.
func NewBuilder(projection *ProjectionMap, defaultSort SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// BuildCount returns a COUNT(*) query over the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where), args
}

// BuildSelect returns an unpaged SELECT with ordering.
func (b *Builder) BuildSelect() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.Table(), where, b.buildOrderBy(),
	), args
}

// BuildPage returns a SELECT limited to one page. page is 1-indexed.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	sql, args := b.BuildSelect()
	offset := (page - 1) * pageSize
	n := len(args)
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	return sql, append(args, pageSize, offset)
}

// BuildSingle returns a SELECT for the row whose idField equals id,
// combined with any current conditions.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	b.WhereEquals(idField, id)
	where, args := b.buildWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s",
		b.projection.Columns(), b.projection.Table(), where,
	), args
}

// OrderBy replaces the sort. Unknown fields are dropped so user input never
// reaches the SQL text.
func (b *Builder) OrderBy(fields ...SortField) *Builder {
	b.sort = b.sort[:0]
	for _, f := range fields {
		if b.projection.Has(f.Field) {
			b.sort = append(b.sort, f)
		}
	}
	return b
}

// WhereEquals adds field = value. Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value == nil {
		return b
	}
	return b.add(b.projection.Column(field)+" = "+placeholder, value)
}

// WhereContains adds a case-insensitive ILIKE match. Nil or empty values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.add(b.projection.Column(field)+" ILIKE "+placeholder, "%"+*value+"%")
}

// WhereIn adds field IN (...). Empty slices are ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	marks := make([]string, len(values))
	for i := range values {
		marks[i] = placeholder
	}
	return b.add(b.projection.Column(field)+" IN ("+strings.Join(marks, ", ")+")", values...)
}

// WhereNot adds field <> value. Nil values are ignored.
func (b *Builder) WhereNot(field string, value any) *Builder {
	if value == nil {
		return b
	}
	return b.add(b.projection.Column(field)+" <> "+placeholder, value)
}

// WhereAtLeast adds field >= value. Nil values are ignored.
func (b *Builder) WhereAtLeast(field string, value any) *Builder {
	if value == nil {
		return b
	}
	return b.add(b.projection.Column(field)+" >= "+placeholder, value)
}

// WhereOwnedOrPublic restricts rows to those owned by owner or whose public
// flag is set: (owner = $n OR NOT private).
func (b *Builder) WhereOwnedOrPublic(ownerField, privateField string, owner any) *Builder {
	clause := fmt.Sprintf("(%s = %s OR %s = false)",
		b.projection.Column(ownerField), placeholder, b.projection.Column(privateField))
	return b.add(clause, owner)
}

func (b *Builder) add(clause string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

func (b *Builder) buildOrderBy() string {
	sort := b.sort
	if len(sort) == 0 {
		sort = []SortField{b.defaultSort}
	}

	terms := make([]string, len(sort))
	for i, f := range sort {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		terms[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			args = append(args, arg)
			clause = strings.Replace(clause, placeholder, fmt.Sprintf("$%d", len(args)), 1)
		}
		clauses = append(clauses, clause)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
