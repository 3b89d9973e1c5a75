package query

import (
	"fmt"
	"reflect"
	"strings"
)

type condition struct {
	clause string
	arg    any
	suffix string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SortField is a single ORDER BY entry keyed by view field name.
type SortField struct {
	Field      string
	Descending bool
}

// Builder accumulates WHERE conditions and renders numbered-parameter SQL.
type Builder struct {
	projection *ProjectionMap
	conditions []condition
	sort       []SortField
}

// NewBuilder creates a Builder for the projection ordered by sort.
func NewBuilder(projection *ProjectionMap, sort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		sort:       sort,
	}
}

// WhereEquals adds "column = $n". Nil values, including typed nil pointers, are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: b.projection.Column(field) + " = ",
		arg:    value,
	})
	return b
}

// WhereContains adds a case-insensitive substring match on column. LIKE
// wildcards in value match literally. Nil or empty values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: b.projection.Column(field) + " ILIKE ",
		arg:    "%" + likeEscaper.Replace(*value) + "%",
		suffix: ` ESCAPE '\'`,
	})
	return b
}

// Build renders the SELECT with all conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.orderBy(),
	), args
}

// BuildSingle renders a SELECT for the row whose idField equals id.
// Accumulated conditions and ordering are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(idField),
	), []any{id}
}

func (b *Builder) where() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, len(b.conditions))
	args := make([]any, len(b.conditions))
	for i, c := range b.conditions {
		clauses[i] = fmt.Sprintf("%s$%d%s", c.clause, i+1, c.suffix)
		args[i] = c.arg
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) orderBy() string {
	if len(b.sort) == 0 {
		return ""
	}

	parts := make([]string, len(b.sort))
	for i, f := range b.sort {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
