// Package query builds parameterized PostgreSQL SELECT statements from a projection map.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to alias-qualified columns of a single table.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	columns    map[string]string
	columnList []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps a database column to a view field name. Columns are selected
// in the order they are projected.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[field] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// From returns the FROM target: schema.table alias.
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the qualified column for a field, or the input when unmapped.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the projected columns as a select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}
