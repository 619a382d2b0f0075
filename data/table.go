// Copyright 2025 taxifare Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"github.com/juju/errors"
)

// Table is a column-oriented collection of typed rows. Columns are stored by
// name, rows are positionally aligned across columns. Tables are read-only
// once loaded: every transformation produces a new table.
type Table struct {
	schema Schema
	strs   map[string][]string
	nums   map[string][]float32
	count  int
}

// NewTable creates an empty table with the given schema.
func NewTable(schema Schema) *Table {
	t := &Table{
		schema: schema,
		strs:   make(map[string][]string),
		nums:   make(map[string][]float32),
	}
	for _, column := range schema {
		switch column.Type {
		case Categorical:
			t.strs[column.Name] = nil
		case Numeric:
			t.nums[column.Name] = nil
		}
	}
	return t
}

// Schema returns the schema of the table.
func (t *Table) Schema() Schema {
	return t.schema
}

// Count returns the number of rows.
func (t *Table) Count() int {
	return t.count
}

// Strings returns a categorical column by name, or nil if absent.
func (t *Table) Strings(name string) []string {
	return t.strs[name]
}

// Floats returns a numeric column by name, or nil if absent.
func (t *Table) Floats(name string) []float32 {
	return t.nums[name]
}

// AppendRow appends one typed row. Values are given in schema order: string
// for categorical columns, float32 (or float64, int) for numeric columns.
func (t *Table) AppendRow(values ...interface{}) error {
	if len(values) != len(t.schema) {
		return errors.Annotatef(ErrSchemaMismatch, "expected %d values, got %d", len(t.schema), len(values))
	}
	for i, column := range t.schema {
		switch column.Type {
		case Categorical:
			s, ok := values[i].(string)
			if !ok {
				return errors.Annotatef(ErrSchemaMismatch, "column %s expects a string", column.Name)
			}
			t.strs[column.Name] = append(t.strs[column.Name], s)
		case Numeric:
			var v float32
			switch value := values[i].(type) {
			case float32:
				v = value
			case float64:
				v = float32(value)
			case int:
				v = float32(value)
			default:
				return errors.Annotatef(ErrSchemaMismatch, "column %s expects a number", column.Name)
			}
			t.nums[column.Name] = append(t.nums[column.Name], v)
		}
	}
	t.count++
	return nil
}

// Filter returns a new table containing only rows whose value on the named
// numeric column satisfies lower <= value <= upper. Row order is preserved
// and the receiver is left untouched. An empty result is valid.
func (t *Table) Filter(name string, lower, upper float32) (*Table, error) {
	values, exist := t.nums[name]
	if !exist {
		return nil, errors.Errorf("no numeric column %q in table", name)
	}
	filtered := NewTable(t.schema)
	for i, v := range values {
		if lower <= v && v <= upper {
			for _, column := range t.schema {
				switch column.Type {
				case Categorical:
					filtered.strs[column.Name] = append(filtered.strs[column.Name], t.strs[column.Name][i])
				case Numeric:
					filtered.nums[column.Name] = append(filtered.nums[column.Name], t.nums[column.Name][i])
				}
			}
			filtered.count++
		}
	}
	return filtered, nil
}
