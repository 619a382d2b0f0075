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

// ColumnType is the type of a column in a schema.
type ColumnType uint8

const (
	// Categorical columns hold string codes.
	Categorical ColumnType = iota
	// Numeric columns hold float32 values.
	Numeric
)

// Column describes one typed column and the index of its source field in the
// delimited file.
type Column struct {
	Name   string
	Type   ColumnType
	Source int
}

// Schema is an ordered list of columns. The order of source indices is part
// of the on-disk contract of the loader.
type Schema []Column

// Width returns the number of fields a source row must have.
func (s Schema) Width() int {
	width := 0
	for _, column := range s {
		if column.Source+1 > width {
			width = column.Source + 1
		}
	}
	return width
}

// Lookup returns the column with the given name.
func (s Schema) Lookup(name string) (Column, bool) {
	for _, column := range s {
		if column.Name == name {
			return column, true
		}
	}
	return Column{}, false
}
