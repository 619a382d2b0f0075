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
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/log"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

var (
	// ErrSourceNotFound is returned when a dataset path does not resolve to a
	// readable file.
	ErrSourceNotFound = errors.New("source not found")
	// ErrSchemaMismatch is returned when a row's column count or field type
	// does not match the schema.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

func parseFloat[T constraints.Float](s string) (T, error) {
	v, err := strconv.ParseFloat(s, 32)
	return T(v), err
}

// LoadCSV reads delimited text into a typed table. The schema maps each
// column name to a source field index. Semantic ranges are not validated
// here, that is left to downstream stages.
func LoadCSV(path string, schema Schema, hasHeader bool, comma rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(ErrSourceNotFound, "%s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	table := NewTable(schema)
	width := schema.Width()
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		line++
		if hasHeader && line == 1 {
			continue
		}
		if len(record) != width {
			return nil, errors.Annotatef(ErrSchemaMismatch,
				"%s:%d: expected %d fields, got %d", path, line, width, len(record))
		}
		values := make([]interface{}, len(schema))
		for i, column := range schema {
			field := record[column.Source]
			switch column.Type {
			case Categorical:
				values[i] = field
			case Numeric:
				v, err := parseFloat[float32](field)
				if err != nil {
					return nil, errors.Annotatef(ErrSchemaMismatch,
						"%s:%d: column %s: %q is not a number", path, line, column.Name, field)
				}
				values[i] = v
			}
		}
		if err = table.AppendRow(values...); err != nil {
			return nil, errors.Trace(err)
		}
	}
	log.Logger().Info("load dataset",
		zap.String("path", path),
		zap.Int("n_rows", table.Count()),
		zap.Int("n_columns", len(schema)))
	return table, nil
}
