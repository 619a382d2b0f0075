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

package pipeline

import (
	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/data"
)

// frame is the working column space of a pipeline: the source table's columns
// plus every column produced by a stage. Categorical columns are string
// slices, all other columns are row-aligned float32 vectors. Raw numeric
// columns enter as vectors of width one.
type frame struct {
	n    int
	strs map[string][]string
	vecs map[string][][]float32
}

func newFrame(t *data.Table) *frame {
	f := &frame{
		n:    t.Count(),
		strs: make(map[string][]string),
		vecs: make(map[string][][]float32),
	}
	for _, column := range t.Schema() {
		switch column.Type {
		case data.Categorical:
			f.strs[column.Name] = t.Strings(column.Name)
		case data.Numeric:
			values := t.Floats(column.Name)
			vectors := make([][]float32, len(values))
			for i, v := range values {
				vectors[i] = []float32{v}
			}
			f.vecs[column.Name] = vectors
		}
	}
	return f
}

func (f *frame) has(name string) bool {
	_, s := f.strs[name]
	_, v := f.vecs[name]
	return s || v
}

// Transformed is the result of applying a fitted pipeline to a table.
type Transformed struct {
	f *frame
}

// Count returns the number of rows.
func (t *Transformed) Count() int {
	return t.f.n
}

// Vectors returns a vector column by name.
func (t *Transformed) Vectors(name string) ([][]float32, error) {
	vectors, exist := t.f.vecs[name]
	if !exist {
		return nil, errors.Annotatef(ErrUnknownInputColumn, "%s", name)
	}
	return vectors, nil
}

// Scalars returns a vector column of width one as a flat slice.
func (t *Transformed) Scalars(name string) ([]float32, error) {
	vectors, err := t.Vectors(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	values := make([]float32, len(vectors))
	for i, vector := range vectors {
		if len(vector) != 1 {
			return nil, errors.Errorf("column %q has width %d, expected 1", name, len(vector))
		}
		values[i] = vector[0]
	}
	return values, nil
}
