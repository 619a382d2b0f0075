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
	"io"
	"sync"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/encoding"
	"github.com/zhenghaoz/taxifare/floats"
)

const (
	kindCopy      = "copy"
	kindOneHot    = "onehot"
	kindNormalize = "normalize"
	kindConcat    = "concat"
)

// CopyColumn aliases a column under a new name. It is used to bind the label.
func CopyColumn(output, input string) Spec {
	return copySpec{output: output, input: input}
}

// OneHotEncode maps each distinct categorical value seen at fit time to a
// fixed-length indicator vector. Unseen categories at prediction time map to
// the all-zero vector.
func OneHotEncode(output, input string) Spec {
	return oneHotSpec{output: output, input: input}
}

// Normalize rescales a numeric column by its fit-time mean and variance:
// value -> (value - mean) / stddev. A zero-variance column is passed through
// unchanged, so no division by zero is ever produced.
func Normalize(output, input string) Spec {
	return normalizeSpec{output: output, input: input}
}

// Concatenate horizontally stacks named vector columns, in the given order,
// into one feature vector. The order is fixed at declaration time and is part
// of the fitted model's contract.
func Concatenate(output string, inputs ...string) Spec {
	return concatSpec{output: output, inputs: inputs}
}

/* copy */

type copySpec struct {
	output, input string
}

func (s copySpec) fit(f *frame) (Stage, error) {
	if !f.has(s.input) {
		return nil, errors.Annotatef(ErrUnknownInputColumn, "%s", s.input)
	}
	return &copyStage{Output: s.output, Input: s.input}, nil
}

type copyStage struct {
	Output string
	Input  string
}

func (s *copyStage) kind() string {
	return kindCopy
}

func (s *copyStage) apply(f *frame) error {
	if values, exist := f.strs[s.Input]; exist {
		f.strs[s.Output] = values
		return nil
	}
	if vectors, exist := f.vecs[s.Input]; exist {
		f.vecs[s.Output] = vectors
		return nil
	}
	return errors.Annotatef(ErrUnknownInputColumn, "%s", s.Input)
}

func (s *copyStage) marshal(w io.Writer) error {
	return encoding.WriteGob(w, s)
}

/* one-hot */

type oneHotSpec struct {
	output, input string
}

func (s oneHotSpec) fit(f *frame) (Stage, error) {
	values, exist := f.strs[s.input]
	if !exist {
		return nil, errors.Annotatef(ErrUnknownInputColumn, "categorical %s", s.input)
	}
	return &oneHotStage{
		Output: s.output,
		Input:  s.input,
		Vocab:  vocabularyOf(values).Values(),
	}, nil
}

type oneHotStage struct {
	Output string
	Input  string
	Vocab  []string

	once  sync.Once
	index *vocabulary
}

func (s *oneHotStage) kind() string {
	return kindOneHot
}

func (s *oneHotStage) apply(f *frame) error {
	values, exist := f.strs[s.Input]
	if !exist {
		return errors.Annotatef(ErrUnknownInputColumn, "categorical %s", s.Input)
	}
	s.once.Do(func() {
		s.index = vocabularyOf(s.Vocab)
	})
	vectors := make([][]float32, len(values))
	for i, value := range values {
		vectors[i] = make([]float32, len(s.Vocab))
		if id, ok := s.index.Id(value); ok {
			vectors[i][id] = 1
		}
	}
	f.vecs[s.Output] = vectors
	return nil
}

func (s *oneHotStage) marshal(w io.Writer) error {
	return encoding.WriteGob(w, s)
}

/* normalize */

type normalizeSpec struct {
	output, input string
}

func (s normalizeSpec) fit(f *frame) (Stage, error) {
	values, err := scalars(f, s.input)
	if err != nil {
		return nil, errors.Trace(err)
	}
	stage := &normalizeStage{
		Output: s.output,
		Input:  s.input,
		Mean:   floats.Mean(values),
		StdDev: floats.StdDev(values),
	}
	if stage.StdDev == 0 {
		stage.Identity = true
	}
	return stage, nil
}

type normalizeStage struct {
	Output   string
	Input    string
	Mean     float32
	StdDev   float32
	Identity bool
}

func (s *normalizeStage) kind() string {
	return kindNormalize
}

func (s *normalizeStage) apply(f *frame) error {
	values, err := scalars(f, s.Input)
	if err != nil {
		return errors.Trace(err)
	}
	vectors := make([][]float32, len(values))
	for i, v := range values {
		if s.Identity {
			vectors[i] = []float32{v}
		} else {
			vectors[i] = []float32{(v - s.Mean) / s.StdDev}
		}
	}
	f.vecs[s.Output] = vectors
	return nil
}

func (s *normalizeStage) marshal(w io.Writer) error {
	return encoding.WriteGob(w, s)
}

func scalars(f *frame, name string) ([]float32, error) {
	vectors, exist := f.vecs[name]
	if !exist {
		return nil, errors.Annotatef(ErrUnknownInputColumn, "numeric %s", name)
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

/* concatenate */

type concatSpec struct {
	output string
	inputs []string
}

func (s concatSpec) fit(f *frame) (Stage, error) {
	dims := make([]int, len(s.inputs))
	for i, input := range s.inputs {
		vectors, exist := f.vecs[input]
		if !exist {
			return nil, errors.Annotatef(ErrUnknownInputColumn, "vector %s", input)
		}
		if len(vectors) > 0 {
			dims[i] = len(vectors[0])
		}
	}
	return &concatStage{Output: s.output, Inputs: s.inputs, Dims: dims}, nil
}

type concatStage struct {
	Output string
	Inputs []string
	// Dims records the fit-time width of each input so that the feature
	// vector layout stays stable across fit, scoring and serialization.
	Dims []int
}

func (s *concatStage) kind() string {
	return kindConcat
}

func (s *concatStage) apply(f *frame) error {
	width := 0
	for _, dim := range s.Dims {
		width += dim
	}
	vectors := make([][]float32, f.n)
	for i := range vectors {
		vectors[i] = make([]float32, 0, width)
	}
	for j, input := range s.Inputs {
		source, exist := f.vecs[input]
		if !exist {
			return errors.Annotatef(ErrUnknownInputColumn, "vector %s", input)
		}
		for i := range source {
			if len(source[i]) != s.Dims[j] {
				return errors.Errorf("column %q has width %d, expected %d", input, len(source[i]), s.Dims[j])
			}
			vectors[i] = append(vectors[i], source[i]...)
		}
	}
	f.vecs[s.Output] = vectors
	return nil
}

func (s *concatStage) marshal(w io.Writer) error {
	return encoding.WriteGob(w, s)
}
