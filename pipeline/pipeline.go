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

// Package pipeline declares ordered column transformations and fits them
// against tables. Declaring a pipeline is pure, fitting it is the only
// effectful step.
package pipeline

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/encoding"
	"github.com/zhenghaoz/taxifare/base/log"
	"github.com/zhenghaoz/taxifare/data"
	"go.uber.org/zap"
)

// ErrUnknownInputColumn is returned when a transform references a column not
// produced by an earlier stage or present in the source schema. It is
// detected at fit time, not at declaration time.
var ErrUnknownInputColumn = errors.New("unknown input column")

// Spec declares a single column transform. Specs are plain values created by
// CopyColumn, OneHotEncode, Normalize and Concatenate.
type Spec interface {
	// fit observes the full frame and returns the stage holding the
	// transform's learned statistics.
	fit(f *frame) (Stage, error)
}

// Stage is a fitted transform with fixed statistics.
type Stage interface {
	apply(f *frame) error
	kind() string
	marshal(w io.Writer) error
}

// Pipeline is an ordered, immutable list of transform specifications.
type Pipeline struct {
	specs []Spec
}

// New creates a pipeline from the given specs.
func New(specs ...Spec) Pipeline {
	return Pipeline{specs: specs}
}

// Append returns a new pipeline whose spec list is the receiver's list with
// spec appended. The receiver is not mutated.
func (p Pipeline) Append(spec Spec) Pipeline {
	specs := make([]Spec, len(p.specs), len(p.specs)+1)
	copy(specs, p.specs)
	return Pipeline{specs: append(specs, spec)}
}

// Len returns the number of declared specs.
func (p Pipeline) Len() int {
	return len(p.specs)
}

// Fit fits every spec in declared order against the table. Each stateful
// transform observes the full table to learn its statistics before the next
// stage is fitted on the transformed columns.
func (p Pipeline) Fit(t *data.Table) (*FittedPipeline, error) {
	start := time.Now()
	f := newFrame(t)
	stages := make([]Stage, 0, len(p.specs))
	for _, spec := range p.specs {
		stage, err := spec.fit(f)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if err = stage.apply(f); err != nil {
			return nil, errors.Trace(err)
		}
		stages = append(stages, stage)
	}
	log.Logger().Info("fit pipeline",
		zap.Int("n_stages", len(stages)),
		zap.Int("n_rows", t.Count()),
		zap.Duration("fit_time", time.Since(start)))
	return &FittedPipeline{stages: stages}, nil
}

// FittedPipeline is an immutable chain of fitted stages. It is safe to call
// Transform concurrently from multiple callers.
type FittedPipeline struct {
	stages []Stage
}

// Transform applies every stage in order to the table.
func (p *FittedPipeline) Transform(t *data.Table) (*Transformed, error) {
	f := newFrame(t)
	for _, stage := range p.stages {
		if err := stage.apply(f); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return &Transformed{f: f}, nil
}

// Marshal writes the fitted pipeline to a byte stream: for every stage its
// kind marker followed by its parameters and learned statistics.
func (p *FittedPipeline) Marshal(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(p.stages))); err != nil {
		return errors.Trace(err)
	}
	for _, stage := range p.stages {
		if err := encoding.WriteString(w, stage.kind()); err != nil {
			return errors.Trace(err)
		}
		if err := stage.marshal(w); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// UnmarshalPipeline reads a fitted pipeline from a byte stream.
func UnmarshalPipeline(r io.Reader) (*FittedPipeline, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Trace(err)
	}
	if count < 0 {
		return nil, errors.Errorf("negative stage count %d", count)
	}
	stages := make([]Stage, 0, count)
	for i := int32(0); i < count; i++ {
		kind, err := encoding.ReadString(r)
		if err != nil {
			return nil, errors.Trace(err)
		}
		var stage Stage
		switch kind {
		case kindCopy:
			stage = &copyStage{}
		case kindOneHot:
			stage = &oneHotStage{}
		case kindNormalize:
			stage = &normalizeStage{}
		case kindConcat:
			stage = &concatStage{}
		default:
			return nil, errors.Errorf("unknown stage kind %q", kind)
		}
		if err = encoding.ReadGob(r, stage); err != nil {
			return nil, errors.Trace(err)
		}
		stages = append(stages, stage)
	}
	return &FittedPipeline{stages: stages}, nil
}
