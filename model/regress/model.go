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

// Package regress implements linear regression fitted by stochastic dual
// coordinate ascent.
package regress

import (
	"io"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/encoding"
	"github.com/zhenghaoz/taxifare/model"
	"go.uber.org/zap"
)

const headerSDCA = "SDCA"

// Score is the aggregate regression error of a model over a test split.
type Score struct {
	RMSE float32
	R2   float32
}

func (score Score) ZapFields() []zap.Field {
	return []zap.Field{
		zap.Float32("RMSE", score.RMSE),
		zap.Float32("R2", score.R2),
	}
}

func (score Score) BetterThan(s Score) bool {
	return score.RMSE < s.RMSE
}

// FitConfig is the configuration for fitting.
type FitConfig struct {
	Verbose  int
	Progress bool
}

func NewFitConfig() *FitConfig {
	return &FitConfig{
		Verbose: 10,
	}
}

func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

func (config *FitConfig) SetProgress(progress bool) *FitConfig {
	config.Progress = progress
	return config
}

func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}

// Regression is the interface of regression models in this package.
type Regression interface {
	model.Model
	Predict(features []float32) float32
	Fit(trainSet, testSet *Dataset, config *FitConfig) (Score, error)
	Marshal(w io.Writer) error
}

// MarshalModel writes a regression model with its kind marker.
func MarshalModel(w io.Writer, m Regression) error {
	switch m.(type) {
	case *SDCA:
		if err := encoding.WriteString(w, headerSDCA); err != nil {
			return errors.Trace(err)
		}
	default:
		return errors.Errorf("unknown model: %T", m)
	}
	return m.Marshal(w)
}

// UnmarshalModel reads a regression model written by MarshalModel.
func UnmarshalModel(r io.Reader) (Regression, error) {
	header, err := encoding.ReadString(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	switch header {
	case headerSDCA:
		var m SDCA
		if err := m.Unmarshal(r); err != nil {
			return nil, errors.Trace(err)
		}
		return &m, nil
	}
	return nil, errors.Errorf("unknown model: %v", header)
}
