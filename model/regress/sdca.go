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

package regress

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/zhenghaoz/taxifare/base/log"
	"github.com/zhenghaoz/taxifare/floats"
	"github.com/zhenghaoz/taxifare/model"
	"go.uber.org/zap"
)

// SDCA is linear least-squares regression with L2 regularization, fitted by
// stochastic dual coordinate ascent. The bias term is handled as an implicit
// constant feature.
type SDCA struct {
	model.BaseModel
	// Model parameters
	W []float32
	B float32
	// Hyper parameters
	reg     float32
	nEpochs int
}

// NewSDCA creates an SDCA regression model.
func NewSDCA(params model.Params) *SDCA {
	m := new(SDCA)
	m.SetParams(params)
	return m
}

// SetParams sets hyper-parameters for the SDCA model.
func (s *SDCA) SetParams(params model.Params) {
	s.BaseModel.SetParams(params)
	s.reg = s.Params.GetFloat32(model.Reg, 1e-4)
	s.nEpochs = s.Params.GetInt(model.NEpochs, 20)
}

// Clear model weights.
func (s *SDCA) Clear() {
	s.W = nil
	s.B = 0
}

// Invalid reports whether the model has not been fitted.
func (s *SDCA) Invalid() bool {
	return s == nil || s.W == nil
}

// Predict scores a dense feature vector. The feature layout must be the one
// used at fit time.
func (s *SDCA) Predict(features []float32) float32 {
	return floats.Dot(s.W, features) + s.B
}

// Fit the model against the training set. Fitting is a single blocking call:
// every epoch visits all samples in a seeded random order, so predictions are
// reproducible for a fixed RandomState.
func (s *SDCA) Fit(trainSet, testSet *Dataset, config *FitConfig) (Score, error) {
	config = config.LoadDefaultIfNil()
	if trainSet.Count() == 0 || testSet.Count() == 0 {
		return Score{}, errors.Trace(ErrEmptyDataset)
	}
	nFeatures := len(trainSet.Features[0])
	log.Logger().Info("fit sdca",
		zap.Int("train_size", trainSet.Count()),
		zap.Int("test_size", testSet.Count()),
		zap.Int("n_features", nFeatures),
		zap.Any("params", s.GetParams()))
	s.W = make([]float32, nFeatures)
	s.B = 0

	n := trainSet.Count()
	alpha := make([]float32, n)
	normSq := make([]float32, n)
	for i := 0; i < n; i++ {
		x, _ := trainSet.Get(i)
		if len(x) != nFeatures {
			return Score{}, errors.Errorf("sample %d has %d features, expected %d", i, len(x), nFeatures)
		}
		// +1 accounts for the implicit bias feature
		normSq[i] = floats.Dot(x, x) + 1
	}
	lambdaN := s.reg * float32(n)

	var bar *progressbar.ProgressBar
	if config.Progress {
		bar = progressbar.Default(int64(s.nEpochs), "fit sdca")
	}
	var score Score
	var err error
	for epoch := 1; epoch <= s.nEpochs; epoch++ {
		fitStart := time.Now()
		cost := float32(0)
		for _, i := range s.GetRandomGenerator().Perm(n) {
			x, y := trainSet.Get(i)
			residual := y - s.Predict(x)
			cost += residual * residual / 2
			delta := (residual - alpha[i]) / (1 + normSq[i]/lambdaN)
			alpha[i] += delta
			step := delta / lambdaN
			floats.MulConstAddTo(x, step, s.W)
			s.B += step
		}
		fitTime := time.Since(fitStart)
		if epoch%config.Verbose == 0 || epoch == s.nEpochs {
			evalStart := time.Now()
			score, err = EvaluateRegression(s, testSet)
			if err != nil {
				return Score{}, errors.Trace(err)
			}
			evalTime := time.Since(evalStart)
			fields := append([]zap.Field{
				zap.String("fit_time", fitTime.String()),
				zap.String("eval_time", evalTime.String()),
				zap.Float32("loss", cost),
			}, score.ZapFields()...)
			log.Logger().Debug(fmt.Sprintf("fit sdca %v/%v", epoch, s.nEpochs), fields...)
			if math32.IsNaN(cost) || math32.IsNaN(score.RMSE) {
				log.Logger().Warn("model diverged", zap.Float32("reg", s.reg))
				break
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	log.Logger().Info("fit sdca complete", score.ZapFields()...)
	return score, nil
}

// Marshal model into byte stream.
func (s *SDCA) Marshal(w io.Writer) error {
	// write hyper-parameters
	if err := binary.Write(w, binary.LittleEndian, s.reg); err != nil {
		return errors.Trace(err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(s.nEpochs)); err != nil {
		return errors.Trace(err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.Params.GetInt64(model.RandomState, 0)); err != nil {
		return errors.Trace(err)
	}
	// write scalars
	if err := binary.Write(w, binary.LittleEndian, s.B); err != nil {
		return errors.Trace(err)
	}
	// write vector
	if err := binary.Write(w, binary.LittleEndian, int32(len(s.W))); err != nil {
		return errors.Trace(err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.W); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// Unmarshal model from byte stream.
func (s *SDCA) Unmarshal(r io.Reader) error {
	// read hyper-parameters
	var reg float32
	if err := binary.Read(r, binary.LittleEndian, &reg); err != nil {
		return errors.Trace(err)
	}
	var nEpochs int32
	if err := binary.Read(r, binary.LittleEndian, &nEpochs); err != nil {
		return errors.Trace(err)
	}
	var randomState int64
	if err := binary.Read(r, binary.LittleEndian, &randomState); err != nil {
		return errors.Trace(err)
	}
	s.SetParams(model.Params{
		model.Reg:         reg,
		model.NEpochs:     int(nEpochs),
		model.RandomState: randomState,
	})
	// read scalars
	if err := binary.Read(r, binary.LittleEndian, &s.B); err != nil {
		return errors.Trace(err)
	}
	// read vector
	var size int32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return errors.Trace(err)
	}
	if size < 0 {
		return errors.Errorf("negative weight count %d", size)
	}
	s.W = make([]float32, size)
	if err := binary.Read(r, binary.LittleEndian, s.W); err != nil {
		return errors.Trace(err)
	}
	return nil
}
