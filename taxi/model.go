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

package taxi

import (
	"io"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/encoding"
	"github.com/zhenghaoz/taxifare/data"
	"github.com/zhenghaoz/taxifare/model"
	"github.com/zhenghaoz/taxifare/model/regress"
	"github.com/zhenghaoz/taxifare/pipeline"
)

var (
	// ErrIncompleteRecord is returned when a trip record submitted for
	// prediction is missing a categorical field.
	ErrIncompleteRecord = errors.New("incomplete trip record")
	// ErrCorruptModel is returned when a model artifact cannot be decoded.
	ErrCorruptModel = errors.New("corrupt model artifact")
)

// FarePipeline declares the feature pipeline for fare regression: the label
// copied out of the fare column, categorical columns one-hot encoded, numeric
// columns normalized, everything concatenated into a single feature vector.
func FarePipeline() pipeline.Pipeline {
	return pipeline.New().
		Append(pipeline.CopyColumn(ColLabel, ColFareAmount)).
		Append(pipeline.OneHotEncode("VendorIdEncoded", ColVendorID)).
		Append(pipeline.OneHotEncode("RateCodeEncoded", ColRateCode)).
		Append(pipeline.OneHotEncode("PaymentTypeEncoded", ColPaymentType)).
		Append(pipeline.Normalize("PassengerCountNormalized", ColPassengerCount)).
		Append(pipeline.Normalize("TripTimeNormalized", ColTripTimeSeconds)).
		Append(pipeline.Normalize("TripDistanceNormalized", ColTripDistance)).
		Append(pipeline.Concatenate(ColFeatures,
			"VendorIdEncoded", "RateCodeEncoded", "PaymentTypeEncoded",
			"PassengerCountNormalized", "TripTimeNormalized", "TripDistanceNormalized"))
}

// Model couples a fitted feature pipeline with the regressor trained on its
// output. Both halves are persisted together so a reloaded model scores raw
// trip records without refitting.
type Model struct {
	pipeline  *pipeline.FittedPipeline
	regressor regress.Regression
}

// Train fits the fare pipeline on the training table, transforms both splits
// and fits an SDCA regressor on the result.
func Train(trainTable, testTable *data.Table, params model.Params, config *regress.FitConfig) (*Model, regress.Score, error) {
	fitted, err := FarePipeline().Fit(trainTable)
	if err != nil {
		return nil, regress.Score{}, errors.Trace(err)
	}
	trainSet, err := transform(fitted, trainTable)
	if err != nil {
		return nil, regress.Score{}, errors.Trace(err)
	}
	testSet, err := transform(fitted, testTable)
	if err != nil {
		return nil, regress.Score{}, errors.Trace(err)
	}
	regressor := regress.NewSDCA(params)
	score, err := regressor.Fit(trainSet, testSet, config)
	if err != nil {
		return nil, regress.Score{}, errors.Trace(err)
	}
	return &Model{pipeline: fitted, regressor: regressor}, score, nil
}

func transform(p *pipeline.FittedPipeline, t *data.Table) (*regress.Dataset, error) {
	transformed, err := p.Transform(t)
	if err != nil {
		return nil, errors.Trace(err)
	}
	features, err := transformed.Vectors(ColFeatures)
	if err != nil {
		return nil, errors.Trace(err)
	}
	target, err := transformed.Scalars(ColLabel)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &regress.Dataset{Features: features, Target: target}, nil
}

// Evaluate scores the model against a labeled table.
func (m *Model) Evaluate(t *data.Table) (regress.Score, error) {
	testSet, err := transform(m.pipeline, t)
	if err != nil {
		return regress.Score{}, errors.Trace(err)
	}
	return regress.EvaluateRegression(m.regressor, testSet)
}

// Predict scores a single trip record. Categorical fields must be present;
// a category never seen during training contributes a zero vector.
func (m *Model) Predict(r TripRecord) (FarePrediction, error) {
	if r.VendorID == "" || r.RateCode == "" || r.PaymentType == "" {
		return FarePrediction{}, errors.Annotatef(ErrIncompleteRecord,
			"vendorId=%q rateCode=%q paymentType=%q", r.VendorID, r.RateCode, r.PaymentType)
	}
	t, err := r.table()
	if err != nil {
		return FarePrediction{}, errors.Trace(err)
	}
	transformed, err := m.pipeline.Transform(t)
	if err != nil {
		return FarePrediction{}, errors.Trace(err)
	}
	features, err := transformed.Vectors(ColFeatures)
	if err != nil {
		return FarePrediction{}, errors.Trace(err)
	}
	return FarePrediction{FareAmount: m.regressor.Predict(features[0])}, nil
}

const modelHeader = "taxifare/v1"

// Marshal writes the model artifact: a format header, the fitted pipeline and
// the regressor.
func (m *Model) Marshal(w io.Writer) error {
	if err := encoding.WriteString(w, modelHeader); err != nil {
		return errors.Trace(err)
	}
	if err := m.pipeline.Marshal(w); err != nil {
		return errors.Trace(err)
	}
	return regress.MarshalModel(w, m.regressor)
}

// UnmarshalModel reads a model artifact written by Marshal.
func UnmarshalModel(r io.Reader) (*Model, error) {
	header, err := encoding.ReadString(r)
	if err != nil {
		return nil, errors.Wrap(err, ErrCorruptModel)
	}
	if header != modelHeader {
		return nil, errors.Annotatef(ErrCorruptModel, "unexpected header %q", header)
	}
	fitted, err := pipeline.UnmarshalPipeline(r)
	if err != nil {
		return nil, errors.Wrap(err, ErrCorruptModel)
	}
	regressor, err := regress.UnmarshalModel(r)
	if err != nil {
		return nil, errors.Wrap(err, ErrCorruptModel)
	}
	return &Model{pipeline: fitted, regressor: regressor}, nil
}
