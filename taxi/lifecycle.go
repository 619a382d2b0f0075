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
	"fmt"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/log"
	"github.com/zhenghaoz/taxifare/config"
	"github.com/zhenghaoz/taxifare/data"
	"github.com/zhenghaoz/taxifare/model/regress"
	"go.uber.org/zap"
)

// sampleTrip is the held-out trip scored after the model round-trips through
// the artifact file. Its observed fare was 15.5.
var sampleTrip = TripRecord{
	VendorID:        "VTS",
	RateCode:        "1",
	PassengerCount:  1,
	TripTimeSeconds: 1140,
	TripDistance:    3.75,
	PaymentType:     "CRD",
}

const sampleTripFare float32 = 15.5

// Run executes the full lifecycle: load both splits, filter fare outliers
// from the training split, train, evaluate, persist the model, reload it and
// score a single trip.
func Run(conf *config.Config) error {
	schema := Schema()
	comma := rune(conf.Delimiter[0])
	trainTable, err := data.LoadCSV(conf.TrainDataPath, schema, conf.HasHeader, comma)
	if err != nil {
		return errors.Trace(err)
	}
	testTable, err := data.LoadCSV(conf.TestDataPath, schema, conf.HasHeader, comma)
	if err != nil {
		return errors.Trace(err)
	}
	filtered, err := trainTable.Filter(ColFareAmount, conf.FareLowerBound, conf.FareUpperBound)
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("filter fare outliers",
		zap.Float32("lower_bound", conf.FareLowerBound),
		zap.Float32("upper_bound", conf.FareUpperBound),
		zap.Int("before", trainTable.Count()),
		zap.Int("after", filtered.Count()))

	m, _, err := Train(filtered, testTable, conf.SDCA.Params(), regress.NewFitConfig().SetProgress(true))
	if err != nil {
		return errors.Trace(err)
	}
	score, err := m.Evaluate(testTable)
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("evaluate model", score.ZapFields()...)
	fmt.Printf("RMSE: %.4f\n", score.RMSE)
	fmt.Printf("R2: %.4f\n", score.R2)

	if err = SaveModel(m, conf.ModelPath); err != nil {
		return errors.Trace(err)
	}
	reloaded, err := LoadModel(conf.ModelPath)
	if err != nil {
		return errors.Trace(err)
	}
	prediction, err := reloaded.Predict(sampleTrip)
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Printf("Predicted fare: %.4f, actual fare: %v\n", prediction.FareAmount, sampleTripFare)
	return nil
}
