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

// Package taxi binds the generic data, pipeline and regression layers to the
// taxi trip domain: the seven-column trip schema, the fare pipeline and the
// train/evaluate/persist/predict lifecycle.
package taxi

import (
	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/data"
)

// Column names. The first seven map 1:1, in order, to the seven columns of
// the source delimited file.
const (
	ColVendorID        = "vendorId"
	ColRateCode        = "rateCode"
	ColPassengerCount  = "passengerCount"
	ColTripTimeSeconds = "tripTimeSeconds"
	ColTripDistance    = "tripDistance"
	ColPaymentType     = "paymentType"
	ColFareAmount      = "fareAmount"

	ColLabel    = "Label"
	ColFeatures = "Features"
)

// TripRecord is one observed taxi trip. FareAmount is the regression label;
// for a record submitted only for prediction it is an ignored placeholder.
type TripRecord struct {
	VendorID        string
	RateCode        string
	PassengerCount  float32
	TripTimeSeconds float32
	TripDistance    float32
	PaymentType     string
	FareAmount      float32
}

// FarePrediction is the output of scoring a trip record.
type FarePrediction struct {
	FareAmount float32
}

// Schema returns the trip schema: seven ordered columns whose source indices
// are part of the on-disk contract.
func Schema() data.Schema {
	return data.Schema{
		{Name: ColVendorID, Type: data.Categorical, Source: 0},
		{Name: ColRateCode, Type: data.Categorical, Source: 1},
		{Name: ColPassengerCount, Type: data.Numeric, Source: 2},
		{Name: ColTripTimeSeconds, Type: data.Numeric, Source: 3},
		{Name: ColTripDistance, Type: data.Numeric, Source: 4},
		{Name: ColPaymentType, Type: data.Categorical, Source: 5},
		{Name: ColFareAmount, Type: data.Numeric, Source: 6},
	}
}

func (r TripRecord) table() (*data.Table, error) {
	t := data.NewTable(Schema())
	if err := t.AppendRow(r.VendorID, r.RateCode, r.PassengerCount,
		r.TripTimeSeconds, r.TripDistance, r.PaymentType, r.FareAmount); err != nil {
		return nil, errors.Trace(err)
	}
	return t, nil
}
