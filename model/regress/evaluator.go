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
	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/zhenghaoz/taxifare/floats"
)

// ErrEmptyDataset is returned when metrics are requested over zero rows,
// where RMSE and R2 are undefined.
var ErrEmptyDataset = errors.New("empty dataset")

// Predictor scores a single dense feature vector.
type Predictor interface {
	Predict(features []float32) float32
}

// EvaluateRegression computes the root-mean-squared-error and the coefficient
// of determination of a model over a test split.
func EvaluateRegression(estimator Predictor, testSet *Dataset) (Score, error) {
	if testSet.Count() == 0 {
		return Score{}, errors.Trace(ErrEmptyDataset)
	}
	pairs := make([]lo.Tuple2[float32, float32], testSet.Count())
	for i := 0; i < testSet.Count(); i++ {
		features, target := testSet.Get(i)
		pairs[i] = lo.T2(target, estimator.Predict(features))
	}
	mean := floats.Mean(testSet.Target)
	var residualSum, totalSum float32
	for _, pair := range pairs {
		target, prediction := pair.Unpack()
		residualSum += (target - prediction) * (target - prediction)
		totalSum += (target - mean) * (target - mean)
	}
	score := Score{RMSE: math32.Sqrt(residualSum / float32(testSet.Count()))}
	if totalSum > 0 {
		score.R2 = 1 - residualSum/totalSum
	} else if residualSum == 0 {
		// constant labels predicted exactly
		score.R2 = 1
	}
	return score, nil
}
