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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhenghaoz/taxifare/config"
)

func TestRun(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.TrainDataPath = "testdata/taxi-fare-train.csv"
	conf.TestDataPath = "testdata/taxi-fare-test.csv"
	conf.ModelPath = filepath.Join(t.TempDir(), "model.bin")
	conf.SDCA.NEpochs = 300
	assert.NoError(t, Run(conf))

	// the persisted artifact must be loadable on its own
	m, err := LoadModel(conf.ModelPath)
	assert.NoError(t, err)
	prediction, err := m.Predict(sampleTrip)
	assert.NoError(t, err)
	assert.Greater(t, prediction.FareAmount, float32(0))
}

func TestRun_MissingTrainData(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.TrainDataPath = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, Run(conf))
}
