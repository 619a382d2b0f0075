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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhenghaoz/taxifare/model"
)

func TestGetDefaultConfig(t *testing.T) {
	conf := GetDefaultConfig()
	assert.Equal(t, "data/taxi-fare-train.csv", conf.TrainDataPath)
	assert.Equal(t, "data/taxi-fare-test.csv", conf.TestDataPath)
	assert.Equal(t, "data/model.bin", conf.ModelPath)
	assert.True(t, conf.HasHeader)
	assert.Equal(t, ",", conf.Delimiter)
	assert.Equal(t, float32(1), conf.FareLowerBound)
	assert.Equal(t, float32(150), conf.FareUpperBound)
	assert.Equal(t, 20, conf.SDCA.NEpochs)
	assert.Equal(t, float32(0.0001), conf.SDCA.Reg)
}

func TestLoadConfig(t *testing.T) {
	text := `
trainDataPath = "train.csv"
fareUpperBound = 100

[sdca]
n_epochs = 50
random_state = 19
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	conf, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "train.csv", conf.TrainDataPath)
	assert.Equal(t, "data/taxi-fare-test.csv", conf.TestDataPath)
	assert.Equal(t, float32(100), conf.FareUpperBound)
	assert.Equal(t, 50, conf.SDCA.NEpochs)
	assert.Equal(t, int64(19), conf.SDCA.RandomState)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	conf, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), conf)
}

func TestLoadConfig_BadDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("delimiter = \"ab\"\n"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSDCAConfig_Params(t *testing.T) {
	conf := GetDefaultConfig()
	params := conf.SDCA.Params()
	assert.Equal(t, 20, params.GetInt(model.NEpochs, 0))
	assert.Equal(t, float32(0.0001), params.GetFloat32(model.Reg, 0))
	assert.Equal(t, int64(0), params.GetInt64(model.RandomState, -1))
}
