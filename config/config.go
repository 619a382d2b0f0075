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
	"github.com/juju/errors"
	"github.com/spf13/viper"
	"github.com/zhenghaoz/taxifare/model"
)

// Config is the configuration for the taxi fare lifecycle. Paths default to
// conventional locations and can be overridden from a TOML file.
type Config struct {
	TrainDataPath  string     `mapstructure:"trainDataPath"`
	TestDataPath   string     `mapstructure:"testDataPath"`
	ModelPath      string     `mapstructure:"modelPath"`
	HasHeader      bool       `mapstructure:"hasHeader"`
	Delimiter      string     `mapstructure:"delimiter"`
	FareLowerBound float32    `mapstructure:"fareLowerBound"`
	FareUpperBound float32    `mapstructure:"fareUpperBound"`
	SDCA           SDCAConfig `mapstructure:"sdca"`
}

// SDCAConfig is the configuration for the SDCA trainer.
type SDCAConfig struct {
	NEpochs     int     `mapstructure:"n_epochs"`
	Reg         float32 `mapstructure:"reg"`
	RandomState int64   `mapstructure:"random_state"`
}

func setDefault(v *viper.Viper) {
	v.SetDefault("trainDataPath", "data/taxi-fare-train.csv")
	v.SetDefault("testDataPath", "data/taxi-fare-test.csv")
	v.SetDefault("modelPath", "data/model.bin")
	v.SetDefault("hasHeader", true)
	v.SetDefault("delimiter", ",")
	v.SetDefault("fareLowerBound", 1)
	v.SetDefault("fareUpperBound", 150)
	v.SetDefault("sdca.n_epochs", 20)
	v.SetDefault("sdca.reg", 0.0001)
	v.SetDefault("sdca.random_state", 0)
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	v := viper.New()
	setDefault(v)
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		panic(err)
	}
	return &conf
}

// LoadConfig loads configuration from a TOML file. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if len(conf.Delimiter) != 1 {
		return nil, errors.Errorf("delimiter must be a single character, got %q", conf.Delimiter)
	}
	return &conf, nil
}

// Params converts the SDCA section to model hyper-parameters.
func (config *SDCAConfig) Params() model.Params {
	return model.Params{
		model.NEpochs:     config.NEpochs,
		model.Reg:         config.Reg,
		model.RandomState: config.RandomState,
	}
}
