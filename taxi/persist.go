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
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/zhenghaoz/taxifare/base/log"
	"go.uber.org/zap"
)

// SaveModel writes the model artifact to path. The artifact is written to a
// temporary file in the same directory and renamed into place, so readers
// never observe a partially written file.
func SaveModel(m *Model, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	temp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return errors.Trace(err)
	}
	if err = m.Marshal(temp); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return errors.Trace(err)
	}
	if err = temp.Close(); err != nil {
		os.Remove(temp.Name())
		return errors.Trace(err)
	}
	if err = os.Rename(temp.Name(), path); err != nil {
		os.Remove(temp.Name())
		return errors.Trace(err)
	}
	log.Logger().Info("save model", zap.String("path", path))
	return nil
}

// LoadModel reads a model artifact written by SaveModel.
func LoadModel(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	m, err := UnmarshalModel(file)
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("load model", zap.String("path", path))
	return m, nil
}
