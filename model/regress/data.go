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

// Dataset is a dense feature matrix with a target column. Rows are
// positionally aligned between Features and Target.
type Dataset struct {
	Features [][]float32
	Target   []float32
}

// Count returns the number of samples.
func (dataset *Dataset) Count() int {
	if len(dataset.Features) != len(dataset.Target) {
		panic("len(dataset.Features) != len(dataset.Target)")
	}
	return len(dataset.Target)
}

// Get returns the i-th sample.
func (dataset *Dataset) Get(i int) ([]float32, float32) {
	return dataset.Features[i], dataset.Target[i]
}
