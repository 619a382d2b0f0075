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

package pipeline

import (
	"bytes"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhenghaoz/taxifare/data"
)

var testSchema = data.Schema{
	{Name: "vendor", Type: data.Categorical, Source: 0},
	{Name: "distance", Type: data.Numeric, Source: 1},
	{Name: "fare", Type: data.Numeric, Source: 2},
}

func newTestTable(t *testing.T, rows ...[]interface{}) *data.Table {
	table := data.NewTable(testSchema)
	for _, row := range rows {
		require.NoError(t, table.AppendRow(row...))
	}
	return table
}

func TestPipeline_AppendIsPure(t *testing.T) {
	p := New(CopyColumn("Label", "fare"))
	q := p.Append(OneHotEncode("VendorEncoded", "vendor"))
	r := p.Append(Normalize("DistanceNormalized", "distance"))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 2, r.Len())
}

func TestCopyColumn(t *testing.T) {
	table := newTestTable(t,
		[]interface{}{"VTS", float32(3.75), float32(15.5)},
		[]interface{}{"CMT", float32(1.2), float32(6)})
	fitted, err := New(CopyColumn("Label", "fare")).Fit(table)
	assert.NoError(t, err)
	transformed, err := fitted.Transform(table)
	assert.NoError(t, err)
	labels, err := transformed.Scalars("Label")
	assert.NoError(t, err)
	assert.Equal(t, []float32{15.5, 6}, labels)
}

func TestOneHotEncode(t *testing.T) {
	table := newTestTable(t,
		[]interface{}{"VTS", float32(1), float32(1)},
		[]interface{}{"CMT", float32(1), float32(1)},
		[]interface{}{"VTS", float32(1), float32(1)})
	fitted, err := New(OneHotEncode("VendorEncoded", "vendor")).Fit(table)
	assert.NoError(t, err)
	transformed, err := fitted.Transform(table)
	assert.NoError(t, err)
	vectors, err := transformed.Vectors("VendorEncoded")
	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}, {1, 0}}, vectors)
}

func TestOneHotEncode_UnseenCategory(t *testing.T) {
	trainTable := newTestTable(t,
		[]interface{}{"VTS", float32(1), float32(1)},
		[]interface{}{"CMT", float32(1), float32(1)})
	fitted, err := New(OneHotEncode("VendorEncoded", "vendor")).Fit(trainTable)
	assert.NoError(t, err)
	// a vendor never seen during fit maps to the all-zero vector
	testTable := newTestTable(t, []interface{}{"DDS", float32(1), float32(1)})
	transformed, err := fitted.Transform(testTable)
	assert.NoError(t, err)
	vectors, err := transformed.Vectors("VendorEncoded")
	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 0}}, vectors)
}

func TestNormalize(t *testing.T) {
	table := newTestTable(t,
		[]interface{}{"VTS", float32(1), float32(1)},
		[]interface{}{"VTS", float32(2), float32(1)},
		[]interface{}{"VTS", float32(3), float32(1)},
		[]interface{}{"VTS", float32(4), float32(1)})
	fitted, err := New(Normalize("DistanceNormalized", "distance")).Fit(table)
	assert.NoError(t, err)
	transformed, err := fitted.Transform(table)
	assert.NoError(t, err)
	values, err := transformed.Scalars("DistanceNormalized")
	assert.NoError(t, err)
	// mean 2.5, population stddev sqrt(1.25)
	assert.InDelta(t, 0, values[0]+values[3], 1e-6)
	assert.InDelta(t, 0, values[1]+values[2], 1e-6)
	assert.InDelta(t, -1.3416408, values[0], 1e-5)
}

func TestNormalize_ZeroVariance(t *testing.T) {
	table := newTestTable(t,
		[]interface{}{"VTS", float32(7), float32(1)},
		[]interface{}{"VTS", float32(7), float32(1)})
	fitted, err := New(Normalize("DistanceNormalized", "distance")).Fit(table)
	assert.NoError(t, err)
	transformed, err := fitted.Transform(table)
	assert.NoError(t, err)
	values, err := transformed.Scalars("DistanceNormalized")
	assert.NoError(t, err)
	// zero-variance columns pass through unchanged
	assert.Equal(t, []float32{7, 7}, values)
}

func TestConcatenate(t *testing.T) {
	table := newTestTable(t,
		[]interface{}{"VTS", float32(3), float32(15.5)},
		[]interface{}{"CMT", float32(1), float32(6)})
	p := New(
		OneHotEncode("VendorEncoded", "vendor"),
		Concatenate("Features", "VendorEncoded", "distance"))
	fitted, err := p.Fit(table)
	assert.NoError(t, err)
	transformed, err := fitted.Transform(table)
	assert.NoError(t, err)
	vectors, err := transformed.Vectors("Features")
	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0, 3}, {0, 1, 1}}, vectors)
}

func TestFit_UnknownInputColumn(t *testing.T) {
	table := newTestTable(t, []interface{}{"VTS", float32(1), float32(1)})
	_, err := New(OneHotEncode("TipEncoded", "tip")).Fit(table)
	assert.ErrorIs(t, errors.Cause(err), ErrUnknownInputColumn)
	_, err = New(Normalize("TipNormalized", "tip")).Fit(table)
	assert.ErrorIs(t, errors.Cause(err), ErrUnknownInputColumn)
	_, err = New(Concatenate("Features", "tip")).Fit(table)
	assert.ErrorIs(t, errors.Cause(err), ErrUnknownInputColumn)
	_, err = New(CopyColumn("Label", "tip")).Fit(table)
	assert.ErrorIs(t, errors.Cause(err), ErrUnknownInputColumn)
}

func TestFittedPipeline_Marshal(t *testing.T) {
	trainTable := newTestTable(t,
		[]interface{}{"VTS", float32(3.75), float32(15.5)},
		[]interface{}{"CMT", float32(1.2), float32(6)},
		[]interface{}{"DDS", float32(0.5), float32(4.5)})
	p := New(
		CopyColumn("Label", "fare"),
		OneHotEncode("VendorEncoded", "vendor"),
		Normalize("DistanceNormalized", "distance"),
		Concatenate("Features", "VendorEncoded", "DistanceNormalized"))
	fitted, err := p.Fit(trainTable)
	assert.NoError(t, err)

	buf := bytes.NewBuffer(nil)
	assert.NoError(t, fitted.Marshal(buf))
	decoded, err := UnmarshalPipeline(buf)
	assert.NoError(t, err)

	expected, err := fitted.Transform(trainTable)
	assert.NoError(t, err)
	actual, err := decoded.Transform(trainTable)
	assert.NoError(t, err)
	expectedFeatures, err := expected.Vectors("Features")
	assert.NoError(t, err)
	actualFeatures, err := actual.Vectors("Features")
	assert.NoError(t, err)
	assert.Equal(t, expectedFeatures, actualFeatures)
}

func TestUnmarshalPipeline_Corrupted(t *testing.T) {
	_, err := UnmarshalPipeline(bytes.NewReader([]byte{1, 0, 0, 0, 5, 0, 0, 0, 'b', 'o', 'g', 'u', 's'}))
	assert.Error(t, err)
}
