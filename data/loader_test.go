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

package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "vendor,distance,fare\nVTS,3.75,15.5\nCMT,1.2,6\nDDS,0.5,4.5\n")
	table, err := LoadCSV(path, testSchema, true, ',')
	assert.NoError(t, err)
	assert.Equal(t, 3, table.Count())
	assert.Equal(t, []string{"VTS", "CMT", "DDS"}, table.Strings("vendor"))
	assert.Equal(t, []float32{3.75, 1.2, 0.5}, table.Floats("distance"))
	assert.Equal(t, []float32{15.5, 6, 4.5}, table.Floats("fare"))
}

func TestLoadCSV_NoHeader(t *testing.T) {
	path := writeTempCSV(t, "VTS,3.75,15.5\nCMT,1.2,6\n")
	table, err := LoadCSV(path, testSchema, false, ',')
	assert.NoError(t, err)
	assert.Equal(t, 2, table.Count())
}

func TestLoadCSV_SourceNotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), testSchema, true, ',')
	assert.ErrorIs(t, errors.Cause(err), ErrSourceNotFound)
}

func TestLoadCSV_SchemaMismatch(t *testing.T) {
	// wrong field count
	path := writeTempCSV(t, "VTS,3.75\n")
	_, err := LoadCSV(path, testSchema, false, ',')
	assert.ErrorIs(t, errors.Cause(err), ErrSchemaMismatch)
	// unparsable numeric field
	path = writeTempCSV(t, "VTS,three,15.5\n")
	_, err = LoadCSV(path, testSchema, false, ',')
	assert.ErrorIs(t, errors.Cause(err), ErrSchemaMismatch)
}

func TestLoadCSV_Delimiter(t *testing.T) {
	path := writeTempCSV(t, "VTS;3.75;15.5\n")
	table, err := LoadCSV(path, testSchema, false, ';')
	assert.NoError(t, err)
	assert.Equal(t, 1, table.Count())
	assert.Equal(t, []float32{15.5}, table.Floats("fare"))
}
