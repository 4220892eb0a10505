// Copyright 2026 gorse Project Authors
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

package dataset

import (
	"github.com/juju/errors"
)

// Dataset holds the same rows of numbers in double and single precision.
// It must not be modified after construction.
type Dataset struct {
	float64s [][]float64
	float32s [][]float32
	values   int
}

// NewDataset creates a dataset from rows parsed in both precisions. Both
// representations must have the same shape.
func NewDataset(float64s [][]float64, float32s [][]float32) (*Dataset, error) {
	if len(float64s) != len(float32s) {
		return nil, errors.NotValidf("row count %d != %d", len(float64s), len(float32s))
	}
	values := 0
	for i := range float64s {
		if len(float64s[i]) != len(float32s[i]) {
			return nil, errors.NotValidf("row %d length %d != %d", i, len(float64s[i]), len(float32s[i]))
		}
		values += len(float64s[i])
	}
	return &Dataset{
		float64s: float64s,
		float32s: float32s,
		values:   values,
	}, nil
}

// FromRows creates a dataset from double rows, rounding every value to
// single precision for the float32 representation.
func FromRows(rows [][]float64) *Dataset {
	float32s := make([][]float32, len(rows))
	for i, row := range rows {
		float32s[i] = make([]float32, len(row))
		for j, v := range row {
			float32s[i][j] = float32(v)
		}
	}
	d, _ := NewDataset(rows, float32s)
	return d
}

// CountRows returns the number of rows.
func (d *Dataset) CountRows() int {
	return len(d.float64s)
}

// CountValues returns the number of values over all rows.
func (d *Dataset) CountValues() int {
	return d.values
}

func (d *Dataset) Float64Row(i int) []float64 {
	return d.float64s[i]
}

func (d *Dataset) Float64s() [][]float64 {
	return d.float64s
}

func (d *Dataset) Float32s() [][]float32 {
	return d.float32s
}
