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

package summation

import (
	"bytes"
	"context"
	"testing"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xinmyname/avgnumbers/common/floats"
	"github.com/xinmyname/avgnumbers/dataset"
)

const (
	exactEpsilon  = 1e-9
	vectorEpsilon = 1e-6
	singleEpsilon = 1e-4
)

var partitionCounts = []int{1, 2, 3, 4, 8, 16, 32}

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
	sums   []float64
}

func (s *EngineTestSuite) runAll(expected float64) {
	ctx := context.Background()
	sequential, err := s.engine.Sequential(s.sums)
	s.NoError(err)
	s.InEpsilon(expected, sequential, exactEpsilon)
	rowSums := append([]float64(nil), s.sums...)

	check := func(name string, mean float64, err error) {
		s.NoError(err, name)
		s.InEpsilon(sequential, mean, exactEpsilon, name)
		s.InDeltaSlice(rowSums, s.sums, 1e-6, name)
	}
	mean, err := s.engine.DataParallel(ctx, s.sums)
	check(DataParallel, mean, err)
	mean, err = s.engine.TaskPerRow(ctx, s.sums)
	check(TaskPerRow, mean, err)
	for _, k := range partitionCounts {
		mean, err = s.engine.Partitioned(ctx, s.sums, k)
		check(Partitioned, mean, err)
	}
	// more partitions than rows
	mean, err = s.engine.Partitioned(ctx, s.sums, s.engine.Dataset().CountRows()+7)
	check(Partitioned, mean, err)

	if s.engine.Feature().Lanes64() > 0 {
		mean, err = s.engine.SIMDDouble(s.sums)
		s.NoError(err)
		s.InEpsilon(sequential, mean, vectorEpsilon)
		s.InDeltaSlice(rowSums, s.sums, 1e-6)

		mean, err = s.engine.SIMDFloat()
		s.NoError(err)
		s.InEpsilon(sequential, mean, singleEpsilon)
	}
}

func (s *EngineTestSuite) TestExample() {
	var err error
	s.engine, err = NewEngine(dataset.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}), WithUnboundedTasks(true))
	s.Require().NoError(err)
	s.sums = s.engine.NewSums()
	s.runAll(15)
	mean, err := s.engine.Sequential(s.sums)
	s.NoError(err)
	s.Equal(15.0, mean)
	s.Equal([]float64{6, 15, 24}, s.sums)
}

func (s *EngineTestSuite) TestRandom() {
	for _, ragged := range []bool{false, true} {
		var buf bytes.Buffer
		s.Require().NoError(dataset.Generate(&buf, dataset.GenerateConfig{Rows: 257, Columns: 131, Ragged: ragged, Seed: 42}))
		data, err := dataset.Load(&buf)
		s.Require().NoError(err)
		s.engine, err = NewEngine(data, WithUnboundedTasks(true), WithJobs(4))
		s.Require().NoError(err)
		s.sums = s.engine.NewSums()
		expected := lo.SumBy(data.Float64s(), func(row []float64) float64 {
			return lo.Sum(row)
		}) / float64(data.CountRows())
		s.runAll(expected)
	}
}

func (s *EngineTestSuite) TestSingleRow() {
	var err error
	s.engine, err = NewEngine(dataset.FromRows([][]float64{{1.5, 2.5, 3, 4, 5}}), WithUnboundedTasks(true))
	s.Require().NoError(err)
	s.sums = s.engine.NewSums()
	s.runAll(16)
}

func TestEngine(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(nil)
	assert.True(t, errors.Is(err, errors.NotValid))
	empty, err := dataset.NewDataset(nil, nil)
	require.NoError(t, err)
	_, err = NewEngine(empty)
	assert.True(t, errors.Is(err, errors.NotValid))

	e, err := NewEngine(dataset.FromRows([][]float64{{1}}), WithJobs(0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, e.Jobs(), 1)
	assert.Equal(t, floats.Active(), e.Feature())
}

func TestScratchReset(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1, 2}, {3, 4}}), WithUnboundedTasks(true))
	require.NoError(t, err)
	ctx := context.Background()
	run := map[string]func(sums []float64) (float64, error){
		Sequential:   e.Sequential,
		DataParallel: func(sums []float64) (float64, error) { return e.DataParallel(ctx, sums) },
		TaskPerRow:   func(sums []float64) (float64, error) { return e.TaskPerRow(ctx, sums) },
		Partitioned:  func(sums []float64) (float64, error) { return e.Partitioned(ctx, sums, 2) },
	}
	for name, f := range run {
		sums := []float64{100, -100}
		mean, err := f(sums)
		assert.NoError(t, err, name)
		assert.Equal(t, 5.0, mean, name)
		assert.Equal(t, []float64{3, 7}, sums, name)

		_, err = f(make([]float64, 3))
		assert.True(t, errors.Is(err, errors.NotValid), name)
		_, err = f(nil)
		assert.True(t, errors.Is(err, errors.NotValid), name)
	}
}

func TestTaskPerRowRequiresOptIn(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1}, {2}}))
	require.NoError(t, err)
	sums := []float64{9, 9}
	_, err = e.TaskPerRow(context.Background(), sums)
	assert.True(t, errors.Is(err, errors.Forbidden))
	// nothing was written
	assert.Equal(t, []float64{9, 9}, sums)
}

func TestPartitionedInvalid(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1}, {2}}))
	require.NoError(t, err)
	for _, k := range []int{0, -1} {
		_, err = e.Partitioned(context.Background(), e.NewSums(), k)
		assert.True(t, errors.Is(err, errors.NotValid))
	}
}

func TestCancel(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1}, {2}, {3}}), WithUnboundedTasks(true), WithJobs(2))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.DataParallel(ctx, e.NewSums())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = e.TaskPerRow(ctx, e.NewSums())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = e.Partitioned(ctx, e.NewSums(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSIMDUnsupported(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1, 2, 3}}), WithFeature(0))
	require.NoError(t, err)
	sums := []float64{7}
	_, err = e.SIMDDouble(sums)
	assert.True(t, errors.Is(err, errors.NotSupported))
	assert.Equal(t, []float64{7}, sums)
	_, err = e.SIMDFloat()
	assert.True(t, errors.Is(err, errors.NotSupported))
}

func TestWithFeatureMasksUnsupported(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1, 2, 3}}), WithFeature(floats.AVX|floats.AVX2))
	require.NoError(t, err)
	// no instruction set beyond the detected one
	assert.Zero(t, e.Feature()&^floats.Active())
	assert.Equal(t, floats.Active()&(floats.AVX|floats.AVX2), e.Feature())
	if floats.Active().Lanes64() == 0 {
		_, err = e.SIMDDouble(e.NewSums())
		assert.True(t, errors.Is(err, errors.NotSupported))
	} else {
		mean, err := e.SIMDDouble(e.NewSums())
		assert.NoError(t, err)
		assert.Equal(t, 6.0, mean)
	}
}

func TestSIMDFloatGlobalAccumulator(t *testing.T) {
	feature := floats.Active()
	if feature.Lanes32() == 0 {
		t.Skipf("no vector kernels on %v", feature)
	}
	// ragged rows whose lengths are not multiples of the lane width
	rows := [][]float64{
		{1, 2, 3},
		{4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14},
		{15},
		{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
	}
	e, err := NewEngine(dataset.FromRows(rows))
	require.NoError(t, err)
	mean, err := e.SIMDFloat()
	require.NoError(t, err)
	// global sum 1..32 = 528 divided by 4 rows
	assert.Equal(t, 132.0, mean)

	acc := make([]float32, feature.Lanes32())
	for _, row := range e.Dataset().Float32s() {
		floats.AccumulateLanes(acc, row)
	}
	assert.Equal(t, floats.ReduceLanes(acc)/4, mean)

	baseline, err := e.Sequential(e.NewSums())
	require.NoError(t, err)
	assert.Equal(t, baseline, mean)
}

func TestSIMDDoubleRemainder(t *testing.T) {
	feature := floats.Active()
	if feature.Lanes64() == 0 {
		t.Skipf("no vector kernels on %v", feature)
	}
	rows := make([][]float64, 0, 3*feature.Lanes64())
	for n := 0; n < cap(rows); n++ {
		rows = append(rows, lo.Map(lo.Range(n), func(i, _ int) float64 { return float64(i) + 0.25 }))
	}
	e, err := NewEngine(dataset.FromRows(rows))
	require.NoError(t, err)
	sums := e.NewSums()
	mean, err := e.SIMDDouble(sums)
	require.NoError(t, err)
	for n, sum := range sums {
		assert.InDelta(t, float64(n*(n-1)/2)+0.25*float64(n), sum, 1e-9, "row length %d", n)
	}
	baseline, err := e.Sequential(e.NewSums())
	require.NoError(t, err)
	assert.InEpsilon(t, baseline, mean, vectorEpsilon)
}

func TestStrategies(t *testing.T) {
	e, err := NewEngine(dataset.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}), WithUnboundedTasks(true))
	require.NoError(t, err)
	strategies := e.Strategies([]int{2, 4})
	assert.Equal(t, []string{
		Sequential, DataParallel, TaskPerRow, "Partitioned(2)", "Partitioned(4)", SIMDDouble, SIMDFloat,
	}, lo.Map(strategies, func(s Strategy, _ int) string { return s.Name }))

	sums := e.NewSums()
	for _, s := range strategies {
		mean, err := s.Run(context.Background(), sums)
		if s.Kind == SIMDDouble || s.Kind == SIMDFloat {
			if !floats.Supported() {
				assert.True(t, errors.Is(err, errors.NotSupported), s.Name)
				continue
			}
		}
		assert.NoError(t, err, s.Name)
		assert.InEpsilon(t, 15.0, mean, vectorEpsilon, s.Name)
	}

	filtered := Filter(strategies, []string{"partitioned", "Sequential"})
	assert.Equal(t, []string{Sequential, "Partitioned(2)", "Partitioned(4)"},
		lo.Map(filtered, func(s Strategy, _ int) string { return s.Name }))
	assert.Len(t, Filter(strategies, nil), len(strategies))
	assert.Empty(t, Filter(strategies, []string{"unknown"}))
}
