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

// Package summation computes the mean of per-row sums of a dataset with
// interchangeable execution strategies.
//
// Every strategy takes a caller-owned scratch slice with one slot per row,
// zeroes it, fills slot i with the sum of row i and returns the mean of the
// slots. Parallel strategies give each row index to exactly one goroutine,
// so the scratch slice needs no locking.
package summation

import (
	"context"
	"runtime"

	"github.com/juju/errors"
	"github.com/xinmyname/avgnumbers/common/floats"
	"github.com/xinmyname/avgnumbers/common/parallel"
	"github.com/xinmyname/avgnumbers/dataset"
	"gonum.org/v1/gonum/stat"
)

// Engine runs summation strategies over an immutable dataset. It is safe for
// concurrent use as long as concurrent calls use distinct scratch slices.
type Engine struct {
	data           *dataset.Dataset
	jobs           int
	unboundedTasks bool
	feature        floats.Feature
}

// Option configures an Engine created by NewEngine.
type Option func(*Engine)

// WithJobs sets the number of workers of DataParallel. Values below one
// select runtime.GOMAXPROCS(0).
func WithJobs(jobs int) Option {
	return func(e *Engine) {
		if jobs < 1 {
			jobs = runtime.GOMAXPROCS(0)
		}
		e.jobs = jobs
	}
}

// WithUnboundedTasks enables TaskPerRow, which starts one goroutine per row.
func WithUnboundedTasks(enable bool) Option {
	return func(e *Engine) {
		e.unboundedTasks = enable
	}
}

// WithFeature restricts the vector instruction set to feature. Features the
// processor lacks are masked out, so the option can only disable kernels. A
// zero feature disables the SIMD strategies.
func WithFeature(feature floats.Feature) Option {
	return func(e *Engine) {
		e.feature = feature & floats.Active()
	}
}

// NewEngine creates an engine over a dataset with at least one row.
func NewEngine(data *dataset.Dataset, opts ...Option) (*Engine, error) {
	if data == nil || data.CountRows() == 0 {
		return nil, errors.NotValidf("empty dataset")
	}
	e := &Engine{
		data:    data,
		jobs:    runtime.GOMAXPROCS(0),
		feature: floats.Active(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewSums allocates a scratch slice for this engine.
func (e *Engine) NewSums() []float64 {
	return make([]float64, e.data.CountRows())
}

func (e *Engine) Dataset() *dataset.Dataset {
	return e.data
}

func (e *Engine) Jobs() int {
	return e.jobs
}

func (e *Engine) Feature() floats.Feature {
	return e.feature
}

// Sequential sums rows one after another on the calling goroutine. It is the
// baseline every other strategy is compared with.
func (e *Engine) Sequential(sums []float64) (float64, error) {
	if err := e.reset(sums); err != nil {
		return 0, errors.Trace(err)
	}
	pool := parallel.NewSequentialPool()
	e.sumRanges(context.Background(), pool, []parallel.Range{{Begin: 0, End: len(sums)}}, sums)
	if err := pool.Wait(); err != nil {
		return 0, errors.Trace(err)
	}
	return mean(sums), nil
}

// DataParallel distributes rows over a fixed set of workers that pull row
// indices from a shared queue.
func (e *Engine) DataParallel(ctx context.Context, sums []float64) (float64, error) {
	if err := e.reset(sums); err != nil {
		return 0, errors.Trace(err)
	}
	err := parallel.Parallel(ctx, len(sums), e.jobs, func(_, i int) error {
		sums[i] = floats.Sum(e.data.Float64Row(i))
		return nil
	})
	if err != nil {
		return 0, errors.Trace(err)
	}
	return mean(sums), nil
}

// TaskPerRow starts one goroutine per row and waits for all of them. It must
// be enabled with WithUnboundedTasks since the number of goroutines grows
// with the dataset.
func (e *Engine) TaskPerRow(ctx context.Context, sums []float64) (float64, error) {
	if !e.unboundedTasks {
		return 0, errors.Forbiddenf("one task per row without WithUnboundedTasks")
	}
	if err := e.reset(sums); err != nil {
		return 0, errors.Trace(err)
	}
	pool := parallel.NewInfinitePool()
	e.sumRanges(ctx, pool, parallel.Ranges(len(sums), len(sums)), sums)
	if err := pool.Wait(); err != nil {
		return 0, errors.Trace(err)
	}
	return mean(sums), nil
}

// Partitioned splits the rows into k contiguous partitions and sums each
// partition in its own goroutine. k may exceed the row count, in which case
// some partitions are empty.
func (e *Engine) Partitioned(ctx context.Context, sums []float64, k int) (float64, error) {
	if k < 1 {
		return 0, errors.NotValidf("number of partitions %d", k)
	}
	if err := e.reset(sums); err != nil {
		return 0, errors.Trace(err)
	}
	pool := parallel.NewInfinitePool()
	e.sumRanges(ctx, pool, parallel.Ranges(len(sums), k), sums)
	if err := pool.Wait(); err != nil {
		return 0, errors.Trace(err)
	}
	return mean(sums), nil
}

// SIMDDouble sums each row one vector register at a time, reducing every
// register horizontally into the row sum. Trailing values that do not fill a
// register are added one by one. It fails with NotSupported when there is no
// vector instruction set.
func (e *Engine) SIMDDouble(sums []float64) (float64, error) {
	if e.feature.Lanes64() == 0 {
		return 0, errors.NotSupportedf("SIMD on %v", e.feature)
	}
	if err := e.reset(sums); err != nil {
		return 0, errors.Trace(err)
	}
	for i := range sums {
		sums[i] = e.feature.SumFloat64(e.data.Float64Row(i))
	}
	return mean(sums), nil
}

// SIMDFloat adds the single precision values of all rows into one shared
// vector accumulator, reduces it once and divides by the number of rows.
// No per-row sums are produced. Mathematically this equals the mean of row
// sums for any row lengths; it differs from the other strategies only by
// single precision rounding. It fails with NotSupported when there is no
// vector instruction set.
func (e *Engine) SIMDFloat() (float64, error) {
	lanes := e.feature.Lanes32()
	if lanes == 0 {
		return 0, errors.NotSupportedf("SIMD on %v", e.feature)
	}
	acc := make([]float32, lanes)
	for _, row := range e.data.Float32s() {
		e.feature.AccumulateFloat32(acc, row)
	}
	return floats.ReduceLanes(acc) / float64(e.data.CountRows()), nil
}

func (e *Engine) sumRanges(ctx context.Context, pool parallel.Pool, ranges []parallel.Range, sums []float64) {
	for _, r := range ranges {
		pool.Run(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := r.Begin; i < r.End; i++ {
				sums[i] = floats.Sum(e.data.Float64Row(i))
			}
			return nil
		})
	}
}

func (e *Engine) reset(sums []float64) error {
	if len(sums) != e.data.CountRows() {
		return errors.NotValidf("scratch length %d for %d rows", len(sums), e.data.CountRows())
	}
	clear(sums)
	return nil
}

func mean(sums []float64) float64 {
	return stat.Mean(sums, nil)
}
