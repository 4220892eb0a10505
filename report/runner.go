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

// Package report benchmarks summation strategies outside of "go test" and
// renders the results.
package report

import (
	"context"
	"flag"
	"sync"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/xinmyname/avgnumbers/common/log"
	"github.com/xinmyname/avgnumbers/summation"
	"go.uber.org/zap"
)

// Result is the outcome of one strategy. When Err is set the strategy failed,
// either on its first run or while being benchmarked, and the other fields
// are zero.
type Result struct {
	Name        string
	Kind        string
	Mean        float64
	Err         error
	N           int
	NsPerOp     int64
	BytesPerOp  int64
	AllocsPerOp int64
}

var initOnce sync.Once

// setBenchTime sets the minimum running time of testing.Benchmark.
func setBenchTime(d time.Duration) error {
	initOnce.Do(testing.Init)
	return flag.Set("test.benchtime", d.String())
}

// Run evaluates every strategy once to obtain its mean, then benchmarks the
// strategies that succeeded. A failing strategy is recorded in its result
// and does not stop the others. Run returns early with the context error
// when ctx is cancelled.
func Run(ctx context.Context, strategies []summation.Strategy, sums []float64, benchTime time.Duration) ([]Result, error) {
	if err := setBenchTime(benchTime); err != nil {
		return nil, errors.Trace(err)
	}
	results := make([]Result, 0, len(strategies))
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return results, errors.Trace(err)
		}
		result := Result{Name: s.Name, Kind: s.Kind}
		result.Mean, result.Err = s.Run(ctx, sums)
		if result.Err != nil {
			log.Logger().Warn("strategy failed", zap.String("strategy", s.Name), zap.Error(result.Err))
			results = append(results, result)
			continue
		}
		var benchErr error
		bench := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := s.Run(ctx, sums); err != nil {
					benchErr = err
					b.SkipNow()
				}
			}
		})
		if benchErr == nil && bench.N == 0 {
			benchErr = errors.Errorf("benchmark of %s did not run", s.Name)
		}
		if benchErr != nil {
			result.Mean, result.Err = 0, errors.Trace(benchErr)
			log.Logger().Warn("strategy failed", zap.String("strategy", s.Name), zap.Error(result.Err))
			results = append(results, result)
			continue
		}
		result.N = bench.N
		result.NsPerOp = bench.NsPerOp()
		result.BytesPerOp = bench.AllocedBytesPerOp()
		result.AllocsPerOp = bench.AllocsPerOp()
		log.Logger().Info("strategy benchmarked",
			zap.String("strategy", s.Name),
			zap.Float64("mean", result.Mean),
			zap.Int("n", result.N),
			zap.Duration("per_op", time.Duration(result.NsPerOp)))
		results = append(results, result)
	}
	return results, nil
}
