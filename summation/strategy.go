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
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	Sequential   = "Sequential"
	DataParallel = "DataParallel"
	TaskPerRow   = "TaskPerRow"
	Partitioned  = "Partitioned"
	SIMDDouble   = "SIMDDouble"
	SIMDFloat    = "SIMDFloat"
)

// Names lists every strategy kind in reporting order.
var Names = []string{Sequential, DataParallel, TaskPerRow, Partitioned, SIMDDouble, SIMDFloat}

// Strategy is a named, runnable summation strategy bound to an engine.
type Strategy struct {
	Name string
	Kind string
	Run  func(ctx context.Context, sums []float64) (float64, error)
}

// Strategies binds every strategy kind to e. Partitioned appears once per
// entry of partitions, named "Partitioned(k)".
func (e *Engine) Strategies(partitions []int) []Strategy {
	strategies := []Strategy{
		{Name: Sequential, Kind: Sequential, Run: func(_ context.Context, sums []float64) (float64, error) {
			return e.Sequential(sums)
		}},
		{Name: DataParallel, Kind: DataParallel, Run: e.DataParallel},
		{Name: TaskPerRow, Kind: TaskPerRow, Run: e.TaskPerRow},
	}
	for _, k := range partitions {
		strategies = append(strategies, Strategy{
			Name: fmt.Sprintf("%s(%d)", Partitioned, k),
			Kind: Partitioned,
			Run: func(ctx context.Context, sums []float64) (float64, error) {
				return e.Partitioned(ctx, sums, k)
			},
		})
	}
	strategies = append(strategies,
		Strategy{Name: SIMDDouble, Kind: SIMDDouble, Run: func(_ context.Context, sums []float64) (float64, error) {
			return e.SIMDDouble(sums)
		}},
		Strategy{Name: SIMDFloat, Kind: SIMDFloat, Run: func(context.Context, []float64) (float64, error) {
			return e.SIMDFloat()
		}},
	)
	return strategies
}

// Filter keeps strategies whose kind is listed in kinds, compared without
// case. An empty kinds keeps everything.
func Filter(strategies []Strategy, kinds []string) []Strategy {
	if len(kinds) == 0 {
		return strategies
	}
	selected := mapset.NewSet[string]()
	for _, kind := range kinds {
		selected.Add(strings.ToLower(kind))
	}
	var filtered []Strategy
	for _, s := range strategies {
		if selected.Contains(strings.ToLower(s.Kind)) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
