//go:build noasm || !amd64

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

package floats

import (
	"runtime"
	"strings"
)

type Feature uint64

const (
	AVX Feature = 1 << iota
	AVX2
)

var feature = applyOverride(0)

func (feature Feature) String() string {
	return strings.ToUpper(runtime.GOARCH)
}

func (feature Feature) Lanes64() int {
	return 0
}

func (feature Feature) Lanes32() int {
	return 0
}

func (feature Feature) SumFloat64(x []float64) float64 {
	return SumChunks(x, 1)
}

func (feature Feature) AccumulateFloat32(acc, x []float32) {
	AccumulateLanes(acc, x)
}
