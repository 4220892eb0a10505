//go:build !noasm

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
	"strings"

	"golang.org/x/sys/cpu"
)

type Feature uint64

const (
	AVX Feature = 1 << iota
	AVX2
)

var feature Feature

func init() {
	var detected Feature
	if cpu.X86.HasAVX {
		detected = detected | AVX
	}
	if cpu.X86.HasAVX2 {
		detected = detected | AVX2
	}
	feature = applyOverride(detected)
}

func (feature Feature) String() string {
	var features []string
	if feature&AVX2 == AVX2 {
		features = append(features, "AVX2")
	} else if feature&AVX == AVX {
		features = append(features, "AVX")
	}
	if len(features) == 0 {
		return "AMD64"
	}
	return strings.Join(features, "+")
}

// Lanes64 returns the number of float64 lanes in a vector register, or zero
// when no vector kernel is available.
func (feature Feature) Lanes64() int {
	if feature&AVX2 == AVX2 {
		return 4
	}
	return 0
}

// Lanes32 returns the number of float32 lanes in a vector register, or zero
// when no vector kernel is available.
func (feature Feature) Lanes32() int {
	if feature&AVX2 == AVX2 {
		return 8
	}
	return 0
}

// SumFloat64 sums x one vector at a time, reducing every vector horizontally
// before adding it to the result. The tail is summed with scalar adds.
func (feature Feature) SumFloat64(x []float64) float64 {
	if feature&AVX2 == AVX2 {
		n := len(x) - len(x)%4
		var sum float64
		if n > 0 {
			sum = _mm256_sum_chunks_pd(x[:n])
		}
		for _, v := range x[n:] {
			sum += v
		}
		return sum
	}
	return SumChunks(x, 1)
}

// AccumulateFloat32 adds x into the vector accumulator acc, whose length
// must equal Lanes32.
func (feature Feature) AccumulateFloat32(acc, x []float32) {
	if feature&AVX2 == AVX2 {
		if len(acc) != 8 {
			panic("floats: slice lengths do not match")
		}
		n := len(x) - len(x)%8
		if n > 0 {
			_mm256_accumulate_ps((*[8]float32)(acc), x[:n])
		}
		for j, v := range x[n:] {
			acc[j] += v
		}
		return
	}
	AccumulateLanes(acc, x)
}

//go:noescape
func _mm256_sum_chunks_pd(x []float64) float64

//go:noescape
func _mm256_accumulate_ps(acc *[8]float32, x []float32)
