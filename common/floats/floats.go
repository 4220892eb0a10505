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

// Package floats provides vectorized kernels for summing rows of floats.
//
// The active instruction set is detected once at startup. Kernels are only
// vectorized when Active().Lanes64() > 0; callers are expected to check that
// before relying on a vector path. Build with -tags noasm to disable all
// assembly.
package floats

import (
	"os"
	"strings"
)

const simdEnv = "AVGNUMBERS_SIMD"

// Active returns the detected feature set, honoring the AVGNUMBERS_SIMD
// override. Setting AVGNUMBERS_SIMD=off disables vector kernels.
func Active() Feature {
	return feature
}

// Supported reports whether the active feature set has vector kernels.
func Supported() bool {
	return feature.Lanes64() > 0
}

func applyOverride(detected Feature) Feature {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(simdEnv))) {
	case "off", "none", "generic", "0", "false":
		return 0
	default:
		return detected
	}
}

// SumChunks sums x in chunks of lanes elements. Each chunk is reduced to a
// scalar before it is added to the running sum. Elements past the last full
// chunk are added one by one.
func SumChunks(x []float64, lanes int) (sum float64) {
	if lanes <= 0 {
		panic("floats: lane width must be positive")
	}
	n := len(x) - len(x)%lanes
	for i := 0; i < n; i += lanes {
		var chunk float64
		for _, v := range x[i : i+lanes] {
			chunk += v
		}
		sum += chunk
	}
	for _, v := range x[n:] {
		sum += v
	}
	return
}

// AccumulateLanes adds x into acc lane by lane: x[i] goes to acc[i%len(acc)].
func AccumulateLanes(acc, x []float32) {
	lanes := len(acc)
	if lanes == 0 {
		panic("floats: lane width must be positive")
	}
	n := len(x) - len(x)%lanes
	for i := 0; i < n; i += lanes {
		chunk := x[i : i+lanes]
		for j := range acc {
			acc[j] += chunk[j]
		}
	}
	for j, v := range x[n:] {
		acc[j] += v
	}
}

// ReduceLanes sums the lanes of an accumulator in double precision.
func ReduceLanes(acc []float32) (sum float64) {
	for _, v := range acc {
		sum += float64(v)
	}
	return
}

// Sum adds up x from left to right.
func Sum(x []float64) (sum float64) {
	for _, v := range x {
		sum += v
	}
	return
}
