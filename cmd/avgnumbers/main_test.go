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

package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xinmyname/avgnumbers/common/log"
	"github.com/xinmyname/avgnumbers/dataset"
)

func TestGenerateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "numbers.txt")
	rootCommand.SetArgs([]string{"generate", "--data", path, "--rows", "12", "--columns", "7", "--seed", "3"})
	require.NoError(t, rootCommand.Execute())
	log.CloseLogger()

	// flags of the previous execution stay parsed on the command
	conf, err := loadConfig(generateCommand)
	require.NoError(t, err)
	assert.Equal(t, path, conf.Data.Path)

	engine, elapsed, err := loadEngine(conf)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	assert.Equal(t, 12, engine.Dataset().CountRows())
	assert.Equal(t, 12*7, engine.Dataset().CountValues())
	assert.True(t, conf.Bench.TaskPerRow)

	data, err := dataset.LoadFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, engine.Dataset().Float64s(), data.Float64s())
}

func TestBenchFlags(t *testing.T) {
	require.NoError(t, benchCommand.ParseFlags([]string{
		"--data", "/data/numbers.txt",
		"--jobs", "3",
		"--strategies", "Sequential,Partitioned",
		"--partitions", "4,8",
		"--bench-time", "5ms",
		"--metrics-file", "/tmp/metrics.prom",
	}))
	conf, err := loadConfig(benchCommand)
	require.NoError(t, err)
	assert.Equal(t, "/data/numbers.txt", conf.Data.Path)
	assert.Equal(t, 3, conf.Bench.Jobs)
	assert.Equal(t, []string{"Sequential", "Partitioned"}, conf.Bench.Strategies)
	assert.Equal(t, []int{4, 8}, conf.Bench.Partitions)
	assert.Equal(t, 5*time.Millisecond, conf.Bench.BenchTime)
	assert.Equal(t, "/tmp/metrics.prom", conf.Report.MetricsFile)
}

func TestInvalidFlags(t *testing.T) {
	require.NoError(t, sumCommand.ParseFlags([]string{"--strategies", "Quantum"}))
	_, err := loadConfig(sumCommand)
	assert.Error(t, err)
}
