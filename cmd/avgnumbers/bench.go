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
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/xinmyname/avgnumbers/common/log"
	"github.com/xinmyname/avgnumbers/report"
	"github.com/xinmyname/avgnumbers/summation"
	"go.uber.org/zap"
)

var benchCommand = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark every strategy and print a report.",
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := loadConfig(cmd)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		engine, elapsed, err := loadEngine(conf)
		if err != nil {
			log.Logger().Fatal("failed to load numbers file", zap.Error(err))
		}
		if err = report.WriteHeader(os.Stdout, engine.Feature(), engine.Dataset()); err != nil {
			log.Logger().Fatal("failed to print header", zap.Error(err))
		}
		fmt.Printf("File read time : %d ms\n", elapsed.Milliseconds())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		strategies := summation.Filter(engine.Strategies(conf.Bench.Partitions), conf.Bench.Strategies)
		results, err := report.Run(ctx, strategies, engine.NewSums(), conf.Bench.BenchTime)
		if err != nil {
			log.Logger().Error("benchmark interrupted", zap.Error(err))
		}
		if err = report.WriteMeans(os.Stdout, results); err != nil {
			log.Logger().Fatal("failed to print means", zap.Error(err))
		}
		if err = report.WriteTable(os.Stdout, results); err != nil {
			log.Logger().Fatal("failed to print report", zap.Error(err))
		}

		if conf.Report.MetricsFile != "" {
			metrics := report.NewMetrics()
			metrics.ObserveLoad(elapsed, engine.Dataset().CountRows())
			metrics.Observe(results)
			if err = metrics.WriteFile(conf.Report.MetricsFile); err != nil {
				log.Logger().Fatal("failed to write metrics", zap.Error(err))
			}
			log.Logger().Info("metrics written", zap.String("path", conf.Report.MetricsFile))
		}
	},
}

func init() {
	rootCommand.AddCommand(benchCommand)
	benchCommand.Flags().IntSlice("partitions", nil, "partition counts of Partitioned (overrides bench.partitions)")
	benchCommand.Flags().Duration("bench-time", 0, "minimum running time of every strategy (overrides bench.bench_time)")
	benchCommand.Flags().String("metrics-file", "", "write Prometheus metrics to this file (overrides report.metrics_file)")
}
