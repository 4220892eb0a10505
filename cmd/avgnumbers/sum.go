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

// sumPartitions is the partition count used when printing means.
const sumPartitions = 16

var sumCommand = &cobra.Command{
	Use:   "sum",
	Short: "Print the load time and the mean computed by every strategy.",
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := loadConfig(cmd)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		engine, elapsed, err := loadEngine(conf)
		if err != nil {
			log.Logger().Fatal("failed to load numbers file", zap.Error(err))
		}
		fmt.Printf("File read time : %d ms\n", elapsed.Milliseconds())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		sums := engine.NewSums()
		strategies := summation.Filter(engine.Strategies([]int{sumPartitions}), conf.Bench.Strategies)
		results := make([]report.Result, 0, len(strategies))
		for _, s := range strategies {
			r := report.Result{Name: s.Name, Kind: s.Kind}
			r.Mean, r.Err = s.Run(ctx, sums)
			results = append(results, r)
		}
		if err = report.WriteMeans(os.Stdout, results); err != nil {
			log.Logger().Fatal("failed to print means", zap.Error(err))
		}
	},
}

func init() {
	rootCommand.AddCommand(sumCommand)
}
