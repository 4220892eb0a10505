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
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/xinmyname/avgnumbers/cmd/version"
	"github.com/xinmyname/avgnumbers/common/log"
	"github.com/xinmyname/avgnumbers/config"
	"github.com/xinmyname/avgnumbers/dataset"
	"github.com/xinmyname/avgnumbers/summation"
	"go.uber.org/zap"
)

var rootCommand = &cobra.Command{
	Use:   "avgnumbers",
	Short: "Benchmark strategies for averaging row sums of a numbers file.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(cmd.Flags(), debug)
	},
	SilenceUsage: true,
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show the version of avgnumbers.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(version.BuildInfo())
	},
}

func init() {
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().String("data", "", "path of the numbers file (overrides data.path)")
	rootCommand.PersistentFlags().Bool("progress", false, "show a progress bar while loading (overrides data.show_progress)")
	rootCommand.PersistentFlags().IntP("jobs", "j", 0, "number of workers of DataParallel, 0 for GOMAXPROCS (overrides bench.jobs)")
	rootCommand.PersistentFlags().StringSlice("strategies", nil, "strategies to run, all if empty (overrides bench.strategies)")
	rootCommand.AddCommand(versionCommand)
}

// loadConfig loads the configuration file and applies command line
// overrides on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		conf.Data.Path, _ = flags.GetString("data")
	}
	if flags.Changed("progress") {
		conf.Data.ShowProgress, _ = flags.GetBool("progress")
	}
	if flags.Changed("jobs") {
		conf.Bench.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("strategies") {
		conf.Bench.Strategies, _ = flags.GetStringSlice("strategies")
	}
	if flags.Lookup("partitions") != nil && flags.Changed("partitions") {
		conf.Bench.Partitions, _ = flags.GetIntSlice("partitions")
	}
	if flags.Lookup("bench-time") != nil && flags.Changed("bench-time") {
		conf.Bench.BenchTime, _ = flags.GetDuration("bench-time")
	}
	if flags.Lookup("metrics-file") != nil && flags.Changed("metrics-file") {
		conf.Report.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if err = conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return conf, nil
}

// loadEngine reads the numbers file and creates a summation engine over it.
func loadEngine(conf *config.Config) (*summation.Engine, time.Duration, error) {
	log.Logger().Info("load numbers file", zap.String("path", conf.Data.Path))
	start := time.Now()
	data, err := dataset.LoadFile(conf.Data.Path, conf.Data.ShowProgress)
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	elapsed := time.Since(start)
	log.Logger().Info("numbers file loaded",
		zap.Int("rows", data.CountRows()),
		zap.Int("values", data.CountValues()),
		zap.Duration("elapsed", elapsed))
	engine, err := summation.NewEngine(data,
		summation.WithJobs(conf.Bench.Jobs),
		summation.WithUnboundedTasks(conf.Bench.TaskPerRow))
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	return engine, elapsed, nil
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
