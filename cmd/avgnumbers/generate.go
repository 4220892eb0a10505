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
	"time"

	"github.com/spf13/cobra"
	"github.com/xinmyname/avgnumbers/common/log"
	"github.com/xinmyname/avgnumbers/dataset"
	"go.uber.org/zap"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Write a reproducible numbers file.",
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := loadConfig(cmd)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		var cfg dataset.GenerateConfig
		cfg.Rows, _ = cmd.Flags().GetInt("rows")
		cfg.Columns, _ = cmd.Flags().GetInt("columns")
		cfg.Ragged, _ = cmd.Flags().GetBool("ragged")
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")

		start := time.Now()
		if err = dataset.GenerateFile(conf.Data.Path, cfg); err != nil {
			log.Logger().Fatal("failed to generate numbers file", zap.Error(err))
		}
		log.Logger().Info("numbers file generated",
			zap.String("path", conf.Data.Path),
			zap.Int("rows", cfg.Rows),
			zap.Int("columns", cfg.Columns),
			zap.Bool("ragged", cfg.Ragged),
			zap.Duration("elapsed", time.Since(start)))
	},
}

func init() {
	rootCommand.AddCommand(generateCommand)
	generateCommand.Flags().Int("rows", 10000, "number of rows")
	generateCommand.Flags().Int("columns", 1000, "number of values per row")
	generateCommand.Flags().Bool("ragged", false, "vary the number of values per row")
	generateCommand.Flags().Int64("seed", 0, "random seed")
}
