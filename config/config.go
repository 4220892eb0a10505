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

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/xinmyname/avgnumbers/summation"
)

const EnvPrefix = "AVGNUMBERS"

// Config is the configuration of the benchmark harness.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Bench  BenchConfig  `mapstructure:"bench"`
	Report ReportConfig `mapstructure:"report"`
}

type DataConfig struct {
	Path         string `mapstructure:"path" validate:"required"`
	ShowProgress bool   `mapstructure:"show_progress"`
}

type BenchConfig struct {
	Jobs       int           `mapstructure:"jobs" validate:"gte=0"`
	Partitions []int         `mapstructure:"partitions" validate:"required,dive,gte=1"`
	TaskPerRow bool          `mapstructure:"task_per_row"`
	BenchTime  time.Duration `mapstructure:"bench_time" validate:"gt=0"`
	Strategies []string      `mapstructure:"strategies" validate:"dive,strategy"`
}

type ReportConfig struct {
	MetricsFile string `mapstructure:"metrics_file"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: filepath.Join(os.TempDir(), "numbers.txt"),
		},
		Bench: BenchConfig{
			Partitions: []int{2, 4, 8, 16, 32},
			TaskPerRow: true,
			BenchTime:  time.Second,
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [data]
	v.SetDefault("data.path", defaultConfig.Data.Path)
	v.SetDefault("data.show_progress", defaultConfig.Data.ShowProgress)
	// [bench]
	v.SetDefault("bench.jobs", defaultConfig.Bench.Jobs)
	v.SetDefault("bench.partitions", defaultConfig.Bench.Partitions)
	v.SetDefault("bench.task_per_row", defaultConfig.Bench.TaskPerRow)
	v.SetDefault("bench.bench_time", defaultConfig.Bench.BenchTime)
	v.SetDefault("bench.strategies", defaultConfig.Bench.Strategies)
	// [report]
	v.SetDefault("report.metrics_file", defaultConfig.Report.MetricsFile)
}

// LoadConfig loads configuration from a TOML, YAML or JSON file. Missing keys
// take default values and every key can be overridden by an environment
// variable such as AVGNUMBERS_BENCH_JOBS. An empty path loads defaults and
// environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.NotFoundf("config file %s", path)
			}
			return nil, errors.Annotatef(err, "failed to read config file %s", path)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("mapstructure")
	})
	lo.Must0(v.RegisterValidation("strategy", func(fl validator.FieldLevel) bool {
		return lo.ContainsBy(summation.Names, func(name string) bool {
			return strings.EqualFold(name, fl.Field().String())
		})
	}))
	return v
}

// Validate checks value ranges. Violations are reported as NotValid.
func (config *Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "invalid config")
	}
	return nil
}
