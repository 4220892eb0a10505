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

package dataset

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juju/errors"
)

// GenerateConfig describes a synthetic numbers file.
type GenerateConfig struct {
	Rows    int
	Columns int
	// Ragged draws every row length from [Columns/2, Columns*3/2].
	Ragged bool
	Seed   int64
}

// Generate writes cfg.Rows lines of comma-separated random numbers in
// [0, 1000) with four fraction digits. The output is reproducible for a seed.
func Generate(w io.Writer, cfg GenerateConfig) error {
	if cfg.Rows < 1 || cfg.Columns < 1 {
		return errors.NotValidf("shape %dx%d", cfg.Rows, cfg.Columns)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	writer := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for i := 0; i < cfg.Rows; i++ {
		columns := cfg.Columns
		if cfg.Ragged {
			columns = cfg.Columns/2 + rng.Intn(cfg.Columns+1)
			if columns < 1 {
				columns = 1
			}
		}
		for j := 0; j < columns; j++ {
			if j > 0 {
				if err := writer.WriteByte(','); err != nil {
					return errors.Trace(err)
				}
			}
			buf = strconv.AppendFloat(buf[:0], rng.Float64()*1000, 'f', 4, 64)
			if _, err := writer.Write(buf); err != nil {
				return errors.Trace(err)
			}
		}
		if err := writer.WriteByte('\n'); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(writer.Flush())
}

// GenerateFile writes a synthetic numbers file to path, creating parent
// directories when needed.
func GenerateFile(path string, cfg GenerateConfig) error {
	// create parent folder if not exists
	parent := filepath.Dir(path)
	if _, err := os.Stat(parent); os.IsNotExist(err) {
		if err = os.MkdirAll(parent, os.ModePerm); err != nil {
			return errors.Trace(err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	if err = Generate(f, cfg); err != nil {
		_ = f.Close()
		return errors.Trace(err)
	}
	return errors.Trace(f.Close())
}
