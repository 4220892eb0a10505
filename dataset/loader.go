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
	std_errors "errors"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/xinmyname/avgnumbers/common/util"
)

const (
	separator   = ","
	maxLineSize = 1 << 30
	byteOrder   = "\ufeff"
)

// LoadFile loads a dataset from a text file of comma-separated numbers, one
// row per line. A missing file is a NotFound error and a malformed number is
// a NotValid error; no partial dataset is returned in either case.
func LoadFile(path string, showProgress bool) (*Dataset, error) {
	// check if file exists
	info, err := os.Stat(path)
	if err != nil {
		if std_errors.Is(err, os.ErrNotExist) {
			return nil, errors.NotFoundf("numbers file %s", path)
		}
		return nil, errors.Trace(err)
	}
	// open file
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	if !showProgress {
		return Load(f)
	}
	bar := progressbar.DefaultBytes(info.Size(), "Loading "+path)
	reader := progressbar.NewReader(f, bar)
	d, err := Load(&reader)
	if err != nil {
		return nil, errors.Trace(err)
	}
	_ = bar.Finish()
	return d, nil
}

// Load parses rows of comma-separated numbers from r. Every number must be
// parsable in both double and single precision.
func Load(r io.Reader) (*Dataset, error) {
	var (
		float64s [][]float64
		float32s [][]float32
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if lineNumber == 1 {
			line = strings.TrimPrefix(line, byteOrder)
		}
		fields := strings.Split(line, separator)
		row64 := make([]float64, len(fields))
		row32 := make([]float32, len(fields))
		for i, field := range fields {
			var err error
			if row64[i], err = util.ParseFloat[float64](field); err != nil {
				return nil, errors.NotValidf("line %d column %d value %q", lineNumber, i+1, field)
			}
			if row32[i], err = util.ParseFloat[float32](field); err != nil {
				return nil, errors.NotValidf("line %d column %d value %q as float32", lineNumber, i+1, field)
			}
		}
		float64s = append(float64s, row64)
		float32s = append(float32s, row32)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	if len(float64s) == 0 {
		return nil, errors.NotValidf("empty numbers file")
	}
	return NewDataset(float64s, float32s)
}
