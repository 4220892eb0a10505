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

package report

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/juju/errors"
	"github.com/klauspost/cpuid/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/xinmyname/avgnumbers/common/floats"
	"github.com/xinmyname/avgnumbers/dataset"
)

// WriteHeader prints the processor, the vector instruction set in use and
// the shape of the dataset. Kernels turned off on a capable processor are
// reported as disabled.
func WriteHeader(w io.Writer, feature floats.Feature, data *dataset.Dataset) error {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = runtime.GOARCH
	}
	lines := []string{
		fmt.Sprintf("CPU          : %s", brand),
		fmt.Sprintf("Cores        : %d logical, %d physical", cpuid.CPU.LogicalCores, cpuid.CPU.PhysicalCores),
		fmt.Sprintf("GOMAXPROCS   : %d", runtime.GOMAXPROCS(0)),
		fmt.Sprintf("SIMD         : %v (float64 x %d, float32 x %d)", feature, feature.Lanes64(), feature.Lanes32()),
	}
	if feature.Lanes64() == 0 {
		if floats.Supported() {
			lines[3] += " disabled"
		} else {
			lines[3] += " unavailable"
		}
	}
	if data != nil {
		lines = append(lines, fmt.Sprintf("Dataset      : %d rows, %d values", data.CountRows(), data.CountValues()))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// WriteTable renders benchmark results as a table.
func WriteTable(w io.Writer, results []Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Strategy", "Mean", "ns/op", "B/op", "allocs/op", "Error")
	for _, r := range results {
		row := []string{r.Name, "", "", "", "", ""}
		if r.Err != nil {
			row[5] = r.Err.Error()
		} else {
			row[1] = strconv.FormatFloat(r.Mean, 'f', 6, 64)
			row[2] = strconv.FormatInt(r.NsPerOp, 10)
			row[3] = strconv.FormatInt(r.BytesPerOp, 10)
			row[4] = strconv.FormatInt(r.AllocsPerOp, 10)
		}
		if err := table.Append(row); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

// WriteMeans prints one line per result in the form "Name : mean".
func WriteMeans(w io.Writer, results []Result) error {
	for _, r := range results {
		var err error
		if r.Err != nil {
			_, err = fmt.Fprintf(w, "%-16s: %v\n", r.Name, r.Err)
		} else {
			_, err = fmt.Fprintf(w, "%-16s: %v\n", r.Name, r.Mean)
		}
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
