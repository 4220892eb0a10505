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

package parallel

import (
	"github.com/juju/errors"
	"github.com/xinmyname/avgnumbers/common/util"
	"golang.org/x/sync/errgroup"
)

// Pool runs tasks and joins them. Wait returns the first error returned (or
// panic raised) by any task.
type Pool interface {
	Run(task func() error)
	Wait() error
}

// SequentialPool runs every task on the calling goroutine. Tasks submitted
// after a failure are skipped.
type SequentialPool struct {
	err error
}

func NewSequentialPool() *SequentialPool {
	return &SequentialPool{}
}

func (p *SequentialPool) Run(task func() error) {
	if p.err == nil {
		p.err = runTask(task)
	}
}

func (p *SequentialPool) Wait() error {
	return errors.Trace(p.err)
}

// InfinitePool starts a goroutine for every task, without any bound.
type InfinitePool struct {
	group errgroup.Group
}

func NewInfinitePool() *InfinitePool {
	return &InfinitePool{}
}

func (p *InfinitePool) Run(task func() error) {
	p.group.Go(func() error {
		return runTask(task)
	})
}

func (p *InfinitePool) Wait() error {
	return errors.Trace(p.group.Wait())
}

func runTask(task func() error) (err error) {
	defer util.RecoverError(&err)
	return task()
}
