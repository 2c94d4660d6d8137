// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package job runs a task at a fixed interval without overlapping runs.
package job

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type Job struct {
	interval time.Duration
	task     func(context.Context)

	running atomic.Bool
	wg      sync.WaitGroup
	skipped atomic.Int64
}

func New(interval time.Duration, task func(context.Context)) *Job {
	return &Job{
		interval: interval,
		task:     task,
	}
}

// Start runs the task on every tick until ctx is done. A tick that fires while the previous
// run is still in progress is skipped. Start returns once ctx is done and the last run has
// finished.
func (j *Job) Start(ctx context.Context) {
	if j.task == nil || j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	defer j.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !j.running.CompareAndSwap(false, true) {
				j.skipped.Add(1)
				continue
			}
			j.wg.Add(1)
			go func() {
				defer j.wg.Done()
				defer j.running.Store(false)
				j.task(ctx)
			}()
		}
	}
}

// Skipped returns the number of ticks that were skipped because of a run still in progress.
func (j *Job) Skipped() int64 {
	return j.skipped.Load()
}
