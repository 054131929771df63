// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolExecuteAll(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	if p.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", p.Workers())
	}

	var n atomic.Int32
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { n.Add(1) }
	}
	p.ExecuteAll(work)

	if got := n.Load(); got != 100 {
		t.Errorf("executed %d items, want 100", got)
	}
}

func TestWorkerPoolConcurrentCallers(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	var n atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 10)
			for i := range work {
				work[i] = func() { n.Add(1) }
			}
			p.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if got := n.Load(); got != 80 {
		t.Errorf("executed %d items, want 80", got)
	}
}

func TestWorkerPoolAfterClose(t *testing.T) {
	p := NewWorkerPool(0)
	p.Close()
	p.Close()

	ran := false
	p.ExecuteAll([]func(){func() { ran = true }})
	if !ran {
		t.Error("work should run inline after Close")
	}
}
