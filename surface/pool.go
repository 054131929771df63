// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"runtime"
	"sync"
)

// WorkerPool is a fixed set of goroutines that execute rasterization work.
//
// One pool is shared by every offscreen surface created from a Factory, so
// concurrent manipulation calls draw through the same workers.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	work    chan func()
	wg      sync.WaitGroup

	// mu guards closed and sends on work.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer a few items per worker so submitters rarely block.
	p := &WorkerPool{
		workers: workers,
		work:    make(chan func(), workers*4),
	}

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for fn := range p.work {
		fn()
	}
}

// ExecuteAll runs every work item and waits for all of them to finish.
// After Close, the items run on the calling goroutine instead.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var done sync.WaitGroup
	done.Add(len(work))
	for _, fn := range work {
		p.work <- func() {
			defer done.Done()
			fn()
		}
	}
	p.mu.RUnlock()

	done.Wait()
}

// Close stops the workers after queued work drains.
// Close is idempotent.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.work)
	p.mu.Unlock()

	p.wg.Wait()
}
