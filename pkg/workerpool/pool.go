// Package workerpool provides a bounded goroutine pool so large URL sets
// probe in parallel without unbounded goroutine growth.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs submitted tasks on a fixed set of worker goroutines. Workers
// start lazily on first submission.
type Pool struct {
	workers int32
	tasks   chan func()
	running int32
	closed  atomic.Bool
	wg      sync.WaitGroup
}

// New creates a pool with the given worker count. Non-positive counts fall
// back to GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		workers: int32(workers),
		tasks:   make(chan func(), workers*2),
	}
}

// Submit queues a task, spawning a worker if the pool is below capacity.
// Blocks when the queue is full. Returns false if the pool is closed.
func (p *Pool) Submit(task func()) bool {
	if p.closed.Load() {
		return false
	}
	for {
		running := atomic.LoadInt32(&p.running)
		if running >= p.workers {
			break
		}
		if atomic.CompareAndSwapInt32(&p.running, running, running+1) {
			p.wg.Add(1)
			go p.worker()
			break
		}
	}
	p.tasks <- task
	return true
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Close stops accepting tasks and waits for queued work to drain.
func (p *Pool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.tasks)
		p.wg.Wait()
	}
}
