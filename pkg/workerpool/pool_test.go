package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := New(4)
	var count atomic.Int32
	for i := 0; i < 100; i++ {
		ok := p.Submit(func() { count.Add(1) })
		assert.True(t, ok)
	}
	p.Close()
	assert.Equal(t, int32(100), count.Load())
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 3
	p := New(workers)
	var cur, peak atomic.Int32
	for i := 0; i < 50; i++ {
		p.Submit(func() {
			n := cur.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			cur.Add(-1)
		})
	}
	p.Close()
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := New(1)
	p.Close()
	assert.False(t, p.Submit(func() {}))
}

func TestPoolCloseIdempotent(t *testing.T) {
	p := New(2)
	p.Submit(func() {})
	p.Close()
	p.Close()
}

func TestPoolDefaultWorkers(t *testing.T) {
	p := New(0)
	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() { wg.Done() })
	wg.Wait()
	p.Close()
}
