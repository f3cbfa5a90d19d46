// Package parallel provides a small fixed-size worker pool for fanning
// independent tasks out across CPUs. With a single worker it degenerates
// to running tasks inline, so callers never need a separate serial path.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	close sync.Once
}

// Start launches a pool with the given number of workers. Zero or a
// negative count means one worker per available CPU. A pool with one
// worker runs tasks synchronously on the submitting goroutine.
func Start(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{}
	if workers == 1 {
		return p
	}

	p.tasks = make(chan func(), workers)
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range p.tasks {
				f()
			}
		}()
	}

	return p
}

// Do submits a task. On a single-worker pool the task runs before Do
// returns; otherwise it runs on some worker goroutine.
func (p *Pool) Do(f func()) {
	if p.tasks == nil {
		f()
		return
	}
	p.tasks <- f
}

// Wait closes the pool to new tasks and blocks until every submitted task
// has finished. Wait may be called more than once.
func (p *Pool) Wait() {
	if p.tasks == nil {
		return
	}
	p.close.Do(func() { close(p.tasks) })
	p.wg.Wait()
}
