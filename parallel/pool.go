// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	Job      func()
	DoFunc   func(Job)
	WaitFunc func()
)

// Pool feeds jobs to its workers. With a single worker jobs run inline on
// the caller's goroutine, in submission order.
//
// Do must not be called after Wait.
type Pool struct {
	wg      sync.WaitGroup
	workers int

	Do   DoFunc
	Wait WaitFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(job Job) {
			job()
		},
		Wait: func() {},
	}

	if numWorkers > 1 {
		jobs := make(chan Job, numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for job := range jobs {
					job()
				}
			})
		}

		pool.Do = func(job Job) {
			jobs <- job
		}

		closeJobs := sync.OnceFunc(func() { close(jobs) })
		pool.Wait = func() {
			closeJobs()
			pool.wg.Wait()
		}
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Range submits fn(i) for every i in [0, n) and waits for all of them.
func (p *Pool) Range(n int, fn func(i int)) {
	for i := range n {
		p.Do(func() { fn(i) })
	}
	p.Wait()
}
