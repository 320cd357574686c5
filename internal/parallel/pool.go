// Package parallel implements the fixed-size worker pool a draw call fans
// out over, and the lock-free flush barrier the binning layer synchronizes
// on. Adapted from the teacher corpus's WorkerPool (internal/parallel in
// the reference pack), simplified from a generic steal-queue pool into the
// fork-join shape the rasterization pipeline needs: N deterministic
// per-worker tasks, dispatched and joined once per draw, with the calling
// goroutine itself running one of the N tasks.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs a fixed number of worker tasks per draw call. Unlike a
// persistent goroutine pool, Pool spawns exactly N-1 goroutines per Run
// call and executes task 0 on the calling goroutine, then joins. This
// matches the scheduling model's "the calling thread participates as one
// of the workers" contract and avoids keeping idle goroutines alive
// between draws.
type Pool struct {
	n int
}

// NewPool returns a Pool sized to run n worker tasks per Run call. If n is
// <= 0, GOMAXPROCS is used. A positive n is kept as given, even above
// GOMAXPROCS: neither Pool nor its callers (Context.SetThreads,
// WithThreads) clamp it.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &Pool{n: n}
}

// N returns the configured worker count.
func (p *Pool) N() int { return p.n }

// SetN changes the worker count for subsequent Run calls. Safe to call
// between draws, never concurrently with a Run.
func (p *Pool) SetN(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p.n = n
}

// Run invokes task(workerID) once for each workerID in [0, N), running
// workerID 0 on the calling goroutine and the rest on dedicated goroutines,
// then blocks until all have returned.
func (p *Pool) Run(task func(workerID int)) {
	if p.n <= 1 {
		task(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(p.n - 1)
	for id := 1; id < p.n; id++ {
		workerID := id
		go func() {
			defer wg.Done()
			task(workerID)
		}()
	}
	task(0)
	wg.Wait()
}
