package parallel

import (
	"runtime"
	"sync/atomic"
)

// sentinel marks a worker's binsReady slot as "not yet published" for the
// current flush cycle.
const sentinel = -1

// Barrier is the lock-free two-phase flush barrier the binning layer
// synchronizes bin production against bin consumption on. It uses a
// single atomic counter that advances monotonically from 0 up to 2N
// across one flush cycle: each of the N workers increments it once to
// announce readiness (phase 1) and once more after rasterizing every
// worker's bins (phase 2). The worker whose phase-2 increment lands on
// 2N is the "last writer": it resets everything for the next cycle.
// No mutex is used; every draw enters this barrier at least once, so it
// sits squarely in the hot path.
type Barrier struct {
	n              int
	fragProcessors atomic.Int64
	binsReady      []atomic.Int32
}

// NewBarrier creates a flush barrier for n cooperating workers.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n, binsReady: make([]atomic.Int32, n)}
	for i := range b.binsReady {
		b.binsReady[i].Store(sentinel)
	}
	return b
}

// Announce is phase 1: worker id increments the shared counter (this
// value doubles as a tile/generation id usable for stable ordering of
// blended draws) and publishes its own id into binsReady[id] with a
// release store, so other workers' acquire loads in WaitReady observe a
// fully-written bin array.
func (b *Barrier) Announce(id int) (flushID int64) {
	flushID = b.fragProcessors.Add(1)
	b.binsReady[id].Store(int32(id))
	return flushID
}

// WaitReady spin-waits until worker id has published readiness for the
// current cycle, using runtime.Gosched as the architecture-neutral
// stand-in for a hardware pause hint: an observed sentinel means the
// producer hasn't reached its flush yet, and the monotonically advancing
// fragProcessors counter guarantees it eventually will, so this cannot
// deadlock.
func (b *Barrier) WaitReady(id int) {
	for b.binsReady[id].Load() == sentinel {
		runtime.Gosched()
	}
}

// Leave is phase 2: worker id increments the shared counter again after
// rasterizing every worker's bins. The counter takes on 2N values per
// cycle (N announces, then N leaves); the increment that lands on the
// 2N-th value is the last one, and the caller making it is the last
// writer: onLastWriter (if non-nil) runs synchronously before the cycle
// resets (binsReady back to sentinel, counter back to 0), so callers that
// need to clear shared state between cycles (e.g. the binning layer
// zeroing bin occupancy counts) can do so with the guarantee that every
// other worker is still blocked in its own Leave call and cannot observe
// the reset, let alone start producing the next cycle's bins, until
// onLastWriter has returned.
func (b *Barrier) Leave(id int, onLastWriter func()) (isLastWriter bool) {
	final := b.fragProcessors.Add(1)
	if final == int64(2*b.n) {
		if onLastWriter != nil {
			onLastWriter()
		}
		for i := range b.binsReady {
			b.binsReady[i].Store(sentinel)
		}
		b.fragProcessors.Store(0)
		return true
	}
	for b.fragProcessors.Load() >= int64(b.n) {
		runtime.Gosched()
	}
	return false
}

// N returns the number of cooperating workers this barrier was built for.
func (b *Barrier) N() int { return b.n }
