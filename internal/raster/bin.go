package raster

import (
	"math"

	"github.com/Kim-Du-Yeon/SoftLight/internal/parallel"
)

// Rasterizer is the consumer side of the binning layer, implemented by the
// fragment processor: RasterizeBin is invoked once per drained primitive,
// with tileID identifying which worker is currently draining (the
// fragment processor uses it to restrict itself to scan-lines
// y mod N == tileID).
type Rasterizer interface {
	RasterizeBin(tileID int, b Bin)
}

// workerBinArray is one worker's fixed-capacity bin array plus its
// occupancy count, reused across flush cycles within a draw.
type workerBinArray struct {
	prims [MaxBinnedPrims]Bin
	count int
}

// minDepth returns the minimum screen-space z across a bin's live
// vertices.
func (b *Bin) minDepth() float32 {
	z := b.Pos[0].Z
	for i := 1; i < b.NumVerts; i++ {
		if b.Pos[i].Z < z {
			z = b.Pos[i].Z
		}
	}
	return z
}

// minDepthOrMax returns the array's minimum bin depth, or MaxFloat32 when
// empty. An empty array drains no bins, so wherever that value sorts it
// has no effect on the rasterized order.
func (arr *workerBinArray) minDepthOrMax() float32 {
	if arr.count == 0 {
		return math.MaxFloat32
	}
	min := arr.prims[0].minDepth()
	for i := 1; i < arr.count; i++ {
		if d := arr.prims[i].minDepth(); d < min {
			min = d
		}
	}
	return min
}

// BinSet is the shared binning layer state for one draw call: one
// fixed-capacity bin array per worker, guarded by the lock-free two-phase
// flush barrier every worker's vertex stage and fragment stage cooperate
// through.
type BinSet struct {
	barrier   *parallel.Barrier
	arrays    []workerBinArray
	blend     bool
	reversedZ bool
}

// NewBinSet allocates a binning layer for n cooperating workers.
//
// blend selects ordering: false rasterizes each drain in production order
// (the depth test alone resolves visibility); true sorts the N workers'
// bin arrays back-to-front by minimum depth before draining, per the
// draw's blend mode. reversedZ flips what "back" means: under the normal
// convention the farthest primitive has the largest z, under reversed-Z
// it has the smallest.
func NewBinSet(n int, blend, reversedZ bool) *BinSet {
	return &BinSet{
		barrier:   parallel.NewBarrier(n),
		arrays:    make([]workerBinArray, n),
		blend:     blend,
		reversedZ: reversedZ,
	}
}

// Binner returns the handle worker id uses to emit and flush primitives
// against this set, draining through ras.
func (s *BinSet) Binner(id int, ras Rasterizer) *WorkerBinner {
	return &WorkerBinner{set: s, id: id, ras: ras}
}

// WorkerBinner is the per-worker producer/consumer handle into a BinSet.
// Emit is the producer side (called from the vertex stage); Flush and
// Finish are the consumer side (called from the fragment stage, or by
// Emit itself on overflow).
type WorkerBinner struct {
	set *BinSet
	id  int
	ras Rasterizer
}

// Emit implements Emitter: appends b to this worker's bin array, flushing
// first if the array is already at MaxBinnedPrims capacity.
func (w *WorkerBinner) Emit(b Bin) {
	arr := &w.set.arrays[w.id]
	if arr.count >= MaxBinnedPrims {
		w.Flush()
		arr = &w.set.arrays[w.id]
	}
	arr.prims[arr.count] = b
	arr.count++
}

// Flush runs one full two-phase barrier cycle: announce this worker's
// readiness, wait for every worker to publish readiness, drain all N
// workers' bins in the agreed order, then leave. The last worker to leave
// resets every array's occupancy count for the next cycle before any
// worker can observe the cycle as complete and resume producing.
func (w *WorkerBinner) Flush() {
	b := w.set.barrier
	b.Announce(w.id)

	for _, id := range w.drainOrder(b) {
		arr := &w.set.arrays[id]
		for i := 0; i < arr.count; i++ {
			w.ras.RasterizeBin(w.id, arr.prims[i])
		}
	}

	b.Leave(w.id, func() {
		for i := range w.set.arrays {
			w.set.arrays[i].count = 0
		}
	})
}

// Finish flushes whatever this worker has pending at end-of-stream. Every
// worker must call Finish exactly once per draw, even if it emitted
// nothing, so all N workers reach the same barrier cadence.
func (w *WorkerBinner) Finish() {
	w.Flush()
}

// drainOrder waits for every worker's bins to be published, then returns
// the worker ids to drain from, in the order to drain them.
//
// Unordered draws visit this worker's own bins first (an arbitrary but
// deterministic choice — correctness does not depend on it): the id order
// with this worker's id swapped into the first slot, so worker 0 takes
// this worker's former position. Ordered (blended) draws instead compute every worker's
// minimum bin depth and sort by it: since sorting is a pure function of
// already-published bin contents, every worker independently recomputes
// the identical sequence without further coordination, and no bin is ever
// moved between arrays — only the drain order differs per worker (though
// in practice it is the same for all of them on a given cycle).
func (w *WorkerBinner) drainOrder(b *parallel.Barrier) []int {
	n := len(w.set.arrays)
	for id := 0; id < n; id++ {
		b.WaitReady(id)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if !w.set.blend {
		for i, id := range order {
			if id == w.id {
				order[0], order[i] = order[i], order[0]
				break
			}
		}
		return order
	}

	depths := make([]float32, n)
	for id := 0; id < n; id++ {
		depths[id] = w.set.arrays[id].minDepthOrMax()
	}
	farthestFirst := !w.set.reversedZ
	quicksortOrderByDepth(order, depths, farthestFirst)
	return order
}

// quicksortOrderByDepth sorts order (a permutation of worker ids) by
// depths[id], iteratively (an explicit stack in place of recursion, so
// the hot path never grows the call stack for what is at most an
// N-element sort where N is the worker count). farthestFirst selects
// descending order; otherwise ascending. Ties break by id so the sort is
// deterministic run to run.
func quicksortOrderByDepth(order []int, depths []float32, farthestFirst bool) {
	less := func(a, b int) bool {
		da, db := depths[a], depths[b]
		if da != db {
			if farthestFirst {
				return da > db
			}
			return da < db
		}
		return a < b
	}

	type span struct{ lo, hi int }
	stack := make([]span, 0, 32)
	stack = append(stack, span{0, len(order) - 1})
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.lo >= s.hi {
			continue
		}
		p := partitionOrder(order, s.lo, s.hi, less)
		stack = append(stack, span{s.lo, p - 1}, span{p + 1, s.hi})
	}
}

func partitionOrder(order []int, lo, hi int, less func(a, b int) bool) int {
	pivot := order[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if less(order[j], pivot) {
			order[i], order[j] = order[j], order[i]
			i++
		}
	}
	order[i], order[hi] = order[hi], order[i]
	return i
}
