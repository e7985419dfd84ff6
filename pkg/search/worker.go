package search

import (
	"errors"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/oisee/aoc-core/pkg/facility"
	"github.com/oisee/aoc-core/pkg/metrics"
)

// Direction names which way a worker searches.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Shared best-distance word values besides real distances.
const (
	bestUnknown  int64 = math.MaxInt64
	bestNoPath   int64 = -1
	compactAfter       = 1 << 14
)

// errStopped means another worker finished first.
var errStopped = errors.New("search: stopped by peer")

type node struct {
	cfg  facility.Configuration
	dist int
}

// worker runs one breadth-first search with its own frontier and closed
// set. The only state shared between workers is best.
type worker struct {
	dir    Direction
	start  facility.Configuration
	done   func(facility.Configuration) bool
	prune  bool
	best   *atomic.Int64 // nil when running alone
	closed *ClosedSet
	log    *slog.Logger

	stats metrics.SearchStats
}

func newWorker(dir Direction, start facility.Configuration, done func(facility.Configuration) bool, prune bool, best *atomic.Int64, log *slog.Logger) *worker {
	return &worker{
		dir:    dir,
		start:  start,
		done:   done,
		prune:  prune,
		best:   best,
		closed: NewClosedSet(1024),
		log:    log.With("direction", string(dir)),
		stats:  metrics.SearchStats{Direction: string(dir)},
	}
}

// stopped reports whether a peer has already settled the answer. Any
// published distance is optimal, so every partial distance here is at
// least as long and the worker can stop outright.
func (w *worker) stopped() bool {
	return w.best != nil && w.best.Load() != bestUnknown
}

// publish stores v in the shared word if it improves on what is there.
func (w *worker) publish(v int64) {
	if w.best == nil {
		return
	}
	for {
		cur := w.best.Load()
		if cur != bestUnknown && (v == bestNoPath || cur <= v) {
			return
		}
		if w.best.CompareAndSwap(cur, v) {
			return
		}
	}
}

// run searches until the target is popped and returns the distance and the
// key it was reached at.
func (w *worker) run() (int, facility.Key, error) {
	w.closed.Root(w.start)
	queue := []node{{cfg: w.start, dist: 0}}
	head := 0

	for head < len(queue) {
		n := queue[head]
		head++
		if head >= compactAfter && head*2 >= len(queue) {
			queue = append(queue[:0:0], queue[head:]...)
			head = 0
		}

		key := n.cfg.Key()
		if d, ok := w.closed.Dist(key); ok && d < n.dist {
			// Superseded by a shorter route after it was queued.
			continue
		}
		if w.stopped() {
			return 0, key, errStopped
		}
		if w.done(n.cfg) {
			w.publish(int64(n.dist))
			w.log.Debug("target reached", "moves", n.dist, "closed", w.closed.Len())
			return n.dist, key, nil
		}

		w.stats.Expanded++
		facility.Moves(n.cfg, func(m facility.Move, next facility.Configuration) bool {
			w.stats.Generated++
			if w.prune && ShouldPrune(n.cfg, m) {
				w.stats.Pruned++
				return true
			}
			if !w.closed.Offer(next.Key(), next, n.dist+1, key, m) {
				w.stats.Duplicates++
				return true
			}
			queue = append(queue, node{cfg: next, dist: n.dist + 1})
			return true
		})
		if f := len(queue) - head; f > w.stats.MaxFrontier {
			w.stats.MaxFrontier = f
		}
	}

	w.publish(bestNoPath)
	w.log.Debug("frontier exhausted", "closed", w.closed.Len())
	return 0, facility.Key{}, ErrNoPath
}
