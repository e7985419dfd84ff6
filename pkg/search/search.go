package search

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oisee/aoc-core/pkg/facility"
	"github.com/oisee/aoc-core/pkg/logging"
	"github.com/oisee/aoc-core/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrNoPath is returned when the goal cannot be reached from the start.
var ErrNoPath = errors.New("search: goal unreachable")

// Config holds search configuration.
type Config struct {
	Bidirectional bool             // race a forward and a backward worker
	Trace         bool             // reconstruct the move sequence
	Logger        *slog.Logger     // nil discards
	Metrics       *metrics.Metrics // nil records nothing
}

// Step is one move of a solution and the configuration it leads to.
type Step struct {
	Move   facility.Move
	Config facility.Configuration
}

// Result is the outcome of a search.
type Result struct {
	Moves      int
	LowerBound int
	Direction  Direction // which worker produced the answer
	Path       []Step    // only with Config.Trace
	Stats      []metrics.SearchStats
	Elapsed    time.Duration
}

// Run finds the minimum number of elevator moves that bring every
// component of fac to the top floor.
func Run(fac facility.Facility, cfg Config) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	startTime := time.Now()

	start := fac.Start
	res := Result{LowerBound: facility.LowerBound(start), Direction: Forward}
	if !start.Valid() {
		return Result{}, facility.ErrInvalidStart
	}
	if fac.Empty() || start.AllOnTop() {
		// Nothing to carry; where the elevator stands is irrelevant.
		res.Elapsed = time.Since(startTime)
		cfg.Metrics.ObserveMoves(0)
		return res, nil
	}

	log.Debug("search start",
		"elements", start.N,
		"floors", start.Floors,
		"lower_bound", res.LowerBound,
		"bidirectional", cfg.Bidirectional)

	var err error
	if cfg.Bidirectional {
		err = runBidirectional(start, cfg, log, &res)
	} else {
		err = runForward(start, cfg, log, &res)
	}
	res.Elapsed = time.Since(startTime)
	for _, st := range res.Stats {
		cfg.Metrics.ObserveSearch(st)
	}
	if err != nil {
		return res, err
	}
	cfg.Metrics.ObserveMoves(res.Moves)

	log.Debug("search done",
		"moves", res.Moves,
		"direction", string(res.Direction),
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// RunSingle is Run with a default forward-only configuration.
func RunSingle(fac facility.Facility) (int, error) {
	res, err := Run(fac, Config{})
	return res.Moves, err
}

func isGoal(c facility.Configuration) bool { return c.IsGoal() }

func runForward(start facility.Configuration, cfg Config, log *slog.Logger, res *Result) error {
	w := newWorker(Forward, start, isGoal, true, nil, log)
	moves, key, err := w.run()
	res.Stats = []metrics.SearchStats{w.stats}
	if err != nil {
		return err
	}
	res.Moves = moves
	if cfg.Trace {
		res.Path = w.closed.Path(key)
	}
	return nil
}

type outcome struct {
	moves int
	key   facility.Key
	ok    bool
}

// runBidirectional races a forward worker from the start against a backward
// worker from the goal. Moves are reversible and validity is symmetric, so
// both measure the same distance; whichever pops its target first wins.
func runBidirectional(start facility.Configuration, cfg Config, log *slog.Logger, res *Result) error {
	var best atomic.Int64
	best.Store(bestUnknown)

	startKey := start.Key()
	fw := newWorker(Forward, start, isGoal, true, &best, log)
	// Downward pruning assumes the target is at the top, so the backward
	// worker runs without it.
	bw := newWorker(Backward, start.Goal(), func(c facility.Configuration) bool {
		return c.Key() == startKey
	}, false, &best, log)

	// The group carries failures; out carries each worker's answer so the
	// winner and its closed set can be picked afterwards.
	var out [2]outcome
	var g errgroup.Group
	for i, w := range []*worker{fw, bw} {
		g.Go(func() error {
			m, k, err := w.run()
			if errors.Is(err, errStopped) {
				return nil
			}
			if err != nil {
				return err
			}
			out[i] = outcome{moves: m, key: k, ok: true}
			return nil
		})
	}
	err := g.Wait()
	res.Stats = []metrics.SearchStats{fw.stats, bw.stats}
	if err != nil {
		return err
	}

	win := -1
	for i := range out {
		if out[i].ok && (win < 0 || out[i].moves < out[win].moves) {
			win = i
		}
	}
	if win < 0 {
		return errors.New("search: both workers stopped without an answer")
	}

	res.Moves = out[win].moves
	if win == 0 {
		res.Direction = Forward
		if cfg.Trace {
			res.Path = fw.closed.Path(out[0].key)
		}
		return nil
	}

	res.Direction = Backward
	if cfg.Trace {
		path, err := reversePath(bw.closed.Path(out[1].key), start.Goal(), start)
		if err != nil {
			return err
		}
		res.Path = path
	}
	return nil
}

// reversePath turns a backward path goal -> s' into the forward path
// start -> goal. s' has the start's canonical key but possibly different
// element names, so the path is renamed onto start's elements.
func reversePath(back []Step, goal, start facility.Configuration) ([]Step, error) {
	if len(back) == 0 {
		return nil, nil
	}
	end := back[len(back)-1].Config
	perm, ok := facility.Matching(end, start)
	if !ok {
		return nil, fmt.Errorf("search: backward path ends at %v, not equivalent to start", end.Key())
	}

	out := make([]Step, len(back))
	for i := range back {
		// Undoing back[i] leads to the configuration before it.
		prev := goal
		if i > 0 {
			prev = back[i-1].Config
		}
		out[len(back)-1-i] = Step{
			Move:   back[i].Move.Reverse().Permute(perm),
			Config: prev.Permute(perm),
		}
	}
	return out, nil
}
