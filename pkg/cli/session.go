package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oisee/aoc-core/pkg/config"
	"github.com/oisee/aoc-core/pkg/logging"
	"github.com/oisee/aoc-core/pkg/metrics"
	"github.com/oisee/aoc-core/pkg/result"
)

// Session is everything one command run sets up around the solver.
type Session struct {
	Puzzle  string
	Config  config.Config
	Log     *logging.Logger
	Metrics *metrics.Metrics
	Cache   *result.Cache // nil without a cache file

	start time.Time
}

// Open starts a session. Log output goes to stderr.
func Open(puzzle string, cfg config.Config, stderr io.Writer) (*Session, error) {
	log, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		JSONPath: cfg.Log.JSON,
		Writer:   stderr,
	})
	if err != nil {
		return nil, err
	}
	s := &Session{
		Puzzle:  puzzle,
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(),
		start:   time.Now(),
	}
	if cfg.Cache != "" {
		c, err := result.LoadCache(cfg.Cache)
		if err != nil {
			log.Close()
			return nil, err
		}
		s.Cache = c
	}
	log.Debug("session start", "puzzle", puzzle, "input", cfg.Input)
	return s, nil
}

// NewReport creates a report tagged with this session's run id.
func (s *Session) NewReport() result.Report {
	return result.NewReport(s.Puzzle, s.Log.RunID)
}

// Cached returns a previous report for digest, if caching is on.
func (s *Session) Cached(digest string) (result.Report, bool) {
	if s.Cache == nil {
		return result.Report{}, false
	}
	r, ok := s.Cache.Get(digest)
	if ok {
		s.Log.Info("answer from cache", "digest", digest, "run", r.RunID)
		r.Cached = true
	}
	return r, ok
}

// Finish records rep and writes every configured output.
func (s *Session) Finish(rep result.Report) error {
	if !rep.Cached {
		rep.Elapsed = time.Since(s.start)
	}
	s.Metrics.ObserveRun(s.Puzzle, time.Since(s.start).Seconds())

	var errs []error
	if s.Cache != nil && !rep.Cached && rep.Digest != "" {
		if err := s.Cache.Put(rep); err != nil {
			errs = append(errs, err)
		} else if err := result.SaveCache(s.Config.Cache, s.Cache); err != nil {
			errs = append(errs, fmt.Errorf("save cache: %w", err))
		}
	}
	if s.Config.Output != "" {
		if err := writeReport(s.Config.Output, rep); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Config.MetricsOut != "" {
		if err := s.Metrics.WriteFile(s.Config.MetricsOut); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	s.Log.Debug("session done", "answer", rep.Answer, "elapsed", rep.Elapsed.Round(time.Millisecond))
	return errors.Join(errs...)
}

// Close releases the logger.
func (s *Session) Close() error {
	return s.Log.Close()
}

func writeReport(path string, rep result.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := result.WriteJSON(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
