package result

import (
	"time"

	"github.com/google/uuid"
)

// Report is the outcome of one solver run.
type Report struct {
	RunID     string           `json:"run_id"`
	Puzzle    string           `json:"puzzle"`
	Answer    int64            `json:"answer"`
	Digest    string           `json:"digest,omitempty"`
	Cached    bool             `json:"cached,omitempty"`
	Created   time.Time        `json:"created"`
	Elapsed   time.Duration    `json:"elapsed_ns"`
	Stats     map[string]int64 `json:"stats,omitempty"`
	Trace     []string         `json:"trace,omitempty"`
	Registers map[string]int32 `json:"registers,omitempty"`
}

// NewReport creates a report for puzzle. An empty runID gets a fresh one.
func NewReport(puzzle, runID string) Report {
	if runID == "" {
		runID = uuid.NewString()
	}
	return Report{
		RunID:   runID,
		Puzzle:  puzzle,
		Created: time.Now().UTC(),
	}
}

// SetStat records a named counter.
func (r *Report) SetStat(name string, v int64) {
	if r.Stats == nil {
		r.Stats = make(map[string]int64)
	}
	r.Stats[name] = v
}
