package match

import (
	"errors"
	"fmt"

	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/bastiangx/procseek/pkg/query"
	"github.com/charmbracelet/log"
)

var (
	// ErrEmptyQuery is returned when the input has no search term.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNoMatch is returned when no candidate clears the threshold.
	ErrNoMatch = errors.New("no matching process found")
)

// Result is the ranked outcome of one query.
type Result struct {
	Query      query.Query
	Candidates []Candidate
}

// Best returns the candidate the caller should show.
func (r Result) Best() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Matcher runs the parse, score and rank steps over one snapshot.
type Matcher struct {
	index     *procindex.Index
	cpu       CPUTimer
	threshold float64
}

// NewMatcher creates a Matcher over idx. cpu is only consulted for
// "sort:cpu" queries and may be nil. A threshold outside [0, 1) falls back to
// DefaultThreshold.
func NewMatcher(idx *procindex.Index, cpu CPUTimer, threshold float64) *Matcher {
	if threshold < 0 || threshold >= 1 {
		log.Warnf("Invalid match threshold %.2f, using %.2f", threshold, DefaultThreshold)
		threshold = DefaultThreshold
	}
	return &Matcher{
		index:     idx,
		cpu:       cpu,
		threshold: threshold,
	}
}

// Threshold returns the effective score threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Record returns the snapshot record for pid.
func (m *Matcher) Record(pid int) (procindex.Record, bool) {
	return m.index.Lookup(pid)
}

// Match resolves input against the snapshot.
// The returned Result always carries the parsed query, even on error.
func (m *Matcher) Match(input string) (Result, error) {
	q := query.Parse(input)
	res := Result{Query: q}

	if q.Term == "" {
		return res, ErrEmptyQuery
	}

	candidates := ScoreAll(q.Term, m.index)
	res.Candidates = Rank(candidates, q.Sort, m.cpu, m.threshold)
	log.Debug("Ranked query", "term", q.Term, "sort", q.Sort, "scored", len(candidates), "kept", len(res.Candidates))

	if len(res.Candidates) == 0 {
		return res, fmt.Errorf("%w for input '%s'", ErrNoMatch, input)
	}
	return res, nil
}
