package procsource

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/charmbracelet/log"
)

// FixtureProcess is one [[process]] entry of a fixture file.
type FixtureProcess struct {
	PID      int    `toml:"pid"`
	Name     string `toml:"name"`
	Memory   uint64 `toml:"memory"`
	CPUMs    uint64 `toml:"cpu_ms"`
	UptimeMs uint64 `toml:"uptime_ms"`
	// Exited processes appear in the snapshot but fail every later lookup.
	Exited bool `toml:"exited"`
}

// Fixture is the on-disk form of a Static source.
type Fixture struct {
	Processes []FixtureProcess `toml:"process"`
}

// Static serves a fixed process list. It backs the -fixture flag and tests.
type Static struct {
	procs []FixtureProcess
	byPID map[int]int
}

// NewStatic creates a Static source from procs, in order.
func NewStatic(procs []FixtureProcess) *Static {
	s := &Static{
		procs: make([]FixtureProcess, len(procs)),
		byPID: make(map[int]int, len(procs)),
	}
	copy(s.procs, procs)
	for i, p := range s.procs {
		if _, ok := s.byPID[p.PID]; !ok {
			s.byPID[p.PID] = i
		}
	}
	return s
}

// LoadFixture reads a TOML fixture file into a Static source.
func LoadFixture(path string) (*Static, error) {
	var f Fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("%w: fixture %s: %v", ErrSnapshot, path, err)
	}
	log.Debugf("Loaded %d processes from fixture %s", len(f.Processes), path)
	return NewStatic(f.Processes), nil
}

// Snapshot implements Source.
func (s *Static) Snapshot() ([]procindex.Record, error) {
	records := make([]procindex.Record, 0, len(s.procs))
	for _, p := range s.procs {
		records = append(records, procindex.Record{
			PID:         p.PID,
			Name:        p.Name,
			MemoryBytes: p.Memory,
		})
	}
	return records, nil
}

// CPUTime implements Source.
func (s *Static) CPUTime(pid int) (time.Duration, error) {
	p, err := s.lookup(pid)
	if err != nil {
		return 0, err
	}
	return time.Duration(p.CPUMs) * time.Millisecond, nil
}

// Detail implements Source.
func (s *Static) Detail(pid int) (Detail, error) {
	p, err := s.lookup(pid)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		PID:         p.PID,
		Name:        p.Name,
		MemoryBytes: p.Memory,
		CPUTime:     time.Duration(p.CPUMs) * time.Millisecond,
		Uptime:      time.Duration(p.UptimeMs) * time.Millisecond,
	}, nil
}

func (s *Static) lookup(pid int) (FixtureProcess, error) {
	i, ok := s.byPID[pid]
	if !ok || s.procs[i].Exited {
		return FixtureProcess{}, fmt.Errorf("%w: pid %d", ErrProcessGone, pid)
	}
	return s.procs[i], nil
}
