// Package procsource reads process information from the operating system.
//
// Snapshot is called once at startup to build the index. CPUTime and Detail
// go back to the OS for a single pid after a match; the process may have
// exited by then, which is reported as ErrProcessGone.
package procsource

import (
	"errors"
	"time"

	"github.com/bastiangx/procseek/pkg/procindex"
)

var (
	// ErrSnapshot wraps a failure of the process enumeration itself.
	ErrSnapshot = errors.New("process snapshot failed")
	// ErrProcessGone wraps a failed lookup for a single pid.
	ErrProcessGone = errors.New("process not available")
	// ErrUnsupported is returned on platforms without a process source.
	ErrUnsupported = errors.New("process source not supported on this platform")
)

// Detail is the live information shown for a selected process.
type Detail struct {
	PID         int
	Name        string
	MemoryBytes uint64
	CPUTime     time.Duration
	// Uptime is the wall time since the process started, zero if unknown.
	Uptime time.Duration
}

// CPUUsage is the CPU time as a whole percentage of the process uptime.
// It can exceed 100 for multi-threaded processes and is 0 without an uptime.
func (d Detail) CPUUsage() int {
	if d.Uptime <= 0 {
		return 0
	}
	return int(float64(d.CPUTime) / float64(d.Uptime) * 100)
}

// Source enumerates processes and fetches per-pid details.
type Source interface {
	// Snapshot lists all readable processes. Pids whose info cannot be read
	// are skipped; only an enumeration failure is returned as an error.
	Snapshot() ([]procindex.Record, error)

	// CPUTime returns the accumulated user+system time of pid.
	CPUTime(pid int) (time.Duration, error)

	// Detail returns the current name, memory and CPU time of pid.
	Detail(pid int) (Detail, error)
}
