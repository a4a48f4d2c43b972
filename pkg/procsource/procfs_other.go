//go:build !linux

package procsource

import (
	"time"

	"github.com/bastiangx/procseek/pkg/procindex"
)

// ProcFS is only backed by a real proc filesystem on Linux.
type ProcFS struct{}

// NewProcFS always fails outside Linux; use a fixture instead.
func NewProcFS(mountPoint string) (*ProcFS, error) {
	return nil, ErrUnsupported
}

// Snapshot implements Source.
func (s *ProcFS) Snapshot() ([]procindex.Record, error) {
	return nil, ErrUnsupported
}

// CPUTime implements Source.
func (s *ProcFS) CPUTime(pid int) (time.Duration, error) {
	return 0, ErrUnsupported
}

// Detail implements Source.
func (s *ProcFS) Detail(pid int) (Detail, error) {
	return Detail{}, ErrUnsupported
}
