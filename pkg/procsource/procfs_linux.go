//go:build linux

package procsource

import (
	"fmt"
	"time"

	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/charmbracelet/log"
	"github.com/prometheus/procfs"
)

// ProcFS reads processes from a mounted proc filesystem.
type ProcFS struct {
	fs procfs.FS
}

// NewProcFS opens the proc filesystem at mountPoint ("" means /proc).
func NewProcFS(mountPoint string) (*ProcFS, error) {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSnapshot, mountPoint, err)
	}
	return &ProcFS{fs: fs}, nil
}

// Snapshot implements Source.
func (s *ProcFS) Snapshot() ([]procindex.Record, error) {
	procs, err := s.fs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	records := make([]procindex.Record, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		if p.PID == 0 {
			continue
		}
		name, err := p.Comm()
		if err != nil {
			skipped++
			continue
		}
		stat, err := p.Stat()
		if err != nil {
			skipped++
			continue
		}
		records = append(records, procindex.Record{
			PID:         p.PID,
			Name:        name,
			MemoryBytes: residentBytes(stat),
		})
	}

	log.Debugf("Snapshot: %d processes, %d skipped", len(records), skipped)
	return records, nil
}

// CPUTime implements Source.
func (s *ProcFS) CPUTime(pid int) (time.Duration, error) {
	stat, err := s.stat(pid)
	if err != nil {
		return 0, err
	}
	return cpuDuration(stat), nil
}

// Detail implements Source.
func (s *ProcFS) Detail(pid int) (Detail, error) {
	p, err := s.fs.Proc(pid)
	if err != nil {
		return Detail{}, fmt.Errorf("%w: pid %d: %v", ErrProcessGone, pid, err)
	}
	name, err := p.Comm()
	if err != nil {
		return Detail{}, fmt.Errorf("%w: pid %d name: %v", ErrProcessGone, pid, err)
	}
	stat, err := p.Stat()
	if err != nil {
		return Detail{}, fmt.Errorf("%w: pid %d stat: %v", ErrProcessGone, pid, err)
	}
	return Detail{
		PID:         pid,
		Name:        name,
		MemoryBytes: residentBytes(stat),
		CPUTime:     cpuDuration(stat),
		Uptime:      uptime(stat, time.Now()),
	}, nil
}

func (s *ProcFS) stat(pid int) (procfs.ProcStat, error) {
	p, err := s.fs.Proc(pid)
	if err != nil {
		return procfs.ProcStat{}, fmt.Errorf("%w: pid %d: %v", ErrProcessGone, pid, err)
	}
	stat, err := p.Stat()
	if err != nil {
		return procfs.ProcStat{}, fmt.Errorf("%w: pid %d stat: %v", ErrProcessGone, pid, err)
	}
	return stat, nil
}

func residentBytes(stat procfs.ProcStat) uint64 {
	rss := stat.ResidentMemory()
	if rss < 0 {
		return 0
	}
	return uint64(rss)
}

// uptime needs the boot time from <mount>/stat. Without it the uptime is
// unknown and reported as zero.
func uptime(stat procfs.ProcStat, now time.Time) time.Duration {
	start, err := stat.StartTime()
	if err != nil {
		log.Debugf("Start time for pid %d: %v", stat.PID, err)
		return 0
	}
	d := now.Sub(time.Unix(0, int64(start*float64(time.Second))))
	if d < 0 {
		return 0
	}
	return d
}

func cpuDuration(stat procfs.ProcStat) time.Duration {
	return time.Duration(stat.CPUTime() * float64(time.Second))
}
