//go:build linux

package procsource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const statLine = "%d (%s) S 0 1 1 0 -1 4194560 44339 1968737 95 1222 %d %d 3374 1369 20 0 1 0 24 171548672 %d " +
	"18446744073709551615 1 1 0 0 0 0 671173123 4096 1260 0 0 0 17 0 0 0 12 0 0 0 0 0 0 0 0 0 0\n"

type fakeProc struct {
	pid          int
	comm         string
	utime, stime int
	rssPages     int
	noStat       bool
}

// fakeProcFS lays out a minimal /proc tree under a temp dir.
func fakeProcFS(t *testing.T, procs []fakeProc) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range procs {
		dir := filepath.Join(root, fmt.Sprint(p.pid))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "comm"), []byte(p.comm+"\n"), 0644); err != nil {
			t.Fatalf("write comm: %v", err)
		}
		if p.noStat {
			continue
		}
		stat := fmt.Sprintf(statLine, p.pid, p.comm, p.utime, p.stime, p.rssPages)
		if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0644); err != nil {
			t.Fatalf("write stat: %v", err)
		}
	}
	// non-pid entries must be ignored
	if err := os.MkdirAll(filepath.Join(root, "sys"), 0755); err != nil {
		t.Fatalf("mkdir sys: %v", err)
	}
	return root
}

func TestProcFSSnapshotSkipsUnreadable(t *testing.T) {
	root := fakeProcFS(t, []fakeProc{
		{pid: 1, comm: "init", utime: 150, stime: 50, rssPages: 10},
		{pid: 42, comm: "broken", noStat: true},
		{pid: 205, comm: "nginx", utime: 6000, rssPages: 1000},
	})

	src, err := NewProcFS(root)
	if err != nil {
		t.Fatalf("NewProcFS: %v", err)
	}
	records, err := src.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	page := uint64(os.Getpagesize())
	for _, r := range records {
		switch r.PID {
		case 1:
			if r.Name != "init" || r.MemoryBytes != 10*page {
				t.Errorf("unexpected record for pid 1: %+v", r)
			}
		case 205:
			if r.Name != "nginx" || r.MemoryBytes != 1000*page {
				t.Errorf("unexpected record for pid 205: %+v", r)
			}
		default:
			t.Errorf("unexpected pid %d in snapshot", r.PID)
		}
	}
}

func TestProcFSLookups(t *testing.T) {
	root := fakeProcFS(t, []fakeProc{
		{pid: 1, comm: "init", utime: 150, stime: 50, rssPages: 10},
	})
	src, err := NewProcFS(root)
	if err != nil {
		t.Fatalf("NewProcFS: %v", err)
	}

	cpu, err := src.CPUTime(1)
	if err != nil {
		t.Fatalf("CPUTime: %v", err)
	}
	if cpu != 2*time.Second {
		t.Errorf("expected 2s of CPU time, got %v", cpu)
	}

	d, err := src.Detail(1)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Name != "init" || d.CPUTime != 2*time.Second {
		t.Errorf("unexpected detail: %+v", d)
	}

	if _, err := src.Detail(31337); !errors.Is(err, ErrProcessGone) {
		t.Errorf("expected ErrProcessGone, got %v", err)
	}
	if _, err := src.CPUTime(31337); !errors.Is(err, ErrProcessGone) {
		t.Errorf("expected ErrProcessGone, got %v", err)
	}
}

func TestProcFSDetailUptime(t *testing.T) {
	root := fakeProcFS(t, []fakeProc{
		{pid: 1, comm: "init", utime: 150, stime: 50, rssPages: 10},
	})

	src, err := NewProcFS(root)
	if err != nil {
		t.Fatalf("NewProcFS: %v", err)
	}
	d, err := src.Detail(1)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Uptime != 0 || d.CPUUsage() != 0 {
		t.Errorf("without a boot time the uptime is unknown, got %+v", d)
	}

	// started 0.24s after a boot 40s ago, 2s of CPU time
	bootTime := time.Now().Add(-40 * time.Second).Unix()
	stat := fmt.Sprintf("cpu  10 0 10 100 0 0 0 0 0 0\nbtime %d\n", bootTime)
	if err := os.WriteFile(filepath.Join(root, "stat"), []byte(stat), 0644); err != nil {
		t.Fatalf("write stat: %v", err)
	}

	d, err = src.Detail(1)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Uptime < 35*time.Second || d.Uptime > 45*time.Second {
		t.Errorf("expected an uptime of about 40s, got %v", d.Uptime)
	}
	if usage := d.CPUUsage(); usage < 4 || usage > 6 {
		t.Errorf("expected about 5%% CPU usage, got %d%%", usage)
	}
}

func TestNewProcFSMissingMount(t *testing.T) {
	_, err := NewProcFS(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrSnapshot) {
		t.Errorf("expected ErrSnapshot, got %v", err)
	}
}
