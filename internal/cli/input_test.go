package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bastiangx/procseek/pkg/match"
	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/bastiangx/procseek/pkg/procsource"
	"github.com/bastiangx/procseek/pkg/suggest"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

func fixtureSource() *procsource.Static {
	return procsource.NewStatic([]procsource.FixtureProcess{
		{PID: 100, Name: "sshd", Memory: 2048000, CPUMs: 1500},
		{PID: 205, Name: "nginx", Memory: 4096000, CPUMs: 180000, UptimeMs: 600000},
		{PID: 999, Name: "nginx-worker", Memory: 1024000, Exited: true},
	})
}

func newTestHandler(t *testing.T, cpu match.CPUTimer, input string, opts Options) (*InputHandler, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	src := fixtureSource()
	records, err := src.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	idx := procindex.New(records)
	if cpu == nil {
		cpu = src
	}

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	h := NewInputHandler(match.NewMatcher(idx, cpu, match.DefaultThreshold), suggest.NewCompleter(idx), src,
		opts, strings.NewReader(input), out, errOut)
	return h, out, errOut
}

func runSession(t *testing.T, input string, opts Options) (string, string) {
	t.Helper()

	h, out, errOut := newTestHandler(t, nil, input, opts)
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return out.String(), errOut.String()
}

// gatedCPU holds every CPU time lookup until release is closed.
type gatedCPU struct {
	src     match.CPUTimer
	entered chan struct{}
	once    sync.Once
	release chan struct{}
}

func (g *gatedCPU) CPUTime(pid int) (time.Duration, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.src.CPUTime(pid)
}

func TestWaitIdleLetsQueryInFlightFinish(t *testing.T) {
	cpu := &gatedCPU{src: fixtureSource(), entered: make(chan struct{}), release: make(chan struct{})}
	h, out, _ := newTestHandler(t, cpu, "", Options{})

	go h.handleInput("nginx sort:cpu")
	<-cpu.entered

	idle := make(chan struct{})
	go func() {
		h.WaitIdle()
		close(idle)
	}()

	select {
	case <-idle:
		t.Fatal("WaitIdle returned while the query was still ranking")
	case <-time.After(50 * time.Millisecond):
	}

	close(cpu.release)
	select {
	case <-idle:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitIdle did not return after the query finished")
	}

	got := out.String()
	for _, want := range []string{"PID:", "205", "3.91 MB", "CPU Time:"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q to be written before WaitIdle returned, got:\n%s", want, got)
		}
	}
}

func TestSessionPrintsDetail(t *testing.T) {
	out, errOut := runSession(t, "nginx\n", Options{Prompt: "> "})

	for _, want := range []string{"> ", "PID:", "205", "Name:", "nginx", "3.91 MB", "3m", "CPU Usage: 30%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if errOut != "" {
		t.Errorf("unexpected error output: %q", errOut)
	}
}

func TestSessionPIDQuery(t *testing.T) {
	out, _ := runSession(t, "100\n", Options{})
	if !strings.Contains(out, "sshd") || !strings.Contains(out, "1s") {
		t.Errorf("expected sshd details, got:\n%s", out)
	}
}

func TestSessionErrorsGoToStderr(t *testing.T) {
	out, errOut := runSession(t, "\nqqqqqq\nsort:cpu\n", Options{})

	for _, want := range []string{"Empty input", "No matching process found for input 'qqqqqq'", "No search term"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("expected %q on stderr, got:\n%s", want, errOut)
		}
	}
	if strings.Contains(out, "PID:") {
		t.Errorf("no detail should be printed, got:\n%s", out)
	}
}

func TestSessionDetailLookupFailure(t *testing.T) {
	// nginx-worker is in the snapshot but has exited since
	out, errOut := runSession(t, "nginx-worker\nsshd\n", Options{})

	if !strings.Contains(errOut, "Unable to retrieve details for PID 999") {
		t.Errorf("expected detail failure on stderr, got:\n%s", errOut)
	}
	if !strings.Contains(out, "sshd") {
		t.Errorf("loop should continue after a failed lookup, got:\n%s", out)
	}
}

func TestSessionCompletions(t *testing.T) {
	out, errOut := runSession(t, "?ngi\n? zz\n", Options{})

	if !strings.Contains(out, "205 - nginx") || !strings.Contains(out, "999 - nginx-worker") {
		t.Errorf("expected completions, got:\n%s", out)
	}
	if strings.Contains(out, "100 - sshd") {
		t.Errorf("sshd should not be completed for 'ngi':\n%s", out)
	}
	if !strings.Contains(errOut, "No completions for 'zz'") {
		t.Errorf("expected empty completion notice, got:\n%s", errOut)
	}
}

func TestSessionCandidatesListing(t *testing.T) {
	out, _ := runSession(t, "nginx sort:memory\n", Options{Candidates: 5, Highlight: true})

	if !strings.Contains(out, "Found 2 candidates for 'nginx' (sort: memory)") {
		t.Errorf("expected candidate header, got:\n%s", out)
	}
	first := strings.Index(out, " 1. ")
	second := strings.Index(out, " 2. ")
	if first < 0 || second < 0 || !strings.Contains(out[first:second], "205") || !strings.Contains(out[second:], "999") {
		t.Errorf("expected 205 then 999, got:\n%s", out)
	}
}

func TestSessionLastLineWithoutNewline(t *testing.T) {
	out, _ := runSession(t, "sshd", Options{})
	if !strings.Contains(out, "100") {
		t.Errorf("final unterminated line should be handled, got:\n%s", out)
	}
}

func TestHighlightMatches(t *testing.T) {
	if got := highlightMatches("", "nginx"); got != "nginx" {
		t.Errorf("empty term should leave name untouched, got %q", got)
	}
	if got := highlightMatches("zzz", "nginx"); got != "nginx" {
		t.Errorf("non-matching term should leave name untouched, got %q", got)
	}
	// styling may be stripped on a non-terminal, the text must survive either way
	got := highlightMatches("ngx", "nginx")
	for _, r := range "nginx" {
		if !strings.ContainsRune(got, r) {
			t.Errorf("highlighted name lost %q: %q", r, got)
		}
	}
}
