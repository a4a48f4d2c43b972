// Package cli handles the interactive prompt: one query per line, resolved to
// a single process whose details are printed.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/procseek/internal/logger"
	"github.com/bastiangx/procseek/pkg/match"
	"github.com/bastiangx/procseek/pkg/procsource"
	"github.com/bastiangx/procseek/pkg/suggest"
	"github.com/charmbracelet/log"
)

// completionMarker starts a line that lists completions instead of matching.
const completionMarker = "?"

// Options controls prompt and output of the InputHandler.
type Options struct {
	Prompt     string
	Candidates int
	Highlight  bool
}

// InputHandler reads queries from in, writes results to out and reports
// failed queries on errOut. Queries are handled strictly one at a time.
type InputHandler struct {
	matcher      *match.Matcher
	completer    suggest.ICompleter
	source       procsource.Source
	opts         Options
	in           io.Reader
	out          *log.Logger
	errOut       *log.Logger
	rawOut       io.Writer
	mu           sync.Mutex
	requestCount int
}

// NewInputHandler wires the handler to its collaborators and streams.
func NewInputHandler(matcher *match.Matcher, completer suggest.ICompleter, source procsource.Source, opts Options, in io.Reader, out, errOut io.Writer) *InputHandler {
	errLog := logger.New("", errOut)
	errLog.SetLevel(min(log.GetLevel(), log.ErrorLevel))

	return &InputHandler{
		matcher:   matcher,
		completer: completer,
		source:    source,
		opts:      opts,
		in:        in,
		out:       logger.New("", out),
		errOut:    errLog,
		rawOut:    out,
	}
}

// Start runs the prompt loop until the input ends, which is not an error.
func (h *InputHandler) Start() error {
	reader := bufio.NewReader(h.in)

	for {
		fmt.Fprint(h.rawOut, h.opts.Prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				h.handleInput(line)
			}
			fmt.Fprintln(h.rawOut)
			log.Debug("End of input", "requests", h.requestCount)
			return nil
		}
		h.handleInput(strings.TrimRight(line, "\r\n"))
	}
}

// WaitIdle blocks until the query in flight, if any, is done and keeps
// further queries from starting. It is meant to be called right before exit.
func (h *InputHandler) WaitIdle() {
	h.mu.Lock()
}

// handleInput resolves one line and prints the outcome.
func (h *InputHandler) handleInput(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requestCount++

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		h.errOut.Error("Empty input, type a PID or process name")
		return
	}

	if strings.HasPrefix(trimmed, completionMarker) {
		h.showCompletions(strings.TrimSpace(strings.TrimPrefix(trimmed, completionMarker)))
		return
	}

	start := time.Now()
	res, err := h.matcher.Match(line)
	log.Debugf("Took [ %v ] for input '%s'", time.Since(start), line)

	switch {
	case errors.Is(err, match.ErrEmptyQuery):
		h.errOut.Errorf("No search term in input '%s'", line)
		return
	case err != nil:
		h.errOut.Errorf("No matching process found for input '%s'", line)
		return
	}

	if h.opts.Candidates > 0 || log.GetLevel() <= log.DebugLevel {
		h.showCandidates(res)
	}

	best, _ := res.Best()
	detail, err := h.source.Detail(best.PID)
	if err != nil {
		h.errOut.Errorf("Unable to retrieve details for PID %d: %v", best.PID, err)
		return
	}
	for _, l := range renderDetail(detail) {
		h.out.Print(l)
	}
}

func (h *InputHandler) showCompletions(prefix string) {
	suggestions := h.completer.Complete(prefix)
	if len(suggestions) == 0 {
		h.errOut.Errorf("No completions for '%s'", prefix)
		return
	}
	h.out.Printf("Found %d completions for '%s':", len(suggestions), prefix)
	for _, s := range suggestions {
		h.out.Print("  " + s)
	}
}

func (h *InputHandler) showCandidates(res match.Result) {
	limit := h.opts.Candidates
	if limit <= 0 || limit > len(res.Candidates) {
		limit = len(res.Candidates)
	}
	h.out.Printf("Found %d candidates for '%s' (sort: %s):", len(res.Candidates), res.Query.Term, res.Query.Sort)
	for i, c := range res.Candidates[:limit] {
		h.out.Print(renderCandidate(i+1, c, res.Query.Term, h.opts.Highlight))
	}
}
