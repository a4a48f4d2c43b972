package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/procseek/pkg/match"
	"github.com/bastiangx/procseek/pkg/procsource"
	"github.com/bastiangx/procseek/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for process lookups
type Server struct {
	matcher   *match.Matcher
	completer suggest.ICompleter
	source    procsource.Source
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(matcher *match.Matcher, completer suggest.ICompleter, source procsource.Source, r io.Reader, w io.Writer) *Server {
	return &Server{
		matcher:   matcher,
		completer: completer,
		source:    source,
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
	}
}

// Start announces readiness and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting IPC server")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client disconnected (EOF)")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches one request. Only write failures are returned.
func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "match":
		return s.handleMatch(req)
	case "complete":
		return s.handleComplete(req)
	case "detail":
		return s.handleDetail(req)
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), CodeBadRequest)
	}
}

func (s *Server) handleMatch(req Request) error {
	start := time.Now()
	res, err := s.matcher.Match(req.Query)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, match.ErrEmptyQuery):
		return s.sendError(req.ID, "Missing 'q' parameter", CodeBadRequest)
	case errors.Is(err, match.ErrNoMatch):
		return s.sendError(req.ID, err.Error(), CodeNotFound)
	case err != nil:
		log.Errorf("Matching %q: %v", req.Query, err)
		return s.sendError(req.ID, "Internal server error", CodeInternal)
	}

	ranked := res.Candidates
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	candidates := make([]MatchCandidate, len(ranked))
	for i, c := range ranked {
		candidates[i] = MatchCandidate{
			PID:     c.PID,
			Name:    c.Name,
			Display: c.Display(),
			Memory:  c.MemoryBytes,
			Score:   c.Score,
		}
	}

	return s.send(MatchResponse{
		ID:         req.ID,
		Candidates: candidates,
		Count:      len(candidates),
		Sort:       res.Query.Sort.String(),
		TimeTaken:  elapsed.Microseconds(),
	})
}

func (s *Server) handleComplete(req Request) error {
	start := time.Now()
	suggestions := s.completer.Complete(req.Prefix)
	elapsed := time.Since(start)

	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleDetail(req Request) error {
	if req.PID <= 0 {
		return s.sendError(req.ID, "Missing 'pid' parameter", CodeBadRequest)
	}
	if _, ok := s.matcher.Record(req.PID); !ok {
		return s.sendError(req.ID, fmt.Sprintf("pid %d is not in the snapshot", req.PID), CodeNotFound)
	}
	d, err := s.source.Detail(req.PID)
	if err != nil {
		if errors.Is(err, procsource.ErrProcessGone) {
			return s.sendError(req.ID, err.Error(), CodeNotFound)
		}
		log.Errorf("Detail for pid %d: %v", req.PID, err)
		return s.sendError(req.ID, "Internal server error", CodeInternal)
	}
	return s.send(DetailResponse{
		ID:     req.ID,
		PID:    d.PID,
		Name:   d.Name,
		Memory: d.MemoryBytes,
		CPU:    d.CPUTime.Milliseconds(),
		Uptime: d.Uptime.Milliseconds(),
		Usage:  d.CPUUsage(),
	})
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	log.Debug("Request failed", "id", id, "code", code, "error", message)
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
