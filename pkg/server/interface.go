/*
Package server implements msgpack IPC for process lookups.

Editors and launchers drive procseek through a stream of msgpack messages on
stdin and read the answers on stdout. Requests are handled one at a time, in
the order they arrive, with timing info included in responses.

# IPC

Every request carries an ID that is echoed back and an action:

	{"id": "req_001", "action": "complete", "p": "ngi"}

Completions are the prefix matches for the text typed so far, in snapshot order:

	{"id": "req_001", "s": ["205 - nginx", "999 - nginx-worker"], "c": 2, "t": 12}

Queries accept the same text the REPL does, sort directives included:

	{"id": "req_002", "action": "match", "q": "nginx sort:memory", "l": 5}
	{"id": "req_002", "s": [{"pid": 205, "n": "nginx", "d": "205 - nginx", "m": 4096000, "sc": 1}], "c": 1, "sort": "memory", "t": 80}

Details re-read one process of the snapshot from the OS. Pids outside the
snapshot are rejected with 404:

	{"id": "req_003", "action": "detail", "pid": 205}
	{"id": "req_003", "pid": 205, "n": "nginx", "m": 4096000, "cpu": 60000, "up": 240000, "u": 25}

Failures come back as {"id", "e", "c"} with an HTTP-like code.
*/
package server

// Request is the envelope for every action.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"` // "match", "complete", "detail", "health"
	Query  string `msgpack:"q,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	PID    int    `msgpack:"pid,omitempty"`
}

// MatchCandidate is one ranked process.
type MatchCandidate struct {
	PID     int     `msgpack:"pid"`
	Name    string  `msgpack:"n"`
	Display string  `msgpack:"d"`
	Memory  uint64  `msgpack:"m"`
	Score   float64 `msgpack:"sc"`
}

// MatchResponse answers a "match" request.
type MatchResponse struct {
	ID         string           `msgpack:"id"`
	Candidates []MatchCandidate `msgpack:"s"`
	Count      int              `msgpack:"c"`
	Sort       string           `msgpack:"sort"`
	TimeTaken  int64            `msgpack:"t"`
}

// CompletionResponse answers a "complete" request.
type CompletionResponse struct {
	ID          string   `msgpack:"id"`
	Suggestions []string `msgpack:"s"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"t"`
}

// DetailResponse answers a "detail" request. CPU and Uptime are in
// milliseconds, Usage is a whole percentage.
type DetailResponse struct {
	ID     string `msgpack:"id"`
	PID    int    `msgpack:"pid"`
	Name   string `msgpack:"n"`
	Memory uint64 `msgpack:"m"`
	CPU    int64  `msgpack:"cpu"`
	Uptime int64  `msgpack:"up"`
	Usage  int    `msgpack:"u"`
}

// StatusResponse answers "health" and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for any request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)
