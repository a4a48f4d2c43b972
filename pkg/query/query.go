// Package query splits a raw input line into a search term and a sort directive.
package query

import "strings"

// Directive selects an alternate ordering for ranked results.
type Directive int

const (
	None Directive = iota
	ByMemory
	ByCPUTime
)

const (
	directiveToken = "sort:"
	memoryToken    = "sort:memory"
	cpuToken       = "sort:cpu"
)

func (d Directive) String() string {
	switch d {
	case ByMemory:
		return "memory"
	case ByCPUTime:
		return "cpu"
	default:
		return "none"
	}
}

// Query is a parsed input line.
type Query struct {
	Raw  string
	Term string
	Sort Directive
}

// Parse never fails: an unknown or malformed directive just yields None.
//
// Directive detection is a plain substring search over the whole line, so a
// term containing "sort:memory" also selects ByMemory.
func Parse(raw string) Query {
	term := raw
	if i := strings.Index(raw, directiveToken); i >= 0 {
		term = raw[:i]
	}

	q := Query{
		Raw:  raw,
		Term: strings.TrimSpace(term),
	}
	switch {
	case strings.Contains(raw, memoryToken):
		q.Sort = ByMemory
	case strings.Contains(raw, cpuToken):
		q.Sort = ByCPUTime
	}
	return q
}
