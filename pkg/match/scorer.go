// Package match resolves a query to the processes that best fit it.
//
// Every record in the snapshot gets a similarity score in [0, 1]. Candidates
// scoring above the threshold are ranked, by score or by an explicit sort
// directive, and the first one is what the caller shows.
package match

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: the prefix boost only applies above 0.7 and
// considers at most 4 leading characters.
const (
	boostThreshold = 0.7
	prefixSize     = 4
)

// Candidate is a scored record. It never flows back into the index.
type Candidate struct {
	Score       float64
	PID         int
	Name        string
	MemoryBytes uint64
}

// Display returns the "<pid> - <name>" form of the candidate.
func (c Candidate) Display() string {
	return strconv.Itoa(c.PID) + " - " + c.Name
}

// Score rates rec against term as the best of three signals: name
// similarity, an exact pid hit and similarity to the "<pid> - <name>" string.
func Score(term string, rec procindex.Record) float64 {
	lowerTerm := strings.ToLower(term)

	nameScore := similarity(lowerTerm, strings.ToLower(rec.Name))

	pidScore := 0.0
	if pid, err := strconv.Atoi(term); err == nil && pid == rec.PID {
		pidScore = 1.0
	}

	displayScore := similarity(lowerTerm, strings.ToLower(rec.Display()))

	return clamp(max(nameScore, pidScore, displayScore))
}

// similarity is Jaro-Winkler over characters. smetrics compares bytes, so
// non-ASCII input is first recoded to one byte per distinct rune.
func similarity(a, b string) float64 {
	ca, cb := runeCodes(a, b)
	return smetrics.JaroWinkler(ca, cb, boostThreshold, prefixSize)
}

// runeCodes maps every distinct rune of a and b to its own byte, so equal
// runes stay equal and each rune takes one position. ASCII input is returned
// as is. Past 256 distinct runes the inputs are compared bytewise.
func runeCodes(a, b string) (string, string) {
	if isASCII(a) && isASCII(b) {
		return a, b
	}

	codes := make(map[rune]byte)
	encode := func(s string) ([]byte, bool) {
		out := make([]byte, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			c, ok := codes[r]
			if !ok {
				if len(codes) > math.MaxUint8 {
					return nil, false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}

	ca, okA := encode(a)
	cb, okB := encode(b)
	if !okA || !okB {
		return a, b
	}
	return string(ca), string(cb)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ScoreAll scores every record of idx in index order.
func ScoreAll(term string, idx *procindex.Index) []Candidate {
	candidates := make([]Candidate, 0, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		rec := idx.At(i)
		candidates = append(candidates, Candidate{
			Score:       Score(term, rec),
			PID:         rec.PID,
			Name:        rec.Name,
			MemoryBytes: rec.MemoryBytes,
		})
	}
	return candidates
}
