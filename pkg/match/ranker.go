package match

import (
	"sort"
	"time"

	"github.com/bastiangx/procseek/pkg/query"
	"github.com/charmbracelet/log"
)

// DefaultThreshold is the score a candidate must strictly exceed to be ranked.
const DefaultThreshold = 0.7

// CPUTimer looks up the accumulated CPU time of a live process.
type CPUTimer interface {
	CPUTime(pid int) (time.Duration, error)
}

// Rank drops candidates scoring at or below threshold and orders the rest.
//
// Without a directive the order is descending score, ties keeping their input
// order. ByMemory and ByCPUTime ignore the score and sort descending by memory
// or by CPU time, ties keeping index order. For ByCPUTime each survivor is looked up once through cpu;
// a failed lookup counts as zero and the candidate stays in the result.
func Rank(candidates []Candidate, directive query.Directive, cpu CPUTimer, threshold float64) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score > threshold {
			ranked = append(ranked, c)
		}
	}

	switch directive {
	case query.ByMemory:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].MemoryBytes > ranked[j].MemoryBytes
		})
	case query.ByCPUTime:
		sortByCPUTime(ranked, cpu)
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
	}

	return ranked
}

func sortByCPUTime(ranked []Candidate, cpu CPUTimer) {
	if cpu == nil {
		log.Warn("No CPU time source, keeping index order")
		return
	}

	times := make(map[int]time.Duration, len(ranked))
	for _, c := range ranked {
		d, err := cpu.CPUTime(c.PID)
		if err != nil {
			log.Debugf("CPU time lookup failed for pid %d: %v", c.PID, err)
			d = 0
		}
		times[c.PID] = d
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return times[ranked[i].PID] > times[ranked[j].PID]
	})
}
