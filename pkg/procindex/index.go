// Package procindex holds the process snapshot every lookup runs against.
//
// An Index is built once at startup from whatever the process source returned
// and is never modified afterwards. Its order is the enumeration order of the
// source, and every stable sort downstream falls back to it on ties.
package procindex

import (
	"strconv"

	"github.com/charmbracelet/log"
)

// Record is one process as captured at snapshot time.
type Record struct {
	PID         int
	Name        string
	MemoryBytes uint64
}

// Display returns the "<pid> - <name>" form shown in completions.
func (r Record) Display() string {
	return strconv.Itoa(r.PID) + " - " + r.Name
}

// Index is an immutable, ordered process snapshot.
type Index struct {
	records []Record
	byPID   map[int]int
	dropped int
}

// New builds an Index from records, keeping their order.
// A pid seen twice keeps its first record; later ones are dropped.
func New(records []Record) *Index {
	idx := &Index{
		records: make([]Record, 0, len(records)),
		byPID:   make(map[int]int, len(records)),
	}
	for _, r := range records {
		if _, seen := idx.byPID[r.PID]; seen {
			idx.dropped++
			continue
		}
		idx.byPID[r.PID] = len(idx.records)
		idx.records = append(idx.records, r)
	}
	if idx.dropped > 0 {
		log.Debugf("Dropped %d duplicate pids from snapshot", idx.dropped)
	}
	return idx
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// At returns the record at position i.
func (idx *Index) At(i int) Record {
	return idx.records[i]
}

// Records returns a copy of all records in index order.
func (idx *Index) Records() []Record {
	out := make([]Record, len(idx.records))
	copy(out, idx.records)
	return out
}

// Lookup finds the record for pid.
func (idx *Index) Lookup(pid int) (Record, bool) {
	i, ok := idx.byPID[pid]
	if !ok {
		return Record{}, false
	}
	return idx.records[i], true
}

// Stats mirrors the completer stats map so callers can log both the same way.
func (idx *Index) Stats() map[string]int {
	return map[string]int{
		"records":        len(idx.records),
		"droppedRecords": idx.dropped,
	}
}
