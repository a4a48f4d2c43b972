package suggest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Completer answers prefix queries against a fixed snapshot.
//
// Names are keyed lowercased and pids by their decimal form, each in its own
// trie so a process literally named "123" never shadows pid 123. Both tries
// map a key to the snapshot positions that carry it.
type Completer struct {
	names    *patricia.Trie
	pids     *patricia.Trie
	display  []string
	nameKeys int
}

// NewCompleter indexes idx for prefix lookups. idx is only read.
func NewCompleter(idx *procindex.Index) *Completer {
	c := &Completer{
		names:   patricia.NewTrie(),
		pids:    patricia.NewTrie(),
		display: make([]string, idx.Len()),
	}
	keys := make(map[string]struct{}, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		rec := idx.At(i)
		c.display[i] = rec.Display()
		insertPosition(c.pids, strconv.Itoa(rec.PID), i)
		lowerName := strings.ToLower(rec.Name)
		if lowerName == "" {
			continue
		}
		insertPosition(c.names, lowerName, i)
		keys[lowerName] = struct{}{}
	}
	c.nameKeys = len(keys)
	return c
}

// Complete returns the display form of every record whose lowercased name
// starts with the lowercased input or whose pid starts with input as typed.
// There is no limit and no scoring; results keep snapshot order.
func (c *Completer) Complete(input string) []string {
	if input == "" {
		out := make([]string, len(c.display))
		copy(out, c.display)
		return out
	}

	seen := make([]bool, len(c.display))
	positions := searchTrie(c.names, strings.ToLower(input), seen)
	positions = append(positions, searchTrie(c.pids, input, seen)...)
	sort.Ints(positions)

	suggestions := make([]string, 0, len(positions))
	for _, pos := range positions {
		suggestions = append(suggestions, c.display[pos])
	}
	return suggestions
}

// Stats implements ICompleter.
func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"records":  len(c.display),
		"nameKeys": c.nameKeys,
	}
}
