package suggest

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// insertPosition appends pos to the positions stored under key.
func insertPosition(trie *patricia.Trie, key string, pos int) {
	k := patricia.Prefix(key)
	if item := trie.Get(k); item != nil {
		trie.Set(k, append(item.([]int), pos))
		return
	}
	trie.Insert(k, []int{pos})
}

// searchTrie collects every position stored under a key starting with prefix.
func searchTrie(trie *patricia.Trie, prefix string, seen []bool) []int {
	if trie == nil {
		return nil
	}

	var positions []int
	err := trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		list, ok := item.([]int)
		if !ok {
			log.Errorf("Unknown item type: %T for key %s", item, p)
			return nil
		}
		for _, pos := range list {
			if seen[pos] {
				continue
			}
			seen[pos] = true
			positions = append(positions, pos)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return positions
}
