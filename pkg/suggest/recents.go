package suggest

import (
	"errors"
	"strings"

	"github.com/bastiangx/eventserve/pkg/places"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// errEnough aborts a trie visit once the limit is reached.
var errEnough = errors.New("enough matches")

// recentIndex is an in-memory prefix index over localities the user has
// picked this session. It backs the dropdown for inputs too short to send
// upstream. Nothing is persisted.
type recentIndex struct {
	trie *patricia.Trie
}

func newRecentIndex() *recentIndex {
	return &recentIndex{trie: patricia.NewTrie()}
}

// add stores a picked suggestion under its lowercased name.
// Re-picking the same locality just overwrites the item.
func (ri *recentIndex) add(s places.Suggestion) {
	ri.trie.Insert(patricia.Prefix(strings.ToLower(s.Name)), s)
}

// match returns up to limit recent picks whose name starts with prefix,
// in trie order. Callers hold the engine lock.
func (ri *recentIndex) match(prefix string, limit int) []places.Suggestion {
	var out []places.Suggestion

	err := ri.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, item patricia.Item) error {
		s, ok := item.(places.Suggestion)
		if !ok {
			log.Errorf("Unknown item type %T in recents index for %s", item, p)
			return nil
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			return errEnough
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEnough) {
		log.Errorf("Error visiting recents subtree: %v", err)
	}

	return out
}
