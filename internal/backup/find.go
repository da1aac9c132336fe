package backup

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrNoMatch = errors.New("no backup matches")

// Find picks the backup whose label or file name matches query. An
// exact match wins; otherwise the closest fuzzy match on the label is
// used.
func (s *Store) Find(query string) (Entry, error) {
	entries, err := s.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Label == query || e.Name == query {
			return e, nil
		}
	}

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	}
	sort.Sort(ranks)
	return entries[ranks[0].OriginalIndex], nil
}
