package command

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// SearchResult is a command matched by Search.
type SearchResult struct {
	Command *Command

	// Score ranks the result; higher is better.
	Score int

	// Matches holds the byte offsets of matched characters in Command.Label().
	Matches []int
}

// recentBoost is added to the score of the most recently executed command;
// older history entries get one point less per position.
const recentBoost = 100

type labels []*Command

func (l labels) String(i int) string { return l[i].Label() }
func (l labels) Len() int            { return len(l) }

// Search fuzzy-matches query against command labels. An empty query lists
// recently executed commands first, then the rest in registration order.
// A non-positive limit returns every match.
func (r *Registry) Search(query string, limit int) []SearchResult {
	cmds := r.All()

	var results []SearchResult
	if query == "" {
		results = make([]SearchResult, 0, len(cmds))
		for _, cmd := range cmds {
			results = append(results, SearchResult{Command: cmd})
		}
	} else {
		matches := fuzzy.FindFrom(query, labels(cmds))
		results = make([]SearchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, SearchResult{
				Command: cmds[m.Index],
				Score:   m.Score,
				Matches: m.MatchedIndexes,
			})
		}
	}

	for i := range results {
		if pos := r.history.Position(results[i].Command.ID); pos >= 0 && pos < recentBoost {
			results[i].Score += recentBoost - pos
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
