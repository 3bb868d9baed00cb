package report

import (
	"sort"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// RankArticles orders related articles by relevance descending with a
// stable sort, so ties keep their insertion order and re-ranking an
// already-sorted list is a no-op. Duplicates (same lower-cased title) keep
// the first occurrence. max <= 0 means unlimited.
func RankArticles(articles []model.Article, max int) []model.Article {
	seen := make(map[string]bool, len(articles))
	unique := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		key := strings.ToLower(strings.TrimSpace(a.Title))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].RelevanceScore > unique[j].RelevanceScore
	})

	if max > 0 && len(unique) > max {
		unique = unique[:max]
	}
	return unique
}
