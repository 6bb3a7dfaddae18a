package store

import (
	"sort"

	"squad/internal/models"
)

// TrendingHashtags counts non-empty hashtags across all posts and returns
// up to limit entries ordered by count descending. Equal counts keep the
// order in which the hashtag was first encountered, so the ranking is
// deterministic. A non-positive limit returns the full ranking.
func (s *Store) TrendingHashtags(limit int) []models.HashtagCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	var firstSeen []string
	for _, p := range s.state.Posts {
		if p.Hashtag == "" {
			continue
		}
		if _, ok := counts[p.Hashtag]; !ok {
			firstSeen = append(firstSeen, p.Hashtag)
		}
		counts[p.Hashtag]++
	}

	out := make([]models.HashtagCount, 0, len(firstSeen))
	for _, tag := range firstSeen {
		out = append(out, models.HashtagCount{Hashtag: tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
