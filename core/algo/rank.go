package algo

import (
	"sort"

	"github.com/huangsam/integral/schema"
)

// RankEntities returns a copy of entities sorted by final composite in
// descending order. Ties keep their input order. A positive limit keeps only
// the top 'limit' entities.
func RankEntities(entities []schema.EntityResult, limit int) []schema.EntityResult {
	ranked := make([]schema.EntityResult, len(entities))
	copy(ranked, entities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Integral100 > ranked[j].Integral100
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
