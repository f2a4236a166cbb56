package search

import (
	"sort"

	"github.com/pagehound/pagehound/internal/models"
)

// GroupByURL aggregates ranked chunk results into per-URL groups. Each group's
// representative is its highest-scoring chunk (chunk ID ascending on exact
// score ties); the representative's title, snippet, and score become the
// group's. Groups are ordered by representative score descending with the same
// tie-break. Member chunks keep their ranked order.
func GroupByURL(results []*models.ChunkResult) []*models.ResultGroup {
	byURL := make(map[string]*models.ResultGroup)
	var order []string
	for _, r := range results {
		g, ok := byURL[r.URL]
		if !ok {
			g = &models.ResultGroup{URL: r.URL}
			byURL[r.URL] = g
			order = append(order, r.URL)
		}
		g.Chunks = append(g.Chunks, r)
	}

	groups := make([]*models.ResultGroup, 0, len(order))
	for _, url := range order {
		g := byURL[url]
		rep := g.Chunks[0]
		for _, c := range g.Chunks[1:] {
			if c.Score > rep.Score || (c.Score == rep.Score && c.ChunkID < rep.ChunkID) {
				rep = c
			}
		}
		g.Title = rep.Title
		g.Snippet = rep.Snippet
		g.Score = rep.Score
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Score != groups[j].Score {
			return groups[i].Score > groups[j].Score
		}
		return representative(groups[i]).ChunkID < representative(groups[j]).ChunkID
	})
	return groups
}

// representative returns the group's highest-scoring chunk, chunk ID ascending
// on ties. Group score is set from it in GroupByURL; this re-derives it for
// the inter-group tie-break.
func representative(g *models.ResultGroup) *models.ChunkResult {
	rep := g.Chunks[0]
	for _, c := range g.Chunks[1:] {
		if c.Score > rep.Score || (c.Score == rep.Score && c.ChunkID < rep.ChunkID) {
			rep = c
		}
	}
	return rep
}
