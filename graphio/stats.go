package graphio

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/topo"
)

// Summary describes a collaboration graph.
type Summary struct {
	Meta        Meta           `json:"meta"`
	Nodes       int            `json:"nodes"`
	Edges       int            `json:"edges"`
	TotalWeight int            `json:"total_weight"`
	Isolated    int            `json:"isolated"`
	Components  int            `json:"components"`
	Largest     int            `json:"largest_component"`
	Density     float64        `json:"density"`
	TopAuthors  []AuthorDegree `json:"top_authors"`
}

// AuthorDegree is an author with its number of distinct co-authors and
// summed edge weight.
type AuthorDegree struct {
	Label       string  `json:"label"`
	Size        int     `json:"size"`
	Degree      int     `json:"degree"`
	Strength    int     `json:"strength"`
	Betweenness float64 `json:"betweenness,omitempty"`
}

// SummaryOptions control the more expensive parts of a summary.
type SummaryOptions struct {
	// Top is the number of authors listed, by strength.
	Top int
	// Betweenness computes betweenness centrality for listed authors.
	Betweenness bool
}

// Summarize computes counts and the most connected authors.
func Summarize(g *Graph, opts SummaryOptions) Summary {
	s := Summary{Meta: g.Meta, Nodes: g.NumNodes()}
	edges := g.Collaborations()
	s.Edges = len(edges)
	strength := make(map[int64]int)
	for _, e := range edges {
		s.TotalWeight += e.W
		strength[e.F.id] += e.W
		strength[e.T.id] += e.W
	}
	if s.Nodes > 1 {
		s.Density = 2 * float64(s.Edges) / float64(s.Nodes*(s.Nodes-1))
	}
	for _, cc := range topo.ConnectedComponents(g) {
		s.Components++
		if len(cc) == 1 {
			s.Isolated++
		}
		s.Largest = max(s.Largest, len(cc))
	}
	var authors []AuthorDegree
	ids := make(map[string]int64)
	for _, n := range g.Authors() {
		authors = append(authors, AuthorDegree{
			Label:    n.Label,
			Size:     n.Size,
			Degree:   g.From(n.id).Len(),
			Strength: strength[n.id],
		})
		ids[n.Label] = n.id
	}
	sort.SliceStable(authors, func(i, j int) bool {
		if authors[i].Strength != authors[j].Strength {
			return authors[i].Strength > authors[j].Strength
		}
		return authors[i].Degree > authors[j].Degree
	})
	if opts.Top >= 0 && opts.Top < len(authors) {
		authors = authors[:opts.Top]
	}
	if opts.Betweenness && len(authors) > 0 {
		b := network.Betweenness(g)
		for i := range authors {
			authors[i].Betweenness = b[ids[authors[i].Label]]
		}
	}
	s.TopAuthors = authors
	return s
}
