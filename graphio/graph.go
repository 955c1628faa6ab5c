// Package graphio assembles the collaboration graph and writes it to disk.
package graphio

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/miku/collabnet/coauthor"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrUnknownNode is returned when an edge refers to a node that does not exist.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode is returned when an author is added twice.
	ErrDuplicateNode = errors.New("duplicate node")
)

// Meta describes how a graph was made.
type Meta struct {
	RunID     string `json:"run_id,omitempty"`
	Profile   string `json:"profile,omitempty"`
	Policy    string `json:"policy,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}

// Node is an author, sized by score.
type Node struct {
	id    int64
	Label string
	Size  int
}

func (n Node) ID() int64 { return n.id }

// DOTID uses the node id, since labels may contain any character.
func (n Node) DOTID() string { return "n" + strconv.FormatInt(n.id, 10) }

func (n Node) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: strconv.Quote(n.Label)},
		{Key: "size", Value: strconv.Itoa(n.Size)},
	}
}

// Edge is a collaboration between two authors, weighted by the number of
// shared records.
type Edge struct {
	F, T Node
	W    int
}

func (e Edge) From() graph.Node         { return e.F }
func (e Edge) To() graph.Node           { return e.T }
func (e Edge) ReversedEdge() graph.Edge { return Edge{F: e.T, T: e.F, W: e.W} }
func (e Edge) Weight() float64          { return float64(e.W) }

func (e Edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "weight", Value: strconv.Itoa(e.W)}}
}

// Graph is a weighted undirected collaboration graph. Node ids follow the
// author order they were added in.
type Graph struct {
	*simple.WeightedUndirectedGraph
	Meta Meta

	byLabel map[string]int64
}

// New returns an empty graph.
func New(meta Meta) *Graph {
	return &Graph{
		WeightedUndirectedGraph: simple.NewWeightedUndirectedGraph(0, 0),
		Meta:                    meta,
		byLabel:                 make(map[string]int64),
	}
}

// NewGraph assembles a graph from a filtered matrix and node scores. Every
// author in the matrix becomes a node, including authors without edges.
func NewGraph(m *coauthor.Matrix, scores map[string]int, meta Meta) (*Graph, error) {
	g := New(meta)
	for _, a := range m.Authors() {
		size, ok := scores[a]
		if !ok {
			return nil, fmt.Errorf("no score for author %q", a)
		}
		if _, err := g.AddAuthor(a, size); err != nil {
			return nil, err
		}
	}
	for _, e := range m.Edges() {
		if err := g.AddCollaboration(e.A, e.B, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddAuthor adds a node and returns it.
func (g *Graph) AddAuthor(label string, size int) (Node, error) {
	if _, ok := g.byLabel[label]; ok {
		return Node{}, fmt.Errorf("%w: %q", ErrDuplicateNode, label)
	}
	n := Node{id: int64(len(g.byLabel)), Label: label, Size: size}
	g.byLabel[label] = n.id
	g.WeightedUndirectedGraph.AddNode(n)
	return n, nil
}

// AddCollaboration sets the edge between two known authors.
func (g *Graph) AddCollaboration(a, b string, weight int) error {
	u, ok := g.Author(a)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, a)
	}
	v, ok := g.Author(b)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, b)
	}
	if u.id == v.id {
		return fmt.Errorf("self loop on %q", a)
	}
	g.SetWeightedEdge(Edge{F: u, T: v, W: weight})
	return nil
}

// Author returns the node for a label.
func (g *Graph) Author(label string) (Node, bool) {
	id, ok := g.byLabel[label]
	if !ok {
		return Node{}, false
	}
	return g.Node(id).(Node), true
}

// NumNodes returns the number of authors.
func (g *Graph) NumNodes() int { return len(g.byLabel) }

// Authors returns all nodes ordered by id.
func (g *Graph) Authors() []Node {
	result := make([]Node, 0, len(g.byLabel))
	for _, n := range graph.NodesOf(g.Nodes()) {
		result = append(result, n.(Node))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

// Collaborations returns every edge once, lower node id first, ordered by
// node ids.
func (g *Graph) Collaborations() []Edge {
	var result []Edge
	for _, n := range g.Authors() {
		for _, m := range graph.NodesOf(g.From(n.id)) {
			if m.ID() <= n.id {
				continue
			}
			w, _ := g.Weight(n.id, m.ID())
			result = append(result, Edge{F: n, T: m.(Node), W: int(w)})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].F.id != result[j].F.id {
			return result[i].F.id < result[j].F.id
		}
		return result[i].T.id < result[j].T.id
	})
	return result
}

// NumEdges returns the number of collaborations.
func (g *Graph) NumEdges() int { return len(g.Collaborations()) }
