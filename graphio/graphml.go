package graphio

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yaricom/goGraphML/graphml"
)

// ErrNoGraph is returned for a GraphML document without a graph element.
var ErrNoGraph = errors.New("graphml: no graph in document")

// Attribute names, as understood by common graph tools.
const (
	attrLabel     = "Label"
	attrSize      = "size"
	attrWeight    = "weight"
	attrRunID     = "run_id"
	attrProfile   = "profile"
	attrPolicy    = "policy"
	attrThreshold = "threshold"
)

// WriteGraphML writes the graph as GraphML. Nodes are written in id order,
// edges once each.
func WriteGraphML(w io.Writer, g *Graph) error {
	doc := graphml.NewGraphML("")
	meta := make(map[string]interface{})
	for name, v := range map[string]string{
		attrRunID:   g.Meta.RunID,
		attrProfile: g.Meta.Profile,
		attrPolicy:  g.Meta.Policy,
	} {
		if v != "" {
			meta[name] = v
		}
	}
	if g.Meta.Threshold > 0 {
		meta[attrThreshold] = g.Meta.Threshold
	}
	gr, err := doc.AddGraph("", graphml.EdgeDirectionUndirected, meta)
	if err != nil {
		return fmt.Errorf("graphml: %w", err)
	}
	nodes := make(map[int64]*graphml.Node)
	for _, n := range g.Authors() {
		node, err := gr.AddNode(map[string]interface{}{
			attrLabel: n.Label,
			attrSize:  n.Size,
		}, "")
		if err != nil {
			return fmt.Errorf("graphml: node %s: %w", n.Label, err)
		}
		nodes[n.id] = node
	}
	for _, e := range g.Collaborations() {
		attrs := map[string]interface{}{attrWeight: e.W}
		if _, err := gr.AddEdge(nodes[e.F.id], nodes[e.T.id], attrs, graphml.EdgeDirectionDefault, ""); err != nil {
			return fmt.Errorf("graphml: edge %s-%s: %w", e.F.Label, e.T.Label, err)
		}
	}
	var buf bytes.Buffer
	if err := doc.Encode(&buf, true); err != nil {
		return fmt.Errorf("graphml: %w", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("<?xml")) {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ReadGraphML reads the first graph of a GraphML document. Attributes are
// matched by name, so files written by other tools work as long as they use
// "Label", "size" and "weight". A node without label is labeled with its id,
// an edge without weight has weight one.
func ReadGraphML(r io.Reader) (*Graph, error) {
	doc := graphml.NewGraphML("")
	if err := doc.Decode(r); err != nil {
		return nil, fmt.Errorf("graphml: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, ErrNoGraph
	}
	gr := doc.Graphs[0]
	names := make(map[string]string) // key id -> attribute name
	for _, k := range doc.Keys {
		names[k.ID] = k.Name
	}
	attrs := func(data []*graphml.Data) map[string]string {
		m := make(map[string]string, len(data))
		for _, d := range data {
			if name, ok := names[d.Key]; ok {
				m[name] = strings.TrimSpace(d.Value)
			}
		}
		return m
	}
	meta := attrs(gr.Data)
	g := New(Meta{
		RunID:   meta[attrRunID],
		Profile: meta[attrProfile],
		Policy:  meta[attrPolicy],
	})
	if v, ok := meta[attrThreshold]; ok {
		t, err := parseNumber(v)
		if err != nil {
			return nil, fmt.Errorf("graphml: threshold: %w", err)
		}
		g.Meta.Threshold = t
	}
	labels := make(map[string]string) // node id -> label
	for _, n := range gr.Nodes {
		m := attrs(n.Data)
		label, ok := m[attrLabel]
		if !ok || label == "" {
			label = n.ID
		}
		var size int
		if v, ok := m[attrSize]; ok {
			s, err := parseNumber(v)
			if err != nil {
				return nil, fmt.Errorf("graphml: node %s: size: %w", n.ID, err)
			}
			size = s
		}
		if _, err := g.AddAuthor(label, size); err != nil {
			return nil, fmt.Errorf("graphml: node %s: %w", n.ID, err)
		}
		labels[n.ID] = label
	}
	for _, e := range gr.Edges {
		weight := 1
		if v, ok := attrs(e.Data)[attrWeight]; ok {
			w, err := parseNumber(v)
			if err != nil {
				return nil, fmt.Errorf("graphml: edge %s-%s: weight: %w", e.Source, e.Target, err)
			}
			weight = w
		}
		a, ok := labels[e.Source]
		if !ok {
			return nil, fmt.Errorf("graphml: %w: %s", ErrUnknownNode, e.Source)
		}
		b, ok := labels[e.Target]
		if !ok {
			return nil, fmt.Errorf("graphml: %w: %s", ErrUnknownNode, e.Target)
		}
		if err := g.AddCollaboration(a, b, weight); err != nil {
			return nil, fmt.Errorf("graphml: %w", err)
		}
	}
	return g, nil
}

// parseNumber accepts integers and integral floats like "3.0", as written
// by some tools.
func parseNumber(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %s", s)
	}
	return int(f), nil
}
