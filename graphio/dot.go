package graphio

import (
	"io"

	"gonum.org/v1/gonum/graph/encoding/dot"
)

// WriteDOT writes the graph in graphviz format.
func WriteDOT(w io.Writer, g *Graph) error {
	b, err := dot.Marshal(g, "collabnet", "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
