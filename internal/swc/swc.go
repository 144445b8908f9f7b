// Package swc serializes a neuron.Neuron to the SWC neuron-morphology
// text format (spec §6's SWC writer collaborator contract), grounded on
// original_source/src/writer/swc_writer.h. Lines are emitted as
// "id type x y z radius parent", ordered ascending by id.
package swc

import (
	"fmt"
	"io"
	"os"

	"github.com/OUDON/sigen/internal/neuron"
)

// DendriteType is the fixed SWC structure-identifier column this writer
// emits for every node (3 = dendrite, the conventional default for an
// unclassified tubular structure).
const DendriteType = 3

// Writer serializes neurons in the SWC format.
type Writer struct{}

// New returns a Writer.
func New() *Writer {
	return &Writer{}
}

// Write serializes n to w, one line per node, ordered ascending by id:
// "id type x y z radius parent".
func (*Writer) Write(w io.Writer, n *neuron.Neuron) error {
	for _, node := range n.SortedByID() {
		_, err := fmt.Fprintf(w, "%d %d %.6f %.6f %.6f %.6f %d\n",
			node.ID, DendriteType, node.Position.X, node.Position.Y, node.Position.Z, node.Radius, node.ParentID)
		if err != nil {
			return fmt.Errorf("swc: write node %d: %w", node.ID, err)
		}
	}
	return nil
}

// WriteFile serializes every neuron in neurons to a single file at path,
// one node per line, concatenated in input order. A multi-neuron result
// is valid SWC: distinct trees coexist in one file, each rooted at its
// own node with parent -1.
func WriteFile(path string, neurons []*neuron.Neuron) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("swc: create %s: %w", path, err)
	}
	defer f.Close()

	wr := New()
	for _, n := range neurons {
		if err := wr.Write(f, n); err != nil {
			return err
		}
	}
	return nil
}
