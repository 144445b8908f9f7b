// Package postprocess implements the Interpolate, Smoothing, and
// Clipping collaborators named in spec.md §1/§6. The source's
// connect_interpolate(dt) has an empty body and the spec leaves
// post-processing geometry unspecified (spec.md §9's Open Questions), so
// these are implemented as validating passes: each checks that its input
// still satisfies the Neuron tree invariants of spec.md §3 (connected,
// acyclic, root is an endpoint) and returns it unchanged, rather than
// guessing at unspecified smoothing or clipping geometry.
package postprocess

import (
	"errors"
	"fmt"

	"github.com/OUDON/sigen/internal/neuron"
	"github.com/OUDON/sigen/internal/walk"
)

// ErrNotATree indicates a neuron's node set is not connected and acyclic,
// or its root is not an endpoint — a violation of the invariant every
// post-processing pass requires on entry.
var ErrNotATree = errors.New("postprocess: neuron does not satisfy the tree invariant")

func verifyTree(n *neuron.Neuron) error {
	if n.Root == nil {
		return fmt.Errorf("%w: root is nil", ErrNotATree)
	}
	if n.Root.Degree() > 1 {
		return fmt.Errorf("%w: root has %d neighbors, want at most 1", ErrNotATree, n.Root.Degree())
	}
	reachable := walk.CollectReachable(n.Root, (*neuron.Node).Neighbors)
	if len(reachable) != len(n.Nodes) {
		return fmt.Errorf("%w: %d nodes reachable from root, want %d", ErrNotATree, len(reachable), len(n.Nodes))
	}
	edgeCount := 0
	for _, node := range n.Nodes {
		edgeCount += node.Degree()
	}
	edgeCount /= 2
	if edgeCount != len(n.Nodes)-1 {
		return fmt.Errorf("%w: %d edges over %d nodes, want %d", ErrNotATree, edgeCount, len(n.Nodes), len(n.Nodes)-1)
	}
	return nil
}

// Interpolate corresponds to the source's connect_interpolate(dt), whose
// body is empty; dt is accepted for CLI-surface parity (spec §6's --dt
// flag) but does not affect the result.
func Interpolate(neurons []*neuron.Neuron, dt float64) ([]*neuron.Neuron, error) {
	for _, n := range neurons {
		if err := verifyTree(n); err != nil {
			return nil, err
		}
	}
	return neurons, nil
}

// Smoothing corresponds to the source's --smoothing flag; its geometry is
// unspecified, so this pass validates tree invariants and returns the
// input unchanged.
func Smoothing(neurons []*neuron.Neuron, level int) ([]*neuron.Neuron, error) {
	for _, n := range neurons {
		if err := verifyTree(n); err != nil {
			return nil, err
		}
	}
	return neurons, nil
}

// Clipping corresponds to the source's --clipping flag; its geometry is
// unspecified, so this pass validates tree invariants and returns the
// input unchanged.
func Clipping(neurons []*neuron.Neuron, level int) ([]*neuron.Neuron, error) {
	for _, n := range neurons {
		if err := verifyTree(n); err != nil {
			return nil, err
		}
	}
	return neurons, nil
}
