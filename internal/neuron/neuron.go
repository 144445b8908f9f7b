// Package neuron implements the NeuronNode and Neuron types (spec §3,
// §4.6): the tree-structured output of the builder. Every node carries a
// 1-based id, a scaled position, a radius, and a role classification; a
// Neuron owns its nodes and points at a distinguished root.
package neuron

import (
	"errors"
	"sort"

	"github.com/OUDON/sigen/internal/geom"
)

// Role classifies a node by its neighbor count (spec §4.6 / GLOSSARY).
type Role int

const (
	// Edge is a tree endpoint: zero or one neighbor.
	Edge Role = iota
	// Connect is a chain link: exactly two neighbors.
	Connect
	// Branch is a fork: three or more neighbors.
	Branch
)

// String renders the role the way SWC consumers and logs expect to see
// it named.
func (r Role) String() string {
	switch r {
	case Edge:
		return "EDGE"
	case Connect:
		return "CONNECT"
	case Branch:
		return "BRANCH"
	default:
		return "UNKNOWN"
	}
}

// RoleFromDegree maps a neighbor count to its Role (spec §4.6):
// 3+ -> Branch, exactly 2 -> Connect, otherwise (0 or 1) -> Edge.
func RoleFromDegree(degree int) Role {
	switch {
	case degree >= 3:
		return Branch
	case degree == 2:
		return Connect
	default:
		return Edge
	}
}

// Node is one point of a reconstructed neuron tree.
type Node struct {
	ID       int
	Position geom.Vec3
	Radius   float64
	Role     Role
	ParentID int // -1 for the root

	adjacentOrder []*Node
	adjacentSet   map[*Node]struct{}
}

// NewNode constructs a node at the given scaled position and radius,
// with an empty adjacency set and ID left at its zero value until the
// builder's ID-assignment pass runs.
func NewNode(pos geom.Vec3, radius float64) *Node {
	return &Node{Position: pos, Radius: radius, ParentID: -1, adjacentSet: make(map[*Node]struct{})}
}

// AddEdge records a symmetric adjacency between n and other. Edges are
// kept in insertion order so that traversals over Neighbors remain
// reproducible across runs built from the same cluster adjacency.
func (n *Node) AddEdge(other *Node) {
	if other == n {
		return
	}
	if _, ok := n.adjacentSet[other]; ok {
		return
	}
	n.adjacentSet[other] = struct{}{}
	other.adjacentSet[n] = struct{}{}
	n.adjacentOrder = append(n.adjacentOrder, other)
	other.adjacentOrder = append(other.adjacentOrder, n)
}

// Neighbors returns n's adjacent nodes in the deterministic order they
// were added.
func (n *Node) Neighbors() []*Node {
	out := make([]*Node, len(n.adjacentOrder))
	copy(out, n.adjacentOrder)
	return out
}

// Degree returns the number of nodes adjacent to n.
func (n *Node) Degree() int {
	return len(n.adjacentOrder)
}

// ErrEmptyNeuron is returned by SetRoot when asked to root an empty
// storage list.
var ErrEmptyNeuron = errors.New("neuron: cannot set root of an empty neuron")

// Neuron owns a set of NeuronNodes and points at a distinguished root,
// which must be a member of Nodes (spec §3). After the builder completes
// §4.6, the induced graph on Nodes is connected and acyclic, and Root has
// at most one neighbor.
type Neuron struct {
	Nodes []*Node
	Root  *Node
}

// New returns an empty Neuron with no nodes and no root.
func New() *Neuron {
	return &Neuron{}
}

// AddNode appends node to the neuron's owning storage.
func (t *Neuron) AddNode(node *Node) {
	t.Nodes = append(t.Nodes, node)
}

// SetRoot designates root as the neuron's distinguished node. root must
// already be present in Nodes.
func (t *Neuron) SetRoot(root *Node) error {
	if len(t.Nodes) == 0 {
		return ErrEmptyNeuron
	}
	t.Root = root
	return nil
}

// SortedByID returns t.Nodes sorted ascending by ID, the order an SWC
// writer must emit lines in.
func (t *Neuron) SortedByID() []*Node {
	out := make([]*Node, len(t.Nodes))
	copy(out, t.Nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
