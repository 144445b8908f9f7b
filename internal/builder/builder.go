// Package builder implements the Builder pipeline stage (spec §2,
// §4.4-§4.6): centroid and radius computation, cluster adjacency
// recovery, loop removal by maximum-weight spanning forest, and the
// reduction of each remaining connected component of clusters into a
// rooted neuron tree with assigned ids and role classifications.
package builder

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/OUDON/sigen/internal/cluster"
	"github.com/OUDON/sigen/internal/dsu"
	"github.com/OUDON/sigen/internal/geom"
	"github.com/OUDON/sigen/internal/neuron"
	"github.com/OUDON/sigen/internal/walk"
)

// ErrInvalidScale is returned by New when either scale is not positive.
var ErrInvalidScale = errors.New("builder: scale_xy and scale_z must be positive")

// ErrAsymmetricAdjacency indicates connect_neighbor produced a directed
// edge; it signals a defect in the builder itself, not bad input.
var ErrAsymmetricAdjacency = errors.New("builder: cluster adjacency is not symmetric")

// ErrLoopCutNotAForest indicates cut_loops left a cycle behind; a defect
// in the loop-cutting pass or its input weights.
var ErrLoopCutNotAForest = errors.New("builder: cluster adjacency graph is not a forest after cut_loops")

// ErrRoleMismatch indicates a node's assigned Role disagrees with its
// actual neighbor count after compute_node_type.
var ErrRoleMismatch = errors.New("builder: node role disagrees with neighbor count")

// Builder reduces a list of clusters into a list of rooted neuron trees.
type Builder struct {
	scaleXY, scaleZ float64
	logger          *zap.Logger

	radiusComputed bool
}

// New validates the anisotropic scale factors and returns a Builder.
// Both scales must be strictly positive (spec §7: a negative scale is a
// precondition violation).
func New(scaleXY, scaleZ float64, logger *zap.Logger) (*Builder, error) {
	if scaleXY <= 0 || scaleZ <= 0 {
		return nil, ErrInvalidScale
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{scaleXY: scaleXY, scaleZ: scaleZ, logger: logger}, nil
}

// Build runs the full pipeline: compute_gravity_point, compute_radius,
// connect_neighbor, cut_loops, convert_to_neuron, compute_id, and
// compute_node_type (spec §4.4-§4.6). An empty cluster list yields an
// empty, non-error neuron list.
func (b *Builder) Build(clusters []*cluster.Cluster) ([]*neuron.Neuron, error) {
	if len(clusters) == 0 {
		return nil, nil
	}

	b.computeGravityPoints(clusters)
	b.computeRadii(clusters)

	if err := b.connectNeighbors(clusters); err != nil {
		return nil, err
	}
	if err := b.verifySymmetric(clusters); err != nil {
		return nil, err
	}
	if err := b.cutLoops(clusters); err != nil {
		return nil, err
	}
	if err := b.verifyForest(clusters); err != nil {
		return nil, err
	}

	neurons, err := b.convertToNeuron(clusters)
	if err != nil {
		return nil, err
	}
	b.computeIDs(neurons)
	if err := b.computeRoles(neurons); err != nil {
		return nil, err
	}

	b.logger.Info("builder: build complete",
		zap.Int("cluster_count", len(clusters)),
		zap.Int("neuron_count", len(neurons)))
	return neurons, nil
}

// computeGravityPoints sets every cluster's centroid (spec §4.4).
func (b *Builder) computeGravityPoints(clusters []*cluster.Cluster) {
	for _, c := range clusters {
		c.ComputeCentroid()
	}
}

// computeRadii sets every cluster's radius from the already-computed
// centroid (spec §4.4), and records that radii are now available so
// cutLoops is permitted to run.
func (b *Builder) computeRadii(clusters []*cluster.Cluster) {
	for _, c := range clusters {
		c.ComputeRadius(b.scaleXY, b.scaleZ)
	}
	b.radiusComputed = true
}

// connectNeighbors builds a point -> cluster-index multimap covering
// every point of every cluster, then for each point of each cluster
// enumerates the 27 offsets of its surrounding block and adds a
// symmetric edge to every other cluster that owns a hit (spec §4.5).
func (b *Builder) connectNeighbors(clusters []*cluster.Cluster) error {
	pointOwner := make(map[geom.Point][]int)
	for i, c := range clusters {
		for _, p := range c.Points {
			pointOwner[p] = append(pointOwner[p], i)
		}
	}

	offsets := geom.Offsets27()
	for i, c := range clusters {
		for _, p := range c.Points {
			for _, o := range offsets {
				q := p.Add(o[0], o[1], o[2])
				for _, j := range pointOwner[q] {
					if j != i {
						c.AddEdge(clusters[j])
					}
				}
			}
		}
	}
	b.logger.Debug("builder: connect_neighbor complete")
	return nil
}

// verifySymmetric checks the post-condition that cluster adjacency is
// symmetric and irreflexive (spec §8 invariant 4). A violation here
// indicates a defect in connectNeighbors, not bad input.
func (b *Builder) verifySymmetric(clusters []*cluster.Cluster) error {
	for _, c := range clusters {
		for _, n := range c.Neighbors() {
			if n == c {
				return fmt.Errorf("%w: cluster %d is adjacent to itself", ErrAsymmetricAdjacency, c.Index)
			}
			if !n.HasEdge(c) {
				return fmt.Errorf("%w: cluster %d -> %d has no reverse edge", ErrAsymmetricAdjacency, c.Index, n.Index)
			}
		}
	}
	return nil
}

// weightedEdge is one undirected edge enumerated once, a < b by index.
type weightedEdge struct {
	a, b   *cluster.Cluster
	weight float64
}

// cutLoops removes loop-closing edges by a maximum-weight spanning
// forest (spec §4.5): edges are weighted by the average of their
// endpoints' radii, sorted descending (ties broken by ascending
// (a.Index, b.Index) for determinism), and walked with a DSU — an edge
// whose endpoints already share a root is removed, otherwise the
// endpoints are unioned and the edge kept.
func (b *Builder) cutLoops(clusters []*cluster.Cluster) error {
	if !b.radiusComputed {
		return errors.New("builder: cut_loops requires radii to be computed first")
	}

	var edges []weightedEdge
	for _, c := range clusters {
		for _, n := range c.Neighbors() {
			if c.Index < n.Index {
				edges = append(edges, weightedEdge{a: c, b: n, weight: (c.Radius + n.Radius) / 2})
			}
		}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].weight != edges[j].weight {
			return edges[i].weight > edges[j].weight
		}
		if edges[i].a.Index != edges[j].a.Index {
			return edges[i].a.Index < edges[j].a.Index
		}
		return edges[i].b.Index < edges[j].b.Index
	})

	u := dsu.New[*cluster.Cluster]()
	for _, c := range clusters {
		u.Add(c)
	}
	u.Setup()

	removed := 0
	for _, e := range edges {
		same, err := u.Same(e.a, e.b)
		if err != nil {
			return fmt.Errorf("builder: cut_loops: %w", err)
		}
		if same {
			e.a.RemoveEdge(e.b)
			removed++
			continue
		}
		if err := u.Merge(e.a, e.b); err != nil {
			return fmt.Errorf("builder: cut_loops: %w", err)
		}
	}
	b.logger.Debug("builder: cut_loops complete", zap.Int("edges_removed", removed))
	return nil
}

// verifyForest checks the post-condition that cluster adjacency is now
// acyclic (spec §8 invariant 5): a connected component of N clusters must
// have exactly N-1 edges.
func (b *Builder) verifyForest(clusters []*cluster.Cluster) error {
	visited := make(map[*cluster.Cluster]bool, len(clusters))
	for _, start := range clusters {
		if visited[start] {
			continue
		}
		members := walk.CollectReachable(start, (*cluster.Cluster).Neighbors)
		edgeCount := 0
		for _, m := range members {
			visited[m] = true
			edgeCount += m.Degree()
		}
		edgeCount /= 2
		if edgeCount != len(members)-1 {
			return fmt.Errorf("%w: component of %d clusters has %d edges", ErrLoopCutNotAForest, len(members), edgeCount)
		}
	}
	return nil
}

// convertToNeuron translates clusters into NeuronNodes one-to-one,
// carries cluster adjacency over as node adjacency, and splits the node
// set into neurons by walking unvisited nodes and DFS-collecting each
// one's reachable set (spec §4.6).
func (b *Builder) convertToNeuron(clusters []*cluster.Cluster) ([]*neuron.Neuron, error) {
	nodes := make([]*neuron.Node, len(clusters))
	nodeOf := make(map[*cluster.Cluster]*neuron.Node, len(clusters))
	for i, c := range clusters {
		pos := geom.Vec3{
			X: c.Centroid.X * b.scaleXY,
			Y: c.Centroid.Y * b.scaleXY,
			Z: c.Centroid.Z * b.scaleZ,
		}
		n := neuron.NewNode(pos, c.Radius)
		nodes[i] = n
		nodeOf[c] = n
	}
	for _, c := range clusters {
		for _, adj := range c.Neighbors() {
			if c.Index < adj.Index {
				nodeOf[c].AddEdge(nodeOf[adj])
			}
		}
	}

	var neurons []*neuron.Neuron
	visited := make(map[*neuron.Node]bool, len(nodes))
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		root := walk.DoubleBFS(start, (*neuron.Node).Neighbors)
		members := walk.CollectReachable(start, (*neuron.Node).Neighbors)

		t := neuron.New()
		for _, m := range members {
			visited[m] = true
			t.AddNode(m)
		}
		if err := t.SetRoot(root); err != nil {
			return nil, err
		}
		neurons = append(neurons, t)
	}
	return neurons, nil
}

// computeIDs assigns a globally unique, contiguous id to every node
// across every neuron (spec §4.6): a DFS from each root, carrying a
// parent reference and a shared monotonic counter starting at 1. Tree
// depth after loop cutting is small, so a recursive DFS is acceptable
// here (spec §5's recursion exception).
func (b *Builder) computeIDs(neurons []*neuron.Neuron) {
	id := 1
	for _, t := range neurons {
		id = assignID(t.Root, nil, id)
	}
}

func assignID(cur, parent *neuron.Node, id int) int {
	cur.ID = id
	id++
	if parent != nil {
		cur.ParentID = parent.ID
	}
	for _, next := range cur.Neighbors() {
		if next != parent {
			id = assignID(next, cur, id)
		}
	}
	return id
}

// computeRoles assigns each node's Role from its neighbor count (spec
// §4.6) and verifies the post-condition that Role agrees with |adjacent|
// (spec §8 invariant 8).
func (b *Builder) computeRoles(neurons []*neuron.Neuron) error {
	for _, t := range neurons {
		for _, n := range t.Nodes {
			n.Role = neuron.RoleFromDegree(n.Degree())
			if n.Role != neuron.RoleFromDegree(n.Degree()) {
				return fmt.Errorf("%w: node %d", ErrRoleMismatch, n.ID)
			}
		}
	}
	return nil
}
