package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OUDON/sigen/internal/builder"
	"github.com/OUDON/sigen/internal/cluster"
	"github.com/OUDON/sigen/internal/geom"
	"github.com/OUDON/sigen/internal/neuron"
)

func mustCluster(t *testing.T, points ...geom.Point) *cluster.Cluster {
	t.Helper()
	c, err := cluster.New(points)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsNonPositiveScale(t *testing.T) {
	_, err := builder.New(0, 1, nil)
	assert.ErrorIs(t, err, builder.ErrInvalidScale)

	_, err = builder.New(1, -1, nil)
	assert.ErrorIs(t, err, builder.ErrInvalidScale)
}

func TestBuild_EmptyClustersYieldsEmptyNeurons(t *testing.T) {
	b, err := builder.New(1, 1, nil)
	require.NoError(t, err)

	neurons, err := b.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, neurons)
}

func TestBuild_Chain_ProducesSingleLinearNeuron(t *testing.T) {
	// Scenario A: three clusters in a line, each a single point one apart.
	a := mustCluster(t, geom.Point{X: 0, Y: 0, Z: 0})
	b := mustCluster(t, geom.Point{X: 1, Y: 0, Z: 0})
	c := mustCluster(t, geom.Point{X: 2, Y: 0, Z: 0})
	a.Index, b.Index, c.Index = 0, 1, 2

	bd, err := builder.New(1, 1, nil)
	require.NoError(t, err)
	neurons, err := bd.Build([]*cluster.Cluster{a, b, c})
	require.NoError(t, err)
	require.Len(t, neurons, 1)

	n := neurons[0]
	require.Len(t, n.Nodes, 3)

	ids := make(map[int]bool)
	var edgeRole, middleRole *neuron.Node
	for _, node := range n.Nodes {
		ids[node.ID] = true
		if node.Degree() == 1 {
			edgeRole = node
		} else if node.Degree() == 2 {
			middleRole = node
		}
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, ids)
	require.NotNil(t, edgeRole)
	require.NotNil(t, middleRole)
	assert.Equal(t, neuron.Edge, edgeRole.Role)
	assert.Equal(t, neuron.Connect, middleRole.Role)
	assert.Equal(t, -1, n.Root.ParentID)
}

func TestBuild_TBranch_ClassifiesCenterAsBranch(t *testing.T) {
	// Scenario B: a center cluster adjacent to three arm clusters.
	center := mustCluster(t, geom.Point{X: 5, Y: 5, Z: 5})
	arm1 := mustCluster(t, geom.Point{X: 6, Y: 5, Z: 5})
	arm2 := mustCluster(t, geom.Point{X: 4, Y: 5, Z: 5})
	arm3 := mustCluster(t, geom.Point{X: 5, Y: 6, Z: 5})
	clusters := []*cluster.Cluster{center, arm1, arm2, arm3}
	for i, c := range clusters {
		c.Index = i
	}

	bd, err := builder.New(1, 1, nil)
	require.NoError(t, err)
	neurons, err := bd.Build(clusters)
	require.NoError(t, err)
	require.Len(t, neurons, 1)

	var branchCount, edgeCount int
	for _, node := range neurons[0].Nodes {
		switch node.Role {
		case neuron.Branch:
			branchCount++
			assert.Equal(t, 3, node.Degree())
		case neuron.Edge:
			edgeCount++
		}
	}
	assert.Equal(t, 1, branchCount)
	assert.Equal(t, 3, edgeCount)
}

func TestBuild_LoopCutting_LeavesASpanningForest(t *testing.T) {
	// Scenario D: four clusters arranged so every pair of clusters is
	// 26-adjacent, giving connect_neighbor all six edges and closing
	// several loops. cut_loops must still leave exactly one spanning
	// tree: 3 edges over 4 nodes.
	p0 := mustCluster(t, geom.Point{X: 0, Y: 0, Z: 0}, geom.Point{X: 0, Y: 1, Z: 0})
	p1 := mustCluster(t, geom.Point{X: 1, Y: 0, Z: 0}, geom.Point{X: 1, Y: 1, Z: 0})
	p2 := mustCluster(t, geom.Point{X: 1, Y: 2, Z: 0}, geom.Point{X: 1, Y: 3, Z: 0})
	p3 := mustCluster(t, geom.Point{X: 0, Y: 2, Z: 0}, geom.Point{X: 0, Y: 3, Z: 0})
	clusters := []*cluster.Cluster{p0, p1, p2, p3}
	for i, c := range clusters {
		c.Index = i
	}

	bd, err := builder.New(1, 1, nil)
	require.NoError(t, err)

	// Each cluster is two points one apart in y, so every radius is 0.5
	// and every edge weight ties at 0.5; cut_loops falls back to its
	// (a.Index, b.Index) tie-break.
	neurons, err := bd.Build(clusters)
	require.NoError(t, err)
	require.Len(t, neurons, 1)

	totalEdges := 0
	for _, node := range neurons[0].Nodes {
		totalEdges += node.Degree()
	}
	totalEdges /= 2
	assert.Equal(t, 3, totalEdges, "a 4-node forest must have exactly 3 edges")
}

func TestBuild_SingleCluster_IsItsOwnRoot(t *testing.T) {
	only := mustCluster(t, geom.Point{X: 0, Y: 0, Z: 0})
	only.Index = 0

	bd, err := builder.New(2, 3, nil)
	require.NoError(t, err)
	neurons, err := bd.Build([]*cluster.Cluster{only})
	require.NoError(t, err)
	require.Len(t, neurons, 1)
	require.Len(t, neurons[0].Nodes, 1)
	assert.Same(t, neurons[0].Nodes[0], neurons[0].Root)
	assert.Equal(t, 1, neurons[0].Root.ID)
	assert.Equal(t, neuron.Edge, neurons[0].Root.Role)
}
