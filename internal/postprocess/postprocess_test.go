package postprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OUDON/sigen/internal/geom"
	"github.com/OUDON/sigen/internal/neuron"
	"github.com/OUDON/sigen/internal/postprocess"
)

func chainNeuron(t *testing.T) *neuron.Neuron {
	t.Helper()
	a := neuron.NewNode(geom.Vec3{}, 1)
	b := neuron.NewNode(geom.Vec3{}, 1)
	c := neuron.NewNode(geom.Vec3{}, 1)
	a.AddEdge(b)
	b.AddEdge(c)
	n := neuron.New()
	n.AddNode(a)
	n.AddNode(b)
	n.AddNode(c)
	require.NoError(t, n.SetRoot(a))
	return n
}

func TestInterpolate_ReturnsValidTreeUnchanged(t *testing.T) {
	n := chainNeuron(t)
	out, err := postprocess.Interpolate([]*neuron.Neuron{n}, 0.5)
	require.NoError(t, err)
	assert.Same(t, n, out[0])
}

func TestSmoothing_RejectsRootWithTwoNeighbors(t *testing.T) {
	n := chainNeuron(t)
	// Force an invalid root: the middle node has two neighbors.
	require.NoError(t, n.SetRoot(n.Nodes[1]))

	_, err := postprocess.Smoothing([]*neuron.Neuron{n}, 1)
	assert.ErrorIs(t, err, postprocess.ErrNotATree)
}

func TestClipping_RejectsDisconnectedNodeSet(t *testing.T) {
	a := neuron.NewNode(geom.Vec3{}, 1)
	stray := neuron.NewNode(geom.Vec3{}, 1)
	n := neuron.New()
	n.AddNode(a)
	n.AddNode(stray)
	require.NoError(t, n.SetRoot(a))

	_, err := postprocess.Clipping([]*neuron.Neuron{n}, 0)
	assert.ErrorIs(t, err, postprocess.ErrNotATree)
}
