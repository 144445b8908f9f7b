package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OUDON/sigen/internal/extractor"
	"github.com/OUDON/sigen/internal/volume"
)

func TestExtract_EmptyVolumeYieldsNoClusters(t *testing.T) {
	vol := volume.New(5, 5, 5)
	ext := extractor.New(nil)

	clusters, err := ext.Extract(vol)
	require.NoError(t, err)
	assert.Empty(t, clusters)
}

func TestExtract_IsolatedVoxelYieldsNoClusters(t *testing.T) {
	// Scenario C: single isolated voxel, no neighbors.
	vol := volume.New(10, 10, 10)
	vol.Set(5, 5, 5, true)
	ext := extractor.New(nil)

	clusters, err := ext.Extract(vol)
	require.NoError(t, err)
	assert.Empty(t, clusters)
}

func TestExtract_Chain_OneClusterPerVoxel(t *testing.T) {
	// Scenario A: chain of 3 voxels along x.
	vol := volume.New(5, 5, 5)
	vol.Set(1, 2, 2, true)
	vol.Set(2, 2, 2, true)
	vol.Set(3, 2, 2, true)
	ext := extractor.New(nil)

	clusters, err := ext.Extract(vol)
	require.NoError(t, err)
	require.Len(t, clusters, 3)
	for _, c := range clusters {
		assert.Len(t, c.Points, 1)
	}
}

func TestExtract_TwoDisjointComponents_LargerFirst(t *testing.T) {
	// Scenario E: two unconnected cubes of different sizes.
	vol := volume.New(20, 20, 20)
	// Larger cube: a 3x3x1 slab of 9 voxels.
	for x := 1; x <= 3; x++ {
		for y := 1; y <= 3; y++ {
			vol.Set(x, y, 2, true)
		}
	}
	// Smaller cube: a single connected pair, far away.
	vol.Set(15, 15, 15, true)
	vol.Set(15, 15, 16, true)

	ext := extractor.New(nil)
	clusters, err := ext.Extract(vol)
	require.NoError(t, err)
	require.NotEmpty(t, clusters)

	// Every point from the smaller component must come after every point
	// from the larger one, since components are processed in descending
	// size order and clusters are concatenated in that order.
	largeComponentDone := false
	for _, c := range clusters {
		for _, p := range c.Points {
			if p.X == 15 {
				largeComponentDone = true
			} else if largeComponentDone {
				t.Fatalf("cluster from larger component appeared after smaller component's clusters")
			}
		}
	}
}
