// Package voxel implements the Extractor's internal voxel graph (spec
// §3): 26-connected component labeling (spec §4.2) and the double-BFS
// seed plus BFS distance field used to band a component into level-set
// shells (spec §4.3 Steps A and B). Voxels are never shared with the
// builder layer; only their positions leak out as geom.Point once a
// component has been sliced into clusters.
package voxel

import (
	"sort"

	"go.uber.org/zap"

	"github.com/OUDON/sigen/internal/geom"
	"github.com/OUDON/sigen/internal/volume"
	"github.com/OUDON/sigen/internal/walk"
)

// Voxel is a single foreground grid cell during labeling: a position, a
// mutable component label, and its 26-adjacent neighbors within the same
// foreground set.
type Voxel struct {
	Pos      geom.Point
	Label    int
	Adjacent []*Voxel
}

// Component is one 26-connected set of voxels, in the deterministic
// breadth-first order the flood fill reached them, starting from the
// component's lexicographically smallest voxel.
type Component []*Voxel

// BuildGraph scans vol for true voxels and links each one to every
// foreground voxel in its 26-neighborhood. Coordinates are visited in
// lexicographic (x, y, z) order, and each voxel's Adjacent slice is
// populated by enumerating geom.Offsets26 in that fixed order, so the
// resulting graph is fully reproducible across runs on the same input.
func BuildGraph(vol *volume.Binary) map[geom.Point]*Voxel {
	voxels := make(map[geom.Point]*Voxel)
	for x := 0; x < vol.X; x++ {
		for y := 0; y < vol.Y; y++ {
			for z := 0; z < vol.Z; z++ {
				if vol.At(x, y, z) {
					p := geom.Point{X: x, Y: y, Z: z}
					voxels[p] = &Voxel{Pos: p}
				}
			}
		}
	}

	offsets := geom.Offsets26()
	order := sortedPoints(voxels)
	for _, p := range order {
		v := voxels[p]
		for _, o := range offsets {
			if n, ok := voxels[p.Add(o[0], o[1], o[2])]; ok {
				v.Adjacent = append(v.Adjacent, n)
			}
		}
	}
	return voxels
}

func sortedPoints(voxels map[geom.Point]*Voxel) []geom.Point {
	order := make([]geom.Point, 0, len(voxels))
	for p := range voxels {
		order = append(order, p)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return order
}

// Label performs connected-component labeling over voxels (spec §4.2):
// iterating in lexicographic coordinate order, it flood-fills each
// unlabeled voxel's 26-connected set using an explicit queue (never
// recursive, per spec §5), then groups voxels by label and sorts the
// resulting components by size descending, ties broken by first-seed
// order (a stable sort over the discovery order).
func Label(voxels map[geom.Point]*Voxel, logger *zap.Logger) []Component {
	if logger == nil {
		logger = zap.NewNop()
	}
	order := sortedPoints(voxels)
	assigned := make(map[geom.Point]bool, len(voxels))
	var components []Component

	for _, p := range order {
		if assigned[p] {
			continue
		}
		label := len(components)
		comp := floodFill(voxels[p], label, assigned)
		components = append(components, comp)
	}

	sort.SliceStable(components, func(i, j int) bool {
		return len(components[i]) > len(components[j])
	})
	logger.Debug("voxel labeling complete",
		zap.Int("voxel_count", len(voxels)),
		zap.Int("component_count", len(components)))
	return components
}

// floodFill performs an iterative BFS over v's 26-connected neighborhood,
// assigning label to every voxel reached and marking it in assigned.
func floodFill(v *Voxel, label int, assigned map[geom.Point]bool) Component {
	var comp Component
	queue := []*Voxel{v}
	assigned[v.Pos] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cur.Label = label
		comp = append(comp, cur)
		for _, next := range cur.Adjacent {
			if !assigned[next.Pos] {
				assigned[next.Pos] = true
				queue = append(queue, next)
			}
		}
	}
	return comp
}

func voxelNeighbors(v *Voxel) []*Voxel { return v.Adjacent }

// Seed locates the pseudo-endpoint of a component via double-BFS (spec
// §4.3 Step A): starting from an arbitrary voxel, the last voxel visited
// by the first sweep seeds a second sweep, and the last voxel visited by
// that second sweep is the peripheral seed used to originate the
// component's distance field.
func Seed(c Component) *Voxel {
	return walk.DoubleBFS(c[0], voxelNeighbors)
}

// DistanceField runs a BFS from seed over c and assigns each voxel's
// Label to its BFS depth (spec §4.3 Step B), overwriting the component
// label that Label assigned. Distances are non-negative and the seed
// itself is labeled 0.
func DistanceField(c Component, seed *Voxel) {
	depth := walk.DistanceField(seed, voxelNeighbors)
	for _, v := range c {
		v.Label = depth[v.Pos]
	}
}

// SliceByDepth partitions a component (after DistanceField has run) into
// clusters: connected subsets of a single depth shell (spec §4.3 Step C).
// Multiple clusters can share a depth when that shell is itself
// disconnected, which is exactly how branch geometry acquires its own
// clusters. Each returned cluster is the ordered list of voxel positions
// collected by the BFS that discovered it.
func SliceByDepth(c Component) [][]geom.Point {
	visited := make(map[geom.Point]bool, len(c))
	var clusters [][]geom.Point
	for _, v := range c {
		if visited[v.Pos] {
			continue
		}
		depth := v.Label
		sameDepth := func(w *Voxel) []*Voxel {
			var out []*Voxel
			for _, n := range w.Adjacent {
				if n.Label == depth {
					out = append(out, n)
				}
			}
			return out
		}
		members := walk.BFSCollect(v, sameDepth)
		points := make([]geom.Point, len(members))
		for i, m := range members {
			points[i] = m.Pos
			visited[m.Pos] = true
		}
		clusters = append(clusters, points)
	}
	return clusters
}
