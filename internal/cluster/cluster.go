// Package cluster implements the Cluster type (spec §3, §4.4, §4.5): a
// connected group of voxel points with a centroid, a radius, and an
// adjacency set to neighboring clusters. Clusters are created by the
// extractor from a voxel slab and are then mutated in place by the
// builder (centroid, radius, adjacency) before being transmuted into
// neuron nodes.
package cluster

import (
	"errors"
	"math"
	"sort"

	"github.com/OUDON/sigen/internal/geom"
)

// ErrEmptyCluster is returned when a Cluster is constructed from an empty
// point list; spec §4.6 treats this as a precondition violation, not a
// degenerate input to tolerate silently.
var ErrEmptyCluster = errors.New("cluster: points must be non-empty")

// Cluster is a connected subset of a component's voxels restricted to a
// single BFS-depth shell (spec's GLOSSARY). Index is the cluster's
// position in the slice the extractor emitted it into; it is used as a
// deterministic tie-breaker when cluster identity needs a total order
// (spec §4.5's edge enumeration and sort).
type Cluster struct {
	Index    int
	Points   []geom.Point
	Centroid geom.Vec3
	Radius   float64

	adjacent map[*Cluster]struct{}
}

// New constructs a Cluster from a non-empty point list. The adjacency
// set, centroid, and radius are left zero-valued until ComputeCentroid
// and ComputeRadius run.
func New(points []geom.Point) (*Cluster, error) {
	if len(points) == 0 {
		return nil, ErrEmptyCluster
	}
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	return &Cluster{Points: pts, adjacent: make(map[*Cluster]struct{})}, nil
}

// ComputeCentroid sets Centroid to the componentwise arithmetic mean of
// Points (spec §4.4). It must run before ComputeRadius.
func (c *Cluster) ComputeCentroid() {
	var sx, sy, sz float64
	for _, p := range c.Points {
		sx += float64(p.X)
		sy += float64(p.Y)
		sz += float64(p.Z)
	}
	n := float64(len(c.Points))
	c.Centroid = geom.Vec3{X: sx / n, Y: sy / n, Z: sz / n}
}

// ComputeRadius sets Radius to the diagonal of the scaled axis-aligned
// envelope around Centroid (spec §4.4):
//
//	mdx = max scale_xy * |p.x - gx|, mdy analogous, mdz = max scale_z * |p.z - gz|
//	Radius = sqrt(mdx^2 + mdy^2 + mdz^2)
func (c *Cluster) ComputeRadius(scaleXY, scaleZ float64) {
	var mdx, mdy, mdz float64
	gx, gy, gz := c.Centroid.X, c.Centroid.Y, c.Centroid.Z
	for _, p := range c.Points {
		mdx = math.Max(mdx, scaleXY*math.Abs(float64(p.X)-gx))
		mdy = math.Max(mdy, scaleXY*math.Abs(float64(p.Y)-gy))
		mdz = math.Max(mdz, scaleZ*math.Abs(float64(p.Z)-gz))
	}
	c.Radius = math.Sqrt(mdx*mdx + mdy*mdy + mdz*mdz)
}

// AddEdge records a symmetric adjacency between c and other. It is a
// no-op if the edge already exists or if other == c.
func (c *Cluster) AddEdge(other *Cluster) {
	if other == c {
		return
	}
	c.adjacent[other] = struct{}{}
	other.adjacent[c] = struct{}{}
}

// RemoveEdge deletes the symmetric adjacency between c and other, if
// present.
func (c *Cluster) RemoveEdge(other *Cluster) {
	delete(c.adjacent, other)
	delete(other.adjacent, c)
}

// HasEdge reports whether c and other are adjacent.
func (c *Cluster) HasEdge(other *Cluster) bool {
	_, ok := c.adjacent[other]
	return ok
}

// Neighbors returns c's adjacent clusters, ordered by Index for
// deterministic iteration.
func (c *Cluster) Neighbors() []*Cluster {
	out := make([]*Cluster, 0, len(c.adjacent))
	for n := range c.adjacent {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Degree returns the number of clusters adjacent to c.
func (c *Cluster) Degree() int {
	return len(c.adjacent)
}
