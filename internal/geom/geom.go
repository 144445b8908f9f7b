// Package geom holds the small coordinate types shared by the voxel,
// cluster, and neuron layers: an integer grid point and a real-valued
// 3D vector, plus the fixed 26-connected neighbor offsets used throughout
// the pipeline.
package geom

// Point is an integer 3D coordinate addressing a voxel in a BinaryVolume.
type Point struct {
	X, Y, Z int
}

// Add returns p shifted by the given offset.
func (p Point) Add(dx, dy, dz int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Vec3 is a real-valued 3D coordinate, used for centroids and scaled
// node positions.
type Vec3 struct {
	X, Y, Z float64
}

// Offsets26 returns the 26 integer offsets of Chebyshev distance 1,
// in a fixed, deterministic order (dx, then dy, then dz, ascending).
// Traversals that rely on reproducible visit order must enumerate
// neighbors using this slice rather than nested loops inline, so that
// two calls always produce identically ordered adjacency.
func Offsets26() [][3]int {
	offsets := make([][3]int, 0, 26)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offsets = append(offsets, [3]int{dx, dy, dz})
			}
		}
	}
	return offsets
}

// Offsets27 is Offsets26 plus the zero offset, matching the builder's
// connect-neighbor step which enumerates all 27 cells of the 3x3x3 block
// centered on each point.
func Offsets27() [][3]int {
	offsets := make([][3]int, 0, 27)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				offsets = append(offsets, [3]int{dx, dy, dz})
			}
		}
	}
	return offsets
}
