// Package volume implements the BinaryVolume data type (spec §3) and its
// Extractor pre-filter (spec §4.1): frame clearing and isolated-voxel
// removal. Both run before any labeling so that every interior 3x3x3
// stencil used later is guaranteed in-bounds.
package volume

import "github.com/OUDON/sigen/internal/geom"

// Binary is a dense X x Y x Z grid of booleans addressed by integer
// coordinates (x, y, z) with 0 <= x < X, 0 <= y < Y, 0 <= z < Z.
type Binary struct {
	X, Y, Z int
	data    []bool
}

// New allocates an all-false BinaryVolume of the given dimensions.
func New(x, y, z int) *Binary {
	return &Binary{X: x, Y: y, Z: z, data: make([]bool, x*y*z)}
}

// InBounds reports whether (x, y, z) addresses a cell of the volume.
func (b *Binary) InBounds(x, y, z int) bool {
	return x >= 0 && x < b.X && y >= 0 && y < b.Y && z >= 0 && z < b.Z
}

func (b *Binary) index(x, y, z int) int {
	return (x*b.Y+y)*b.Z + z
}

// At reports the voxel value at (x, y, z). Out-of-bounds coordinates read
// as false, matching the convention that anything outside the volume is
// background.
func (b *Binary) At(x, y, z int) bool {
	if !b.InBounds(x, y, z) {
		return false
	}
	return b.data[b.index(x, y, z)]
}

// Set assigns the voxel value at (x, y, z). Out-of-bounds coordinates are
// a no-op.
func (b *Binary) Set(x, y, z int, v bool) {
	if !b.InBounds(x, y, z) {
		return
	}
	b.data[b.index(x, y, z)] = v
}

// ClearFrame sets to false every voxel on the six outer faces (x=0 or
// X-1, y=0 or Y-1, z=0 or Z-1), guaranteeing all 26-neighborhoods of
// interior voxels are well defined (spec §4.1).
func (b *Binary) ClearFrame() {
	for x := 0; x < b.X; x++ {
		for y := 0; y < b.Y; y++ {
			b.Set(x, y, 0, false)
			b.Set(x, y, b.Z-1, false)
		}
	}
	for y := 0; y < b.Y; y++ {
		for z := 0; z < b.Z; z++ {
			b.Set(0, y, z, false)
			b.Set(b.X-1, y, z, false)
		}
	}
	for z := 0; z < b.Z; z++ {
		for x := 0; x < b.X; x++ {
			b.Set(x, 0, z, false)
			b.Set(x, b.Y-1, z, false)
		}
	}
}

// RemoveIsolatedVoxels clears any interior voxel whose entire 26-
// neighborhood is false, removing single-voxel noise before labeling.
// It reads from a snapshot taken before the pass and writes into b, so
// that clearing one voxel never cascades into clearing its neighbors
// within the same pass.
func (b *Binary) RemoveIsolatedVoxels() {
	snapshot := make([]bool, len(b.data))
	copy(snapshot, b.data)
	offsets := geom.Offsets26()

	for x := 1; x < b.X-1; x++ {
		for y := 1; y < b.Y-1; y++ {
			for z := 1; z < b.Z-1; z++ {
				if !snapshot[b.index(x, y, z)] {
					continue
				}
				any := false
				for _, o := range offsets {
					if snapshot[b.index(x+o[0], y+o[1], z+o[2])] {
						any = true
						break
					}
				}
				if !any {
					b.data[b.index(x, y, z)] = false
				}
			}
		}
	}
}
