// Package imaging implements the file-loading and binarization
// collaborators spec.md §6 requires to run the core end-to-end: an
// ordered image-stack Loader and an intensity-threshold Binarizer,
// grounded on original_source/src/reader/file_reader.cpp. No repo in the
// retrieval pack imports a third-party image codec, so this package uses
// the standard library's image/image/png/jpeg decoders (see DESIGN.md).
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/OUDON/sigen/internal/volume"
)

// Slice is one decoded grayscale image, addressed (x, y) with x in
// [0, Bounds.Dx()) and y in [0, Bounds.Dy()).
type Slice struct {
	Name  string
	Image image.Image
}

// Loader reads an ordered directory of image slices (spec §6 File
// loader contract). Logger may be nil (defaults to a no-op logger).
type Loader struct {
	Logger *zap.Logger
}

// NewLoader returns a Loader that logs through logger.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Logger: logger}
}

// Load enumerates dir's entries, sorts them lexicographically by
// filename (mirroring file_reader.cpp's std::sort(fnames)), and decodes
// each as an image, skipping any entry that fails to decode (directories,
// non-image files) rather than aborting the whole load.
func (l *Loader) Load(dir string) ([]Slice, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("imaging: read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var slices []Slice
	for _, name := range names {
		full := filepath.Join(dir, name)
		f, err := os.Open(full)
		if err != nil {
			l.Logger.Debug("imaging: skip unreadable file", zap.String("path", full), zap.Error(err))
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			l.Logger.Debug("imaging: skip undecodable file", zap.String("path", full), zap.Error(err))
			continue
		}
		slices = append(slices, Slice{Name: name, Image: img})
	}
	l.Logger.Info("imaging: load complete", zap.String("dir", dir), zap.Int("slices", len(slices)))
	return slices, nil
}

// Binarizer thresholds a decoded image stack into a volume.Binary (spec
// §6 Binarizer contract).
type Binarizer struct {
	// Threshold is the minimum grayscale intensity (0-65535, matching
	// color.Gray16's native range) for a pixel to be considered
	// foreground.
	Threshold uint32
}

// NewBinarizer returns a Binarizer with the given intensity threshold.
func NewBinarizer(threshold uint32) *Binarizer {
	return &Binarizer{Threshold: threshold}
}

// Binarize stacks slices along Z into a volume.Binary of dimensions
// (width, height, len(slices)), where width/height are taken from the
// first slice. A pixel is foreground iff its 16-bit Rec. 601 luminance
// (computed by gray16) is >= Threshold. An empty slice
// stack yields a zero-dimension volume.
func (b *Binarizer) Binarize(slices []Slice) *volume.Binary {
	if len(slices) == 0 {
		return volume.New(0, 0, 0)
	}

	bounds := slices[0].Image.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	vol := volume.New(width, height, len(slices))

	for z, s := range slices {
		sb := s.Image.Bounds()
		for y := 0; y < height && y < sb.Dy(); y++ {
			for x := 0; x < width && x < sb.Dx(); x++ {
				gray := gray16(s.Image.At(sb.Min.X+x, sb.Min.Y+y))
				if gray >= b.Threshold {
					vol.Set(x, y, z, true)
				}
			}
		}
	}
	return vol
}

func gray16(c interface{ RGBA() (r, g, b, a uint32) }) uint32 {
	r, g, bl, _ := c.RGBA()
	// Rec. 601 luma weights, matching the standard library's own
	// color.GrayModel conversion.
	return uint32((299*r + 587*g + 114*bl) / 1000)
}
