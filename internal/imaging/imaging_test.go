package imaging_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OUDON/sigen/internal/imaging"
)

func grayImage(w, h int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill})
		}
	}
	return img
}

func TestBinarize_ThresholdsEachSliceIntoAVolumeLayer(t *testing.T) {
	bright := grayImage(3, 3, 255)
	dark := grayImage(3, 3, 0)

	b := imaging.NewBinarizer(128 << 8) // 0xFF >> matches 16-bit RGBA scaling
	vol := b.Binarize([]imaging.Slice{{Name: "0", Image: bright}, {Name: "1", Image: dark}})

	require.Equal(t, 3, vol.X)
	require.Equal(t, 3, vol.Y)
	require.Equal(t, 2, vol.Z)
	assert.True(t, vol.At(1, 1, 0))
	assert.False(t, vol.At(1, 1, 1))
}

func TestBinarize_EmptySliceListYieldsZeroVolume(t *testing.T) {
	b := imaging.NewBinarizer(0)
	vol := b.Binarize(nil)
	assert.Equal(t, 0, vol.X)
	assert.Equal(t, 0, vol.Y)
	assert.Equal(t, 0, vol.Z)
}
