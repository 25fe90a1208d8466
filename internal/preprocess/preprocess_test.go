package preprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestTensorUniformGrayUnitScale(t *testing.T) {
	spec := InputSpec{InputName: "in", Layout: Planar, Width: 8, Height: 8}
	img := uniformImage(50, 40, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	out, err := Tensor(img, spec, UnitScale())
	require.NoError(t, err)
	require.Len(t, out, 3*8*8)

	for i, v := range out {
		assert.InDelta(t, 128.0/255.0, v, 1e-3, "element %d", i)
	}
}

func TestTensorPlanarChannelOrder(t *testing.T) {
	spec := InputSpec{InputName: "in", Layout: Planar, Width: 4, Height: 4}
	img := uniformImage(10, 10, color.RGBA{R: 255, G: 128, B: 0, A: 255})

	out, err := Tensor(img, spec, UnitScale())
	require.NoError(t, err)
	require.Len(t, out, 48)

	plane := 16
	for p := 0; p < plane; p++ {
		assert.InDelta(t, 1.0, out[p], 1e-3)
		assert.InDelta(t, 128.0/255.0, out[plane+p], 1e-3)
		assert.InDelta(t, 0.0, out[2*plane+p], 1e-3)
	}
}

func TestTensorInterleavedChannelOrder(t *testing.T) {
	spec := InputSpec{InputName: "in", Layout: Interleaved, Width: 4, Height: 4}
	img := uniformImage(10, 10, color.RGBA{R: 255, G: 128, B: 0, A: 255})

	out, err := Tensor(img, spec, UnitScale())
	require.NoError(t, err)
	require.Len(t, out, 48)

	for p := 0; p < 16; p++ {
		assert.InDelta(t, 1.0, out[3*p], 1e-3)
		assert.InDelta(t, 128.0/255.0, out[3*p+1], 1e-3)
		assert.InDelta(t, 0.0, out[3*p+2], 1e-3)
	}
}

func TestTensorDeterministic(t *testing.T) {
	spec := InputSpec{InputName: "in", Layout: Planar, Width: 6, Height: 6}
	img := image.NewRGBA(image.Rect(0, 0, 12, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 25), B: uint8(x + y), A: 255})
		}
	}

	a, err := Tensor(img, spec, ImageNet())
	require.NoError(t, err)
	b, err := Tensor(img, spec, ImageNet())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTensorRejectsUnsampleableImage(t *testing.T) {
	spec := InputSpec{InputName: "in", Layout: Planar, Width: 4, Height: 4}

	var decodeErr *DecodeError
	_, err := Tensor(nil, spec, UnitScale())
	require.ErrorAs(t, err, &decodeErr)

	_, err = Tensor(image.NewRGBA(image.Rect(0, 0, 0, 0)), spec, UnitScale())
	require.ErrorAs(t, err, &decodeErr)
}
