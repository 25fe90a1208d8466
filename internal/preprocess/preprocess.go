package preprocess

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// DecodeError indicates the source image cannot be sampled.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "cannot sample image: " + e.Reason
}

// Tensor resizes img to the spec's dimensions with bilinear interpolation and
// serializes it into a flat float buffer of length 3*W*H, laid out per the
// spec's layout and normalized per the profile. The buffer is fresh on every
// call; nothing is retained between calls.
func Tensor(img image.Image, spec InputSpec, profile Profile) ([]float32, error) {
	if img == nil {
		return nil, &DecodeError{Reason: "nil image"}
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("zero-area image %dx%d", bounds.Dx(), bounds.Dy())}
	}

	resized := resize.Resize(uint(spec.Width), uint(spec.Height), img, resize.Bilinear)

	w, h := spec.Width, spec.Height
	plane := w * h
	out := make([]float32, 3*plane)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, _ := resized.At(x, y).RGBA()
			r, g, b := profile.Normalize(uint8(r16>>8), uint8(g16>>8), uint8(b16>>8))

			p := y*w + x
			if spec.Layout == Planar {
				out[p] = r
				out[plane+p] = g
				out[2*plane+p] = b
			} else {
				out[3*p] = r
				out[3*p+1] = g
				out[3*p+2] = b
			}
		}
	}
	return out, nil
}
