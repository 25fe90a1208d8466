package preprocess

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// Layout describes how the channel dimension of an image tensor is ordered.
type Layout int

const (
	// Planar puts the channel dimension first: all red values, then all
	// green, then all blue (NCHW).
	Planar Layout = iota
	// Interleaved puts the channel dimension last: R,G,B per pixel (NHWC).
	Interleaved
)

func (l Layout) String() string {
	if l == Planar {
		return "NCHW"
	}
	return "NHWC"
}

// InputSpec describes the model's image input: tensor name, layout and the
// exact spatial dimensions the model requires. Resolved once per model and
// cached for the classifier's lifetime.
type InputSpec struct {
	InputName string
	Layout    Layout
	Width     int
	Height    int
}

func (s InputSpec) String() string {
	return fmt.Sprintf("InputSpec{name=%s, layout=%s, size=%dx%d}",
		s.InputName, s.Layout, s.Width, s.Height)
}

// TensorDims returns the full rank-4 binding shape with batch=1.
func (s InputSpec) TensorDims() []int64 {
	if s.Layout == Planar {
		return []int64{1, 3, int64(s.Height), int64(s.Width)}
	}
	return []int64{1, int64(s.Height), int64(s.Width), 3}
}

// UnsupportedModelShapeError indicates the model does not match the
// single-rank-4-image-input assumption this package is built on.
type UnsupportedModelShapeError struct {
	Reason string
	Shape  []int64
}

func (e *UnsupportedModelShapeError) Error() string {
	if len(e.Shape) > 0 {
		return fmt.Sprintf("unsupported model shape %v: %s", e.Shape, e.Reason)
	}
	return "unsupported model shape: " + e.Reason
}

// ResolveInputSpec derives the image input spec from the model's declared
// inputs. It expects exactly one rank-4 input with a channel dimension of
// size 1 or 3 at index 1 (NCHW) or index 3 (NHWC); NCHW wins when both
// positions could match.
func ResolveInputSpec(inputs []ort.InputOutputInfo) (InputSpec, error) {
	if len(inputs) != 1 {
		return InputSpec{}, &UnsupportedModelShapeError{
			Reason: fmt.Sprintf("expected exactly one model input, found %d", len(inputs)),
		}
	}

	in := inputs[0]
	shape := []int64(in.Dimensions)
	if len(shape) != 4 {
		return InputSpec{}, &UnsupportedModelShapeError{
			Reason: "expected rank-4 image input",
			Shape:  shape,
		}
	}

	if isChannelDim(shape[1]) {
		h, err := spatialDim(shape[2], "height", shape)
		if err != nil {
			return InputSpec{}, err
		}
		w, err := spatialDim(shape[3], "width", shape)
		if err != nil {
			return InputSpec{}, err
		}
		return InputSpec{InputName: in.Name, Layout: Planar, Width: w, Height: h}, nil
	}

	if isChannelDim(shape[3]) {
		h, err := spatialDim(shape[1], "height", shape)
		if err != nil {
			return InputSpec{}, err
		}
		w, err := spatialDim(shape[2], "width", shape)
		if err != nil {
			return InputSpec{}, err
		}
		return InputSpec{InputName: in.Name, Layout: Interleaved, Width: w, Height: h}, nil
	}

	return InputSpec{}, &UnsupportedModelShapeError{
		Reason: "cannot detect channel dimension, expected size 1 or 3",
		Shape:  shape,
	}
}

func isChannelDim(d int64) bool {
	return d == 1 || d == 3
}

func spatialDim(d int64, label string, shape []int64) (int, error) {
	// -1 is common for the batch dimension only; H/W must be concrete.
	if d <= 0 {
		return 0, &UnsupportedModelShapeError{
			Reason: fmt.Sprintf("invalid %s dimension %d", label, d),
			Shape:  shape,
		}
	}
	return int(d), nil
}
