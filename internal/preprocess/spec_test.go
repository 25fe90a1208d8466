package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"
)

func input(name string, dims ...int64) ort.InputOutputInfo {
	return ort.InputOutputInfo{Name: name, Dimensions: ort.NewShape(dims...)}
}

func TestResolveInputSpec(t *testing.T) {
	tests := []struct {
		name   string
		inputs []ort.InputOutputInfo
		want   InputSpec
	}{
		{
			name:   "nchw rgb",
			inputs: []ort.InputOutputInfo{input("data", 1, 3, 224, 224)},
			want:   InputSpec{InputName: "data", Layout: Planar, Width: 224, Height: 224},
		},
		{
			name:   "nchw grayscale",
			inputs: []ort.InputOutputInfo{input("x", 1, 1, 28, 28)},
			want:   InputSpec{InputName: "x", Layout: Planar, Width: 28, Height: 28},
		},
		{
			name:   "nchw non-square",
			inputs: []ort.InputOutputInfo{input("data", 1, 3, 240, 320)},
			want:   InputSpec{InputName: "data", Layout: Planar, Width: 320, Height: 240},
		},
		{
			name:   "nhwc rgb",
			inputs: []ort.InputOutputInfo{input("serving_default", 1, 180, 180, 3)},
			want:   InputSpec{InputName: "serving_default", Layout: Interleaved, Width: 180, Height: 180},
		},
		{
			name:   "dynamic batch nhwc",
			inputs: []ort.InputOutputInfo{input("in", -1, 299, 299, 3)},
			want:   InputSpec{InputName: "in", Layout: Interleaved, Width: 299, Height: 299},
		},
		{
			// Both d1 and d3 could be the channel dimension; NCHW wins.
			name:   "ambiguous prefers planar",
			inputs: []ort.InputOutputInfo{input("in", 1, 3, 3, 3)},
			want:   InputSpec{InputName: "in", Layout: Planar, Width: 3, Height: 3},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveInputSpec(tc.inputs)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveInputSpecRejects(t *testing.T) {
	tests := []struct {
		name   string
		inputs []ort.InputOutputInfo
	}{
		{"no inputs", nil},
		{
			"two inputs",
			[]ort.InputOutputInfo{input("a", 1, 3, 224, 224), input("b", 1, 3, 224, 224)},
		},
		{"rank 2", []ort.InputOutputInfo{input("in", 1, 784)}},
		{"rank 5", []ort.InputOutputInfo{input("in", 1, 3, 2, 224, 224)}},
		{"no channel dimension", []ort.InputOutputInfo{input("in", 1, 64, 64, 64)}},
		{"dynamic height nchw", []ort.InputOutputInfo{input("in", 1, 3, -1, 224)}},
		{"dynamic width nhwc", []ort.InputOutputInfo{input("in", 1, 224, -1, 3)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveInputSpec(tc.inputs)
			var shapeErr *UnsupportedModelShapeError
			require.ErrorAs(t, err, &shapeErr)
		})
	}
}

func TestInputSpecTensorDims(t *testing.T) {
	planar := InputSpec{InputName: "in", Layout: Planar, Width: 320, Height: 240}
	assert.Equal(t, []int64{1, 3, 240, 320}, planar.TensorDims())

	interleaved := InputSpec{InputName: "in", Layout: Interleaved, Width: 320, Height: 240}
	assert.Equal(t, []int64{1, 240, 320, 3}, interleaved.TensorDims())
}
