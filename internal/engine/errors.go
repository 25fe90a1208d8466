package engine

import "fmt"

// ModelLoadError means the engine rejected the model file. Fatal to
// construction; never retried.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// InferenceError means engine execution itself failed. The session remains
// usable for subsequent calls.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// UnsupportedOutputShapeError means the model's output tensor does not match
// any of the flattenable shapes (N), (1,N) or (1,1,N).
type UnsupportedOutputShapeError struct {
	Shape []int64
}

func (e *UnsupportedOutputShapeError) Error() string {
	return fmt.Sprintf("unsupported output shape %v, expected (N), (1,N) or (1,1,N)", e.Shape)
}
