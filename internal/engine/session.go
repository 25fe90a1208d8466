package engine

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// Session owns one loaded model and runs single-image inference against it.
// Run must never be called concurrently on the same Session: the underlying
// engine handle is not guaranteed thread-safe for concurrent execution.
type Session struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
}

// Inspect reads a model's declared inputs and outputs without creating a
// session. Fails with ModelLoadError when the engine rejects the file.
func Inspect(modelPath string) (inputs, outputs []ort.InputOutputInfo, err error) {
	inputs, outputs, err = ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, nil, &ModelLoadError{Path: modelPath, Err: err}
	}
	return inputs, outputs, nil
}

// OpenSession loads the model and binds the given input and output names.
// The session holds native resources until Destroy.
func OpenSession(modelPath, inputName, outputName string) (*Session, error) {
	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{inputName}, []string{outputName}, nil)
	if err != nil {
		return nil, &ModelLoadError{Path: modelPath, Err: err}
	}
	return &Session{
		session:    session,
		inputName:  inputName,
		outputName: outputName,
	}, nil
}

// Run executes the model once on a flat input tensor of the given rank-4
// dims and returns the flattened class-score vector. The input tensor is
// created and destroyed per call; the engine allocates the output, which is
// copied out and released before returning.
func (s *Session) Run(input []float32, dims []int64) ([]float32, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(dims...), input)
	if err != nil {
		return nil, &InferenceError{Err: fmt.Errorf("failed to create input tensor: %w", err)}
	}
	defer inputTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, &InferenceError{Err: err}
	}
	defer outputs[0].Destroy()

	outputTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, &UnsupportedOutputShapeError{Shape: []int64(outputs[0].GetShape())}
	}
	return FlattenScores([]int64(outputTensor.GetShape()), outputTensor.GetData())
}

// Destroy releases the session's native resources.
func (s *Session) Destroy() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	return err
}
