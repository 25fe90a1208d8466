// Package engine wraps the ONNX Runtime session lifecycle: environment
// init/teardown, model load, synchronous execution and output extraction.
package engine

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Runtime is an explicit, caller-constructed handle on the ONNX Runtime
// environment. The process environment is initialized once per Runtime and
// destroyed when the last user releases it; classifiers retain it for their
// lifetime so the environment outlives every open session.
type Runtime struct {
	mu   sync.Mutex
	refs int
}

// NewRuntime initializes the ONNX Runtime environment. libraryPath, if
// non-empty, points at the onnxruntime shared library to load; leave it empty
// to use the platform default search. The caller owns one reference and must
// Close it.
func NewRuntime(libraryPath string) (*Runtime, error) {
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime environment: %w", err)
	}
	return &Runtime{refs: 1}, nil
}

// Retain adds a reference. Each Retain must be paired with one Release.
func (r *Runtime) Retain() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs > 0 {
		r.refs++
	}
}

// Release drops a reference, destroying the environment when the count
// reaches zero. Releasing an already-dead runtime is a no-op.
func (r *Runtime) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refs == 0 {
		ort.DestroyEnvironment()
	}
}

// Close releases the caller's initial reference.
func (r *Runtime) Close() {
	r.Release()
}
