// Package classifier is the composition root of the inference pipeline:
// constructed once per model, it resolves the model's input spec, picks a
// normalization profile, serializes classification calls through a dedicated
// worker and turns raw engine output into ranked, labeled results.
package classifier

import (
	"errors"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mdilab/imageclassifier/internal/engine"
	"github.com/mdilab/imageclassifier/internal/preprocess"
	"github.com/mdilab/imageclassifier/internal/ranker"
)

// ErrClassifierClosed is returned by classification calls made after Close.
var ErrClassifierClosed = errors.New("classifier is closed")

// invoker is the synchronous execution half of the engine, narrowed to what
// the classifier needs so tests can substitute a fake.
type invoker interface {
	Run(input []float32, dims []int64) ([]float32, error)
	Destroy() error
}

// Outcome carries one classification's result or its error.
type Outcome struct {
	Result ranker.RankedResult
	Err    error
}

type task struct {
	img  image.Image
	topK int
	out  chan Outcome
}

// Classifier wraps one loaded model. All classification calls against one
// Classifier execute strictly in submission order on a single worker; use
// separate Classifier instances for parallel inference.
type Classifier struct {
	spec    preprocess.InputSpec
	profile preprocess.Profile
	labels  []string
	logger  *zap.Logger

	session invoker
	runtime *engine.Runtime

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []task
	closed bool
	done   chan struct{}
}

type options struct {
	logger  *zap.Logger
	profile *preprocess.Profile
	labels  []string
}

// Option customizes Open.
type Option func(*options)

// WithLogger attaches a structured logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithProfile overrides the filename-heuristic normalization profile.
func WithProfile(p preprocess.Profile) Option {
	return func(o *options) { o.profile = &p }
}

// WithLabels supplies class labels directly, taking precedence over any
// labels file.
func WithLabels(labels []string) Option {
	return func(o *options) { o.labels = labels }
}

// Open loads the model at modelPath, resolves its input spec and builds a
// ready-to-use Classifier. labelsPath is optional: a missing or unreadable
// file degrades to synthesized "class_<i>" labels and never fails Open. The
// runtime is retained until Close.
func Open(rt *engine.Runtime, modelPath, labelsPath string, opts ...Option) (*Classifier, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	inputs, outputs, err := engine.Inspect(modelPath)
	if err != nil {
		return nil, err
	}

	spec, err := preprocess.ResolveInputSpec(inputs)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, &preprocess.UnsupportedModelShapeError{Reason: "model declares no outputs"}
	}
	// First output wins when the model declares several.
	outputName := outputs[0].Name

	profile := preprocess.ProfileForModel(modelPath)
	if o.profile != nil {
		profile = *o.profile
	}

	labels := o.labels
	if labels == nil && labelsPath != "" {
		labels = loadLabels(labelsPath, logger)
	}

	session, err := engine.OpenSession(modelPath, spec.InputName, outputName)
	if err != nil {
		return nil, err
	}

	rt.Retain()
	c := newClassifier(spec, profile, labels, session, rt, logger)

	logger.Info("model loaded",
		zap.String("model", modelPath),
		zap.String("input", spec.InputName),
		zap.String("output", outputName),
		zap.String("layout", spec.Layout.String()),
		zap.Int("width", spec.Width),
		zap.Int("height", spec.Height),
		zap.Stringer("normalization", profile),
		zap.Int("labels", len(labels)))
	return c, nil
}

func newClassifier(spec preprocess.InputSpec, profile preprocess.Profile,
	labels []string, session invoker, rt *engine.Runtime, logger *zap.Logger) *Classifier {
	c := &Classifier{
		spec:    spec,
		profile: profile,
		labels:  labels,
		logger:  logger,
		session: session,
		runtime: rt,
		done:    make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	go c.work()
	return c
}

// Classify runs one classification on the dedicated worker and blocks until
// it completes. Safe to call from any goroutine.
func (c *Classifier) Classify(img image.Image, topK int) (ranker.RankedResult, error) {
	out := make(chan Outcome, 1)
	if err := c.submit(task{img: img, topK: topK, out: out}); err != nil {
		return ranker.RankedResult{}, err
	}
	o := <-out
	return o.Result, o.Err
}

// ClassifyAsync enqueues one classification and returns immediately. The
// returned channel receives exactly one Outcome; the receive happens on
// whatever goroutine the caller chooses.
func (c *Classifier) ClassifyAsync(img image.Image, topK int) <-chan Outcome {
	out := make(chan Outcome, 1)
	if err := c.submit(task{img: img, topK: topK, out: out}); err != nil {
		out <- Outcome{Err: err}
	}
	return out
}

// InputWidth reports the model's required image width in pixels.
func (c *Classifier) InputWidth() int { return c.spec.Width }

// InputHeight reports the model's required image height in pixels.
func (c *Classifier) InputHeight() int { return c.spec.Height }

// IsPlanarLayout reports whether the model expects channel-major (NCHW)
// input.
func (c *Classifier) IsPlanarLayout() bool { return c.spec.Layout == preprocess.Planar }

// Close stops accepting work, lets already-queued work finish and releases
// the engine's native resources. Idempotent: closing twice is a no-op.
func (c *Classifier) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.cond.Broadcast()
	c.mu.Unlock()

	<-c.done

	err := c.session.Destroy()
	if c.runtime != nil {
		c.runtime.Release()
	}
	return err
}

func (c *Classifier) submit(t task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClassifierClosed
	}
	c.queue = append(c.queue, t)
	c.cond.Signal()
	return nil
}

// work is the dedicated worker: a strict FIFO loop that serializes every
// engine call for this classifier. A failed task reports to its own outcome
// channel only and never stops the loop.
func (c *Classifier) work() {
	defer close(c.done)
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.closed {
			c.cond.Wait()
		}
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return
		}
		t := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		t.out <- c.execute(t)
	}
}

func (c *Classifier) execute(t task) Outcome {
	input, err := preprocess.Tensor(t.img, c.spec, c.profile)
	if err != nil {
		return Outcome{Err: err}
	}

	start := time.Now()
	raw, err := c.session.Run(input, c.spec.TensorDims())
	if err != nil {
		return Outcome{Err: err}
	}
	latency := time.Since(start).Milliseconds()

	result := ranker.Rank(raw, c.labels, t.topK)
	result.Diagnostics.LatencyMillis = latency

	c.logger.Debug("classification complete",
		zap.Int64("latency_ms", latency),
		zap.Float32("confidence", result.Diagnostics.TopConfidence),
		zap.Float64("entropy_bits", result.Diagnostics.EntropyBits),
		zap.Int("classes", len(raw)))
	return Outcome{Result: result}
}
