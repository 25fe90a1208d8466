// Package ranker turns raw model output scores into a ranked, labeled,
// human-interpretable result with distribution diagnostics.
package ranker

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ClassScore is one labeled probability. Scores come out of softmax, so they
// fall in [0,1].
type ClassScore struct {
	Label string
	Score float32
}

// Diagnostics summarizes one inference call for logging and display.
type Diagnostics struct {
	LatencyMillis  int64
	LogitsMin      float32
	LogitsMax      float32
	ProbabilitySum float32
	TopConfidence  float32
	EntropyBits    float64
}

// String renders the diagnostics block shown to users alongside a result.
func (d Diagnostics) String() string {
	var b strings.Builder
	b.WriteString("inference:\n")
	fmt.Fprintf(&b, "  time: %d ms\n", d.LatencyMillis)
	fmt.Fprintf(&b, "  logits range: [%.4f, %.4f]\n", d.LogitsMin, d.LogitsMax)
	fmt.Fprintf(&b, "  probability sum: %.6f\n", d.ProbabilitySum)
	fmt.Fprintf(&b, "  confidence (max): %.4f\n", d.TopConfidence)
	fmt.Fprintf(&b, "  uncertainty (entropy): %.4f bits", d.EntropyBits)
	return b.String()
}

// RankedResult is the top-K slice of the class distribution, ordered by
// non-increasing score, plus per-call diagnostics.
type RankedResult struct {
	Scores      []ClassScore
	Diagnostics Diagnostics
}

// Rank converts raw scores into a probability distribution and returns the
// top-K entries. topK below 1 is treated as 1; topK above the class count is
// clamped to the class count. Labels are taken from labels by index when in
// range, otherwise synthesized as "class_<index>". LatencyMillis is left zero
// for the caller to fill.
func Rank(rawScores []float32, labels []string, topK int) RankedResult {
	probs := Softmax(rawScores)

	k := topK
	if k < 1 {
		k = 1
	}
	if k > len(probs) {
		k = len(probs)
	}

	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	// Stable sort over ascending indices keeps ties deterministic.
	sort.SliceStable(idx, func(a, b int) bool {
		return probs[idx[a]] > probs[idx[b]]
	})

	scores := make([]ClassScore, 0, k)
	for _, ci := range idx[:k] {
		label := fmt.Sprintf("class_%d", ci)
		if ci < len(labels) {
			label = labels[ci]
		}
		scores = append(scores, ClassScore{Label: label, Score: probs[ci]})
	}

	return RankedResult{
		Scores:      scores,
		Diagnostics: diagnostics(rawScores, probs),
	}
}

// Softmax is a numerically stable softmax: the running maximum is subtracted
// before exponentiating and the sum is accumulated in float64. A zero sum
// yields an all-zero distribution instead of dividing by zero.
func Softmax(logits []float32) []float32 {
	probs := make([]float32, len(logits))
	if len(logits) == 0 {
		return probs
	}

	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}

	exps := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(float64(v - max))
		exps[i] = e
		sum += e
	}
	if sum == 0 {
		return probs
	}
	for i, e := range exps {
		probs[i] = float32(e / sum)
	}
	return probs
}

// EntropyBits computes the Shannon entropy of a probability distribution in
// base-2 units, skipping zero entries.
func EntropyBits(probs []float32) float64 {
	h := 0.0
	for _, p := range probs {
		if p > 0 {
			h -= float64(p) * math.Log2(float64(p))
		}
	}
	return h
}

func diagnostics(logits, probs []float32) Diagnostics {
	d := Diagnostics{
		LogitsMin: float32(math.Inf(1)),
		LogitsMax: float32(math.Inf(-1)),
	}
	for _, v := range logits {
		if v < d.LogitsMin {
			d.LogitsMin = v
		}
		if v > d.LogitsMax {
			d.LogitsMax = v
		}
	}
	for _, p := range probs {
		d.ProbabilitySum += p
		if p > d.TopConfidence {
			d.TopConfidence = p
		}
	}
	d.EntropyBits = EntropyBits(probs)
	return d
}
