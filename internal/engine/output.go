package engine

// FlattenScores reduces a known output tensor shape to a flat class-score
// vector. Only (N), (1,N) and (1,1,N) are recognized; anything else fails
// with UnsupportedOutputShapeError rather than guessing. The returned slice
// is a copy, safe to keep after the backing tensor is destroyed.
func FlattenScores(shape []int64, data []float32) ([]float32, error) {
	if !flattenable(shape) {
		return nil, &UnsupportedOutputShapeError{Shape: append([]int64{}, shape...)}
	}
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

func flattenable(shape []int64) bool {
	switch len(shape) {
	case 1:
		return shape[0] >= 1
	case 2:
		return shape[0] == 1 && shape[1] >= 1
	case 3:
		return shape[0] == 1 && shape[1] == 1 && shape[2] >= 1
	}
	return false
}
