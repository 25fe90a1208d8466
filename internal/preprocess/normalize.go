package preprocess

import "strings"

// ProfileKind selects the normalization math applied to raw 8-bit channels.
type ProfileKind int

const (
	// KindMeanStdDev scales to [0,1] then applies per-channel mean/std
	// subtraction (standard ImageNet preprocessing).
	KindMeanStdDev ProfileKind = iota
	// KindSymmetricScale maps 0..255 to a symmetric range around zero,
	// common for TensorFlow-exported models (-1..1 with the defaults).
	KindSymmetricScale
	// KindUnitScale maps 0..255 to [0,1].
	KindUnitScale
)

// Profile is a closed normalization variant. Construct one with MeanStdDev,
// SymmetricScale, UnitScale or ImageNet; the zero value is not valid.
type Profile struct {
	Kind   ProfileKind
	Mean   [3]float32
	Std    [3]float32
	Center float32
	Scale  float32
}

// MeanStdDev builds a mean/std profile over [0,1]-scaled channels.
func MeanStdDev(mean, std [3]float32) Profile {
	return Profile{Kind: KindMeanStdDev, Mean: mean, Std: std}
}

// ImageNet is the common classification default:
// mean = [0.485, 0.456, 0.406], std = [0.229, 0.224, 0.225].
func ImageNet() Profile {
	return MeanStdDev(
		[3]float32{0.485, 0.456, 0.406},
		[3]float32{0.229, 0.224, 0.225},
	)
}

// SymmetricScale maps bytes to -1..1 via (v - 127.5) / 127.5.
func SymmetricScale() Profile {
	return Profile{Kind: KindSymmetricScale, Center: 127.5, Scale: 127.5}
}

// UnitScale maps bytes to 0..1.
func UnitScale() Profile {
	return Profile{Kind: KindUnitScale}
}

// Normalize maps one pixel's raw 8-bit R,G,B values to normalized floats.
// Pure, no failure mode.
func (p Profile) Normalize(r, g, b uint8) (float32, float32, float32) {
	switch p.Kind {
	case KindMeanStdDev:
		return (float32(r)/255 - p.Mean[0]) / p.Std[0],
			(float32(g)/255 - p.Mean[1]) / p.Std[1],
			(float32(b)/255 - p.Mean[2]) / p.Std[2]
	case KindSymmetricScale:
		return (float32(r) - p.Center) / p.Scale,
			(float32(g) - p.Center) / p.Scale,
			(float32(b) - p.Center) / p.Scale
	default:
		return float32(r) / 255, float32(g) / 255, float32(b) / 255
	}
}

func (p Profile) String() string {
	switch p.Kind {
	case KindMeanStdDev:
		return "mean-stddev"
	case KindSymmetricScale:
		return "symmetric-scale"
	default:
		return "unit-scale"
	}
}

// ProfileForModel picks a default profile from the model's path or name.
// EfficientNet-style exports commonly expect -1..1 input, everything else
// gets ImageNet mean/std. This is a best-effort heuristic; callers that know
// their model's preprocessing should override it explicitly.
func ProfileForModel(modelPath string) Profile {
	if strings.Contains(strings.ToLower(modelPath), "efficientnet") {
		return SymmetricScale()
	}
	return ImageNet()
}

// ProfileByName maps a configuration string to a profile. Recognized names:
// "imagenet", "symmetric", "unit".
func ProfileByName(name string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "imagenet":
		return ImageNet(), true
	case "symmetric":
		return SymmetricScale(), true
	case "unit":
		return UnitScale(), true
	}
	return Profile{}, false
}
