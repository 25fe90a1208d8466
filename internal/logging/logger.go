package logging

import "go.uber.org/zap"

// NewLogger builds the structured logger used across the tool. verbose
// switches to a development config with debug-level output, which is where
// per-inference diagnostics land.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	return cfg.Build()
}
