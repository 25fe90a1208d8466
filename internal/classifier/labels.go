package classifier

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// loadLabels reads a newline-delimited labels file: one label per line,
// trimmed, blank lines ignored, line order defines class index 0..N-1. A
// missing file is a silent fallback to synthesized labels; a present but
// unreadable file logs a warning and falls back the same way.
func loadLabels(path string, logger *zap.Logger) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("labels file unreadable, using synthesized labels",
				zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	return parseLabels(string(data))
}

func parseLabels(text string) []string {
	var labels []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			labels = append(labels, line)
		}
	}
	return labels
}
