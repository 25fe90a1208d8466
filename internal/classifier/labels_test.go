package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLabels(t *testing.T) {
	labels := parseLabels("tench\n\n  goldfish  \ngreat white shark\n\n")
	assert.Equal(t, []string{"tench", "goldfish", "great white shark"}, labels)

	assert.Nil(t, parseLabels(""))
	assert.Nil(t, parseLabels("\n\n  \n"))
}

func TestLoadLabelsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\ndog\n"), 0o644))

	labels := loadLabels(path, zap.NewNop())
	assert.Equal(t, []string{"cat", "dog"}, labels)
}

func TestLoadLabelsMissingFileFallsBack(t *testing.T) {
	labels := loadLabels(filepath.Join(t.TempDir(), "nope.txt"), zap.NewNop())
	assert.Nil(t, labels)
}
