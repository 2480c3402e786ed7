package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLevelsToFiles(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir)
	require.NoError(t, err)

	logger.Infof("[TEST] created %s", "a")
	logger.Errorf("[TEST] failed %s", "b")
	require.NoError(t, logger.Close())

	combined, err := os.ReadFile(filepath.Join(dir, "combined.log"))
	require.NoError(t, err)
	assert.Contains(t, string(combined), "[TEST] created a")
	assert.Contains(t, string(combined), "[TEST] failed b")

	errorsOnly, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errorsOnly), "[TEST] failed b")
	assert.NotContains(t, string(errorsOnly), "[TEST] created a")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Infof("ignored %d", 1)
	logger.Errorf("ignored %d", 2)
	assert.NoError(t, logger.Close())
}
