package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa_automation/domain/entities"
	"qa_automation/infrastructure/config"
)

func TestSetupWritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := Setup(config.LogSettings{Level: "debug", Dir: dir, MaxSizeMB: 1, MaxBackups: 1}, &console)
	require.NoError(t, err)

	Component(logger, "login").Debug("filling username")
	logger.Info("opening login page")
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "opening login page")
	assert.NotContains(t, console.String(), "filling username")

	files, err := filepath.Glob(filepath.Join(dir, "test_execution_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "filling username")
	assert.Contains(t, string(content), "component=login")
	assert.Contains(t, string(content), "opening login page")
}

func TestSetupJSONFile(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := Setup(config.LogSettings{Level: "info", Dir: dir, JSON: true}, &bytes.Buffer{})
	require.NoError(t, err)
	logger.WithField("status", 200).Info("response received")
	require.NoError(t, closer.Close())

	files, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"response received"`)
	assert.Contains(t, string(content), `"status":200`)
}

func TestSetupWithoutFile(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := Setup(config.LogSettings{Level: "warn"}, &console)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, _, err := Setup(config.LogSettings{Level: "verbose"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrConfiguration))
}
