package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/logging"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	logger := logging.New(&bytes.Buffer{}, logging.Options{Debug: true, Level: "error"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNew_InvalidLevelKeepsDefault(t *testing.T) {
	logger := logging.New(&bytes.Buffer{}, logging.Options{Level: "chatty"})
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Format: "json", Level: "info"})

	logging.Component(logger, "restapi").Info("request completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["message"])
	assert.Equal(t, "restapi", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "ts")
}

func TestComponent_NilLogger(t *testing.T) {
	entry := logging.Component(nil, "x")
	require.NotNil(t, entry)
	entry.Error("dropped")
}
