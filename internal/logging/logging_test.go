package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&LogConfig{Level: "debug", Format: "text"}, &buf)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&LogConfig{Level: "info", Format: "json"}, &buf)

	logger.WithField(StandardFields.Component, "report").Info("built")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "built", entry["msg"])
	assert.Equal(t, "report", entry["component"])
}

func TestNewInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&LogConfig{Level: "nope"}, &buf)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
