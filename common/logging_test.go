package common

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSONAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&LoggingOpts{
		JSON:    true,
		Service: "provisioner",
		Version: "v1.2.3",
		Output:  &buf,
	})

	logger.Info("hello", "target", "private")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "provisioner", entry["service"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "private", entry["target"])
}

func TestSetupLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&LoggingOpts{Output: &buf})
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = SetupLogger(&LoggingOpts{Debug: true, Output: &buf})
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
