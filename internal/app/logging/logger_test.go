package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf)

	log.WithField("work_id", "w1").Info("work updated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "work updated", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "w1", entry["work_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, logrus.ErrorLevel, parseLevel(" error "))
}
