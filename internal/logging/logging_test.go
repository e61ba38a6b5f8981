// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

func TestNewDefaultsToWarnConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("collection missing", zap.String("collection", "2: Joints"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "collection missing")
	assert.Contains(t, out, `"collection": "2: Joints"`)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{Level: "DEBUG", Format: FormatJSON}, &buf)
	require.NoError(t, err)

	log.Debug("host script finished", zap.Int("jobs", 17))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "host script finished", entry["msg"])
	assert.Equal(t, float64(17), entry["jobs"])
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.LogConfig
		errMsg string
	}{
		{name: "level", cfg: types.LogConfig{Level: "loud"}, errMsg: "parsing log level"},
		{name: "format", cfg: types.LogConfig{Format: "xml"}, errMsg: "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
