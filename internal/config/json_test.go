// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "name": "orders-api", "version": "2.0.0" },
		"server": {
			"host": "0.0.0.0",
			"port": 3000,
			"shutdown_timeout": "15s",
			"read_header_timeout": 1000000000
		},
		"openapi": {
			"spec_path": "api/openapi.yaml",
			"validate_responses": true,
			"max_body_bytes": 4096,
			"fetch_timeout": "2s"
		},
		"cors": {
			"allowed_origins": ["https://app.example"],
			"allowed_methods": ["GET"],
			"allowed_headers": ["Content-Type"],
			"max_age": "1h",
			"allow_credentials": true
		},
		"compression": { "level": 9, "min_size": 64 },
		"security": {
			"content_security_policy": "default-src 'self'",
			"hsts_max_age": "48h",
			"disable_hsts": false
		},
		"log": { "level": "error" }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "orders-api", cfg.App.Name)
	assert.Equal(t, "2.0.0", cfg.App.Version)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, time.Second, cfg.Server.ReadHeaderTimeout)

	assert.Equal(t, "api/openapi.yaml", cfg.OpenAPI.SpecPath)
	assert.True(t, cfg.OpenAPI.ValidateResponses)
	assert.Equal(t, int64(4096), cfg.OpenAPI.MaxBodyBytes)
	assert.Equal(t, 2*time.Second, cfg.OpenAPI.FetchTimeout)

	assert.Equal(t, []string{"https://app.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, time.Hour, cfg.CORS.MaxAge)
	assert.True(t, cfg.CORS.AllowCredentials)

	assert.Equal(t, 9, cfg.Compression.Level)
	assert.Equal(t, 64, cfg.Compression.MinSize)

	assert.Equal(t, "default-src 'self'", cfg.Security.ContentSecurityPolicy)
	assert.Equal(t, 48*time.Hour, cfg.Security.HSTSMaxAge)
	assert.False(t, cfg.Security.DisableHSTS)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("definitely-does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad_duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server": {"shutdown_timeout": "later"}}`), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))

	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(data))
}
