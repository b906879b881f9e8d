// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func minimalConfig() *StructuredConfig {
	return &StructuredConfig{
		Server:  Server{Port: 3000},
		OpenAPI: OpenAPI{SpecPath: "api/openapi.yaml"},
	}
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
	assert.ErrorIs(t, err, ErrInvalidOpenAPIConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "api-server", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, int64(1<<20), cfg.OpenAPI.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, 1024, cfg.Compression.MinSize)
	assert.Equal(t, 180*24*time.Hour, cfg.Security.HSTSMaxAge)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Server:  Server{Host: "127.0.0.1", Port: 3000},
			OpenAPI: OpenAPI{SpecPath: "env.yaml"},
			Log:     Log{Level: "info"},
		},
		&StructuredConfig{
			Server: Server{Port: 4000},
		},
		&StructuredConfig{
			OpenAPI: OpenAPI{SpecPath: "json.yaml"},
		},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "json.yaml", cfg.OpenAPI.SpecPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestBuild_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *StructuredConfig)
		want   error
	}{
		{name: "port too large", mutate: func(cfg *StructuredConfig) { cfg.Server.Port = 70000 }, want: ErrInvalidServerConfigs},
		{name: "negative port", mutate: func(cfg *StructuredConfig) { cfg.Server.Port = -1 }, want: ErrInvalidServerConfigs},
		{name: "missing spec", mutate: func(cfg *StructuredConfig) { cfg.OpenAPI.SpecPath = "" }, want: ErrInvalidOpenAPIConfigs},
		{name: "negative body limit", mutate: func(cfg *StructuredConfig) { cfg.OpenAPI.MaxBodyBytes = -5 }, want: ErrInvalidOpenAPIConfigs},
		{name: "compression level", mutate: func(cfg *StructuredConfig) { cfg.Compression.Level = 11 }, want: ErrInvalidCompressionConfigs},
		{name: "log level", mutate: func(cfg *StructuredConfig) { cfg.Log.Level = "verbose" }, want: ErrInvalidLogConfigs},
		{name: "negative cors max age", mutate: func(cfg *StructuredConfig) { cfg.CORS.MaxAge = -time.Second }, want: ErrInvalidCORSConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			tt.mutate(cfg)

			b := newConfigBuilder()
			b.configs = append(b.configs, cfg)

			built, err := b.build()

			require.Error(t, err)
			assert.Nil(t, built)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── withEnv / withFlags / withJSON ────────────────────────────────────────────

func TestWithEnv_AppendsConfig(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_PORT": "3000"})

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, 3000, b.configs[0].Server.Port)
}

func TestWithEnv_RecordsError(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_PORT": "three thousand"})

	b := newConfigBuilder().withEnv()

	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_RecordsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-p", "x"})

	require.Error(t, b.err)
	assert.ErrorIs(t, b.err, ErrInvalidFlags)
}

func TestWithJSON_NotSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	b.withJSON()

	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LastPathWins(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"port": 8081},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "ignored.json"},
		&StructuredConfig{JSONFilePath: path},
	)

	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, 8081, b.configs[2].Server.Port)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "missing.json"})

	b.withJSON()

	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "error reading a json file")
}

func TestFullPipeline_EnvFlagsJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"openapi": map[string]any{"spec_path": "from-json.yaml"},
	})
	setEnvVars(t, map[string]string{
		"SERVER_PORT":       "3000",
		"OPENAPI_SPEC_PATH": "from-env.yaml",
		"LOG_LEVEL":         "info",
	})

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-p", "3100", "-c", path}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, 3100, cfg.Server.Port)
	assert.Equal(t, "from-json.yaml", cfg.OpenAPI.SpecPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, path, cfg.JSONFilePath)
}
