// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		Host              string   `json:"host"`
		Port              int      `json:"port"`
		ShutdownTimeout   Duration `json:"shutdown_timeout"`
		ReadHeaderTimeout Duration `json:"read_header_timeout"`
	} `json:"server,omitempty"`

	OpenAPI struct {
		SpecPath          string   `json:"spec_path"`
		ValidateResponses bool     `json:"validate_responses"`
		MaxBodyBytes      int64    `json:"max_body_bytes"`
		FetchTimeout      Duration `json:"fetch_timeout"`
	} `json:"openapi,omitempty"`

	CORS struct {
		AllowedOrigins   []string `json:"allowed_origins"`
		AllowedMethods   []string `json:"allowed_methods"`
		AllowedHeaders   []string `json:"allowed_headers"`
		MaxAge           Duration `json:"max_age"`
		AllowCredentials bool     `json:"allow_credentials"`
	} `json:"cors,omitempty"`

	Compression struct {
		Level   int `json:"level"`
		MinSize int `json:"min_size"`
	} `json:"compression,omitempty"`

	Security struct {
		ContentSecurityPolicy string   `json:"content_security_policy"`
		HSTSMaxAge            Duration `json:"hsts_max_age"`
		DisableHSTS           bool     `json:"disable_hsts"`
	} `json:"security,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:    jsonCfg.App.Name,
			Version: jsonCfg.App.Version,
		},
		Server: Server{
			Host:              jsonCfg.Server.Host,
			Port:              jsonCfg.Server.Port,
			ShutdownTimeout:   time.Duration(jsonCfg.Server.ShutdownTimeout),
			ReadHeaderTimeout: time.Duration(jsonCfg.Server.ReadHeaderTimeout),
		},
		OpenAPI: OpenAPI{
			SpecPath:          jsonCfg.OpenAPI.SpecPath,
			ValidateResponses: jsonCfg.OpenAPI.ValidateResponses,
			MaxBodyBytes:      jsonCfg.OpenAPI.MaxBodyBytes,
			FetchTimeout:      time.Duration(jsonCfg.OpenAPI.FetchTimeout),
		},
		CORS: CORS{
			AllowedOrigins:   jsonCfg.CORS.AllowedOrigins,
			AllowedMethods:   jsonCfg.CORS.AllowedMethods,
			AllowedHeaders:   jsonCfg.CORS.AllowedHeaders,
			MaxAge:           time.Duration(jsonCfg.CORS.MaxAge),
			AllowCredentials: jsonCfg.CORS.AllowCredentials,
		},
		Compression: Compression{
			Level:   jsonCfg.Compression.Level,
			MinSize: jsonCfg.Compression.MinSize,
		},
		Security: Security{
			ContentSecurityPolicy: jsonCfg.Security.ContentSecurityPolicy,
			HSTSMaxAge:            time.Duration(jsonCfg.Security.HSTSMaxAge),
			DisableHSTS:           jsonCfg.Security.DisableHSTS,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
