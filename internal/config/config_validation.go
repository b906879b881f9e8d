// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultAppName           = "api-server"
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxBodyBytes      = 1 << 20
	defaultFetchTimeout      = 15 * time.Second
	defaultCompressionMin    = 1024
	defaultHSTSMaxAge        = 180 * 24 * time.Hour
)

var defaultCORSMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodPost,
	http.MethodDelete,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// applyDefaults fills every zero field that has a sensible default. The
// listen port and the OpenAPI document location have none and must be
// provided.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Name == "" {
		cfg.App.Name = defaultAppName
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if cfg.OpenAPI.MaxBodyBytes == 0 {
		cfg.OpenAPI.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.OpenAPI.FetchTimeout == 0 {
		cfg.OpenAPI.FetchTimeout = defaultFetchTimeout
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = append([]string(nil), defaultCORSMethods...)
	}
	if cfg.Compression.MinSize == 0 {
		cfg.Compression.MinSize = defaultCompressionMin
	}
	if cfg.Security.HSTSMaxAge == 0 {
		cfg.Security.HSTSMaxAge = defaultHSTSMaxAge
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Every violated rule is reported,
// each wrapped with the sentinel of its configuration group.
func (cfg *StructuredConfig) validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("error validating configs: %w", err)
	}

	var joined error
	for _, fieldErr := range validationErrors {
		joined = errors.Join(joined, fmt.Errorf("%w: %s failed on %q",
			groupError(fieldErr.StructNamespace()), fieldErr.StructNamespace(), fieldErr.Tag()))
	}

	return joined
}

func groupError(namespace string) error {
	switch {
	case hasGroup(namespace, "Server"):
		return ErrInvalidServerConfigs
	case hasGroup(namespace, "OpenAPI"):
		return ErrInvalidOpenAPIConfigs
	case hasGroup(namespace, "CORS"):
		return ErrInvalidCORSConfigs
	case hasGroup(namespace, "Compression"):
		return ErrInvalidCompressionConfigs
	case hasGroup(namespace, "Security"):
		return ErrInvalidSecurityConfigs
	case hasGroup(namespace, "Log"):
		return ErrInvalidLogConfigs
	default:
		return ErrInvalidConfigs
	}
}

func hasGroup(namespace, group string) bool {
	return strings.HasPrefix(namespace, "StructuredConfig."+group+".")
}
