// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidConfigs is the fallback for a rule outside any known group.
	ErrInvalidConfigs = errors.New("invalid configuration")
	// ErrInvalidServerConfigs indicates an invalid listen port or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidOpenAPIConfigs indicates a missing document location or a
	// negative limit.
	ErrInvalidOpenAPIConfigs = errors.New("invalid openapi configuration")
	// ErrInvalidCORSConfigs indicates an invalid cross-origin policy.
	ErrInvalidCORSConfigs = errors.New("invalid cors configuration")
	// ErrInvalidCompressionConfigs indicates an out of range gzip level or
	// threshold.
	ErrInvalidCompressionConfigs = errors.New("invalid compression configuration")
	// ErrInvalidSecurityConfigs indicates invalid security header settings.
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
	// ErrInvalidFlags is returned when command-line flags cannot be parsed.
	ErrInvalidFlags = errors.New("invalid command-line flags")
)
