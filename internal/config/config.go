// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the API
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
//   - validate:  go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds application identity settings.
	App App `envPrefix:"APP_"`

	// Server holds the listen address and lifecycle timeouts.
	Server Server `envPrefix:"SERVER_"`

	// OpenAPI holds the location of the API schema document and the
	// validation behaviour derived from it.
	OpenAPI OpenAPI `envPrefix:"OPENAPI_"`

	// CORS holds the cross-origin policy.
	CORS CORS `envPrefix:"CORS_"`

	// Compression holds response compression settings.
	Compression Compression `envPrefix:"COMPRESSION_"`

	// Security holds security header settings.
	Security Security `envPrefix:"SECURITY_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application identity values.
type App struct {
	// Name is used as the logger role.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the HTTP listener.
type Server struct {
	// Host is the interface to bind. Empty binds all interfaces.
	// Env: SERVER_HOST
	Host string `env:"HOST"`

	// Port is the TCP port to listen on.
	// Env: SERVER_PORT
	Port int `env:"PORT" validate:"required,min=1,max=65535"`

	// ShutdownTimeout bounds graceful shutdown after a stop signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gte=0"`

	// ReadHeaderTimeout bounds the time allowed to read request headers.
	// Env: SERVER_READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=0"`
}

// OpenAPI holds settings for the schema metadata and validation middleware.
type OpenAPI struct {
	// SpecPath is a file path or an http(s) URL of the OpenAPI document
	// (YAML or JSON).
	// Env: OPENAPI_SPEC_PATH
	SpecPath string `env:"SPEC_PATH" validate:"required"`

	// ValidateResponses enables validation of JSON responses against the
	// documented response schemas.
	// Env: OPENAPI_VALIDATE_RESPONSES
	ValidateResponses bool `env:"VALIDATE_RESPONSES"`

	// MaxBodyBytes caps the request body size read for validation.
	// Env: OPENAPI_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" validate:"gte=0"`

	// FetchTimeout bounds downloading a remote document.
	// Env: OPENAPI_FETCH_TIMEOUT
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" validate:"gte=0"`
}

// CORS holds the cross-origin resource sharing policy.
type CORS struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// "*" allows any origin.
	// Env: CORS_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	// AllowedMethods is announced to preflight requests.
	// Env: CORS_ALLOWED_METHODS (comma separated)
	AllowedMethods []string `env:"ALLOWED_METHODS"`

	// AllowedHeaders is announced to preflight requests. Empty reflects the
	// headers the client asked for.
	// Env: CORS_ALLOWED_HEADERS (comma separated)
	AllowedHeaders []string `env:"ALLOWED_HEADERS"`

	// MaxAge is how long a preflight result may be cached.
	// Env: CORS_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE" validate:"gte=0"`

	// AllowCredentials sets Access-Control-Allow-Credentials.
	// Env: CORS_ALLOW_CREDENTIALS
	AllowCredentials bool `env:"ALLOW_CREDENTIALS"`
}

// Compression holds gzip response compression settings.
type Compression struct {
	// Level is the gzip level (1..9, -1 default, -2 huffman only).
	// Zero selects the default level.
	// Env: COMPRESSION_LEVEL
	Level int `env:"LEVEL" validate:"min=-2,max=9"`

	// MinSize is the response size in bytes below which responses are sent
	// uncompressed.
	// Env: COMPRESSION_MIN_SIZE
	MinSize int `env:"MIN_SIZE" validate:"gte=0"`
}

// Security holds settings of the security header middleware.
type Security struct {
	// ContentSecurityPolicy overrides the default Content-Security-Policy.
	// Env: SECURITY_CONTENT_SECURITY_POLICY
	ContentSecurityPolicy string `env:"CONTENT_SECURITY_POLICY"`

	// HSTSMaxAge is the max-age announced in Strict-Transport-Security.
	// Env: SECURITY_HSTS_MAX_AGE
	HSTSMaxAge time.Duration `env:"HSTS_MAX_AGE" validate:"gte=0"`

	// DisableHSTS drops the Strict-Transport-Security header.
	// Env: SECURITY_DISABLE_HSTS
	DisableHSTS bool `env:"DISABLE_HSTS"`
}

// Log holds logging settings.
type Log struct {
	// Level is the minimum level emitted.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// GetStructuredConfig loads, merges, defaults, and validates the server
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(commandLineArgs()).
		withJSON().
		build()
}
