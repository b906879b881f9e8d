// Package config loads the server settings: listen address and timeouts,
// the OpenAPI document location, the CORS, compression and security header
// policies, and the log level.
//
// Sources are layered env → flags → JSON file, each later source overriding
// the non-zero fields of the earlier ones. Defaults are applied to the merged
// result, which is then validated; every violated rule is reported together.
//
// The main entry point is [GetStructuredConfig].
package config
