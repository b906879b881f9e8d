// Package utils provides small helpers shared across the server: JSON
// response writing, the outbound HTTP client, and request ID generation.
package utils
