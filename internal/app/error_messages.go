// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

// Msg* constants are the human-readable messages written into error
// response bodies by the stages that reject a request themselves.
const (
	// MsgRequestValidationFailed heads the list of violated rules of a
	// request that does not match its documented operation.
	MsgRequestValidationFailed = "Request validation failed"

	// MsgInvalidGzipBody is returned when a request declares gzip content
	// encoding but the body does not decompress.
	MsgInvalidGzipBody = "Invalid gzip request body"
)
