// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package middleware provides the cross-cutting request stages and error
// stages the server attaches to every application instance: request
// logging with trace ids, security headers, CORS, gzip compression, error
// logging, and the terminal JSON error handler.
package middleware
