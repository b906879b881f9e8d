// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrBind is returned by Start when the listen address cannot be bound.
	ErrBind = errors.New("error binding listen address")

	// ErrAlreadyStarted is returned by Start when called twice.
	ErrAlreadyStarted = errors.New("server already started")

	errNotStarted = errors.New("server is not started")
)
