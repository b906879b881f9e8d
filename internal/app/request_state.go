// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"net/http"
	"sync"
)

// Outcome describes how a request ended. It is handed to finish hooks after
// the error stages have run.
type Outcome struct {
	// Status is the status code sent to the client.
	Status int

	// Size is the number of body bytes sent.
	Size int

	// Route is the matched route pattern, empty when no route matched.
	Route string

	// Err is the error propagated by the request stages, before any error
	// stage handled it. Nil for successful requests.
	Err error
}

type stateCtxKey struct{}

// requestState is shared by every layer of one request. Route handlers
// run inside chi and cannot return errors through it, so they park the
// error here; the composed handler collects it once the router returns.
type requestState struct {
	mu      sync.Mutex
	request *http.Request
	route   string
	err     error
	hooks   []func(Outcome)
}

func withState(ctx context.Context, s *requestState) context.Context {
	return context.WithValue(ctx, stateCtxKey{}, s)
}

func stateFrom(ctx context.Context) *requestState {
	s, _ := ctx.Value(stateCtxKey{}).(*requestState)
	return s
}

func (s *requestState) track(r *http.Request) {
	s.mu.Lock()
	s.request = r
	s.mu.Unlock()
}

func (s *requestState) latest(fallback *http.Request) *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.request == nil {
		return fallback
	}
	return s.request
}

func (s *requestState) setRoute(route string) {
	s.mu.Lock()
	s.route = route
	s.mu.Unlock()
}

func (s *requestState) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *requestState) takeErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.err
	s.err = nil
	return err
}

func (s *requestState) onFinish(fn func(Outcome)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

func (s *requestState) finish(o Outcome) {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	o.Route = s.route
	s.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i](o)
	}
}

// OnFinish registers fn to run once the response for r is complete,
// including any response written by the error stages. Hooks run in reverse
// registration order. It is a no-op for requests not served by an [App].
func OnFinish(r *http.Request, fn func(Outcome)) {
	if s := stateFrom(r.Context()); s != nil {
		s.onFinish(fn)
	}
}

// Fail records err as the outcome of the route handler serving r. It lets
// plain [http.Handler] code mounted on the router propagate an error to the
// error stages. Only the first recorded error is kept.
func Fail(r *http.Request, err error) {
	if s := stateFrom(r.Context()); s != nil && err != nil {
		s.fail(err)
	}
}
