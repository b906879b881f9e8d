// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
)

type phase int

const (
	phaseMiddleware phase = iota
	phaseRoutes
	phaseErrors
)

func (p phase) String() string {
	switch p {
	case phaseMiddleware:
		return "middleware"
	case phaseRoutes:
		return "routes"
	default:
		return "error handlers"
	}
}

// RoutesPrefix prefixes the attachment name of every route group.
const RoutesPrefix = "routes:"

type stage struct {
	name string
	mw   Middleware
}

type errorStage struct {
	name   string
	handle ErrorHandlerFunc
}

// App is the application instance: an ordered list of named request stages,
// the router holding every registered route group, and an ordered list of
// named error stages.
//
// Attachments must follow the phase order middleware → routes → error
// handlers. Violations are accumulated and reported by [App.Handler].
type App struct {
	router      *chi.Mux
	stages      []stage
	errorStages []errorStage
	attachments []string
	phase       phase
	err         error
}

// New returns an empty application instance.
func New() *App {
	a := &App{router: chi.NewRouter()}

	a.router.NotFound(a.route(func(w http.ResponseWriter, r *http.Request) error {
		return ErrRouteNotFound
	}))
	a.router.MethodNotAllowed(a.route(func(w http.ResponseWriter, r *http.Request) error {
		if allowed := a.allowedMethods(r); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		return ErrMethodNotAllowed
	}))

	return a
}

// Use attaches a named request stage. Stages run in attachment order, the
// first attached being the outermost.
func (a *App) Use(name string, mw Middleware) {
	if a.phase != phaseMiddleware {
		a.fail(fmt.Errorf("%w: middleware %q attached after %s", ErrAttachmentOrder, name, a.phase))
		return
	}
	if mw == nil {
		a.fail(fmt.Errorf("%w: middleware %q", ErrNilAttachment, name))
		return
	}

	a.stages = append(a.stages, stage{name: name, mw: mw})
	a.attachments = append(a.attachments, name)
}

// Register invokes the registrar with a so it can attach its routes. A
// returned error or a panic inside the registrar is recorded and returned.
func (a *App) Register(reg Registrar) (err error) {
	if a.phase == phaseErrors {
		err = fmt.Errorf("%w: routes %q attached after %s", ErrAttachmentOrder, reg.Name, a.phase)
		a.fail(err)
		return err
	}
	if reg.Attach == nil {
		err = fmt.Errorf("%w: routes %q", ErrNilAttachment, reg.Name)
		a.fail(err)
		return err
	}
	a.phase = phaseRoutes

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %q: %v", ErrRegistrarPanicked, reg.Name, p)
		}
		if err != nil {
			a.fail(err)
			return
		}
		a.attachments = append(a.attachments, RoutesPrefix+reg.Name)
	}()

	if err := reg.Attach(a); err != nil {
		return fmt.Errorf("error registering routes %q: %w", reg.Name, err)
	}

	return nil
}

// UseError attaches a named error stage. Error stages run in attachment
// order after the request stages and routes.
func (a *App) UseError(name string, h ErrorHandlerFunc) {
	if h == nil {
		a.fail(fmt.Errorf("%w: error handler %q", ErrNilAttachment, name))
		return
	}

	a.phase = phaseErrors
	a.errorStages = append(a.errorStages, errorStage{name: name, handle: h})
	a.attachments = append(a.attachments, name)
}

// Attachments returns the names of all attachments in order. Route groups
// are prefixed with [RoutesPrefix].
func (a *App) Attachments() []string {
	return append([]string(nil), a.attachments...)
}

// Err returns the accumulated attachment errors.
func (a *App) Err() error {
	return a.err
}

// Method registers h for method and pattern.
func (a *App) Method(method, pattern string, h HandlerFunc) {
	a.router.Method(method, pattern, a.route(h))
}

// Get registers h for GET requests on pattern.
func (a *App) Get(pattern string, h HandlerFunc) {
	a.Method(http.MethodGet, pattern, h)
}

// Post registers h for POST requests on pattern.
func (a *App) Post(pattern string, h HandlerFunc) {
	a.Method(http.MethodPost, pattern, h)
}

// Put registers h for PUT requests on pattern.
func (a *App) Put(pattern string, h HandlerFunc) {
	a.Method(http.MethodPut, pattern, h)
}

// Patch registers h for PATCH requests on pattern.
func (a *App) Patch(pattern string, h HandlerFunc) {
	a.Method(http.MethodPatch, pattern, h)
}

// Delete registers h for DELETE requests on pattern.
func (a *App) Delete(pattern string, h HandlerFunc) {
	a.Method(http.MethodDelete, pattern, h)
}

// Handle registers a plain handler for every method on pattern.
func (a *App) Handle(pattern string, h http.Handler) {
	a.router.Handle(pattern, a.route(Adapt(h)))
}

// allowedMethods lists the methods the router serves for r's path, in the
// order of [routedMethods].
func (a *App) allowedMethods(r *http.Request) []string {
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}

	var allowed []string
	for _, method := range routedMethods {
		if a.router.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

var routedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// Handler composes the attachments into one [http.Handler]:
//
//	stage[0](stage[1](…stage[n](router)))
//
// Whatever error escapes that chain, including recovered panics, is passed
// through the error stages in order. If an error survives every error stage
// and nothing was written, a bare 500 is sent.
func (a *App) Handler() (http.Handler, error) {
	if a.err != nil {
		return nil, a.err
	}

	var chain HandlerFunc = a.serveRouter
	for i := len(a.stages) - 1; i >= 0; i-- {
		chain = a.stages[i].mw(track(chain))
	}

	return &composed{
		chain:       chain,
		errorStages: append([]errorStage(nil), a.errorStages...),
	}, nil
}

func (a *App) fail(err error) {
	a.err = errors.Join(a.err, err)
}

func (a *App) serveRouter(w http.ResponseWriter, r *http.Request) error {
	a.router.ServeHTTP(w, r)
	if s := stateFrom(r.Context()); s != nil {
		return s.takeErr()
	}
	return nil
}

// route adapts a HandlerFunc to chi: the route pattern is recorded, and a
// returned error or a panic is parked in the request state.
func (a *App) route(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := stateFrom(r.Context())
		if s != nil {
			s.track(r)
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				s.setRoute(rctx.RoutePattern())
			}
		}

		err := safeCall(h, w, r)
		if err != nil && s != nil {
			s.fail(err)
		}
	}
}

// track records the request each layer receives so the error stages see the
// request as enriched by the innermost stage that ran.
func track(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if s := stateFrom(r.Context()); s != nil {
			s.track(r)
		}
		return next(w, r)
	}
}

func safeCall(h HandlerFunc, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			err = &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return h(w, r)
}

type composed struct {
	chain       HandlerFunc
	errorStages []errorStage
}

func (c *composed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w)
	state := &requestState{}
	r = r.WithContext(withState(r.Context(), state))

	var cause error
	defer func() {
		p := recover()
		if p != nil {
			// only http.ErrAbortHandler escapes safeCall
			cause = http.ErrAbortHandler
		}
		state.finish(Outcome{
			Status: rw.Status(),
			Size:   rw.Size(),
			Err:    cause,
		})
		if p != nil {
			panic(p)
		}
	}()

	cause = safeCall(c.chain, rw, r)

	err := cause
	if err != nil {
		req := state.latest(r)
		for _, s := range c.errorStages {
			if err == nil {
				break
			}
			err = safeCall(func(w http.ResponseWriter, r *http.Request) error {
				return s.handle(w, r, err)
			}, rw, req)
		}
	}

	if err != nil && !rw.Written() {
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
