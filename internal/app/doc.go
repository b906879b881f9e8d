// Package app implements the application instance the server bootstrap
// assembles: named request stages composed explicitly around a chi router,
// route groups attached by registrars, and error stages that turn any
// propagated error into a response.
//
// Request stages and route handlers use the error-returning [HandlerFunc]
// signature so an error can travel outward to the error stages instead of
// every handler rendering its own failure response.
package app
