// Package bootstrap assembles the application instance and starts serving
// it.
//
// [Start] awaits the OpenAPI provider, attaches the fixed middleware chain,
// the route registry, and the error stages to a new [app.App], binds the
// listener, and logs the address it listens on. Any failure along the way is
// logged once and returned in [Result] instead of being raised.
package bootstrap
