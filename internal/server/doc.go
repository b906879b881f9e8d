// Package server runs the HTTP listener lifecycle.
//
// Binding is synchronous so callers learn about bind failures immediately;
// serving happens in the background until [HTTPServer.Run]'s context is
// done, after which the server shuts down gracefully.
package server
