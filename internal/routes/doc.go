// Package routes holds the route registry: the ordered route groups every
// application instance serves, each attached through an [app.Registrar].
package routes
