// Package openapi loads an OpenAPI 3.x or Swagger 2.0 document and serves it
// to the request pipeline through two middlewares: one that matches each
// request to its documented operation and one that validates requests, and
// optionally responses, against the operation's schemas.
//
// Documents are read asynchronously with [Load]; consumers [Future.Await]
// the compiled [Provider]. Schemas are validated with gojsonschema after
// OpenAPI 3.0 `nullable` has been rewritten into a JSON Schema type union.
package openapi
