// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and
// the handler:
//
//   - RayID: generates a unique request id for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Auth: API key validation protecting the merge endpoints.
//
// These components are registered globally in the server startup.
package middleware
