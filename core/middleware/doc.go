// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a request id (RayID) stored in the context and echoed in the
//     response headers, which logger.WithRayID picks up.
package middleware
