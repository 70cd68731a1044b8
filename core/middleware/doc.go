// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the trigger and debug routes.
//   - rayid: a per-request id (RayID) stored in the context locals and echoed
//     in the X-Ray-ID response header, picked up by logger.WithRayID.
//
// Register rayid first so every later log line carries the id.
package middleware
