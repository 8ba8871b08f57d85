// Package services defines the cross-cutting primitives shared by the
// dataset tooling and the contact relay.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with a
//     kind (validation, not found, conflict, upstream, configuration,
//     internal) and a user-facing message.
//   - Boundary helpers that translate those kinds into HTTP status codes and
//     process exit codes.
//   - Context helpers that stamp request correlation identifiers for logging.
//
// Only the outermost layer (CLI entrypoint, HTTP handler) should translate
// errors; everything below returns wrapped markers.
package services
