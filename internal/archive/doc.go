// Package archive keeps a local SQLite record of every contact submission the
// relay handled, including spam drops and provider failures.
//
// The archive is optional: the relay only opens it when contact.archive_path
// is configured, and write failures are logged by the caller rather than
// failing the request.
package archive
