// Package preflight provides readiness checks for the filesystem paths and
// email provider that greenline depends on.
//
// These checks run in two contexts:
//   - greenlined runs RunAll at startup and logs a warning per failed check.
//     The relay still starts so the site gets JSON errors instead of
//     connection failures.
//   - The CLI "greenline check" command renders every result and exits
//     non-zero when a required check fails.
//
// Network probes only run when requested; the default checks are local.
package preflight
