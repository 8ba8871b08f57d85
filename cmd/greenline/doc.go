// Package main hosts the greenline CLI entrypoint and command graph.
//
// The Cobra command tree maintains the site's project dataset (list, get,
// add, update, rename, remove, inc), assigns background videos to projects,
// inspects the contact relay's submission archive, and scaffolds
// configuration. Configuration and logger setup are resolved once per
// invocation in commandContext so subcommands only deal with presentation.
//
// Errors bubble up unchanged; main prints the user-facing message and maps
// the error kind to the exit status.
package main
