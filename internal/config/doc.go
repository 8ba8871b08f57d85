// Package config loads, normalizes, and validates Greenline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RESEND_API_KEY and EMAIL_TO so the contact relay can run on hosts that only
// inject secrets through the environment. The Config type centralizes every
// knob the CLI and the relay need: dataset and video locations, the matching
// tables, provider credentials, and logging.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical provider names, and clear validation errors.
package config
