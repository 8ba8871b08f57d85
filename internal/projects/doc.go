// Package projects owns the carbon-credit project dataset: the Record type,
// the JSON file store and the CRUD service used by the greenline CLI.
//
// The dataset is a single JSON array on disk. Store serializes access with a
// lock file beside the dataset and replaces the file atomically; the CRUD save
// path sorts records by name using Portuguese collation, while the video
// mapping path rewrites records in their existing order.
package projects
