// Package videomatch associates dataset records with video files.
//
// An Index is built from a directory listing; a Matcher walks the records and
// assigns each one a canonical filename using, in order: the record's current
// valid mapping, the exact slug of its name, token overlap between the name
// (plus the link's last path segment) and each video, and finally exact slugs
// of the current value and the link. Resolve answers the read-only question
// "which file would the site show for this record". Watcher reruns a mapping
// when the directory changes.
package videomatch
