// Package journal records one row per wallpaper run in a local SQLite
// database: what was fetched, where it was written, and how the run
// ended. The history command reads it back; nothing in the pipeline
// depends on it.
package journal
