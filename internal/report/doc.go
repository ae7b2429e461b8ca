// Package report renders run results and run history for people and
// tools. Three formats are provided: plain text for the terminal,
// Markdown for sharing, and JSON for programmatic consumers. All
// writers share the Writer interface, and MultiWriter fans one result
// out to several destinations.
package report
