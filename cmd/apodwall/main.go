// Package main provides the entry point for the apodwall CLI.
//
// apodwall fetches the current Astronomy Picture of the Day, downloads
// the full-resolution image, and sets it as the desktop background.
//
// Usage:
//
//	apodwall run
//	apodwall history
//
// See --help for all available options.
package main

// main is the entry point for apodwall.
func main() {
	Execute()
}
