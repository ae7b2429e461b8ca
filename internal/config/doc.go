// Package config provides configuration structures and utilities for
// apodwall. It defines the defaults for the daily picture page, the
// wallpaper and log file locations, and the optional .apodwall yaml file
// that overrides them.
package config
