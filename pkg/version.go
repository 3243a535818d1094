// Package vocan holds build information of the vocan application.
package vocan

var (
	// Version of vocan, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
