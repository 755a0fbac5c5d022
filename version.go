// Package tsui5 holds build metadata shared by the CLI.
package tsui5

// Version is the current tsui5 release.
const Version = "0.3.0"
