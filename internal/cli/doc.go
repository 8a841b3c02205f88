// Package cli parses command-line flags into an app.AppConfig and owns
// process-level concerns such as usage output and exit codes.
package cli
