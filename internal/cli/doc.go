// Package cli parses the command-line surface of modgridgo and translates it
// into an app.Config.
package cli
