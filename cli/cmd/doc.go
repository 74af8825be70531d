// Package cmd implements the acd subcommands: run, check, fmt, types and
// init.
package cmd

// ConfigIdentifier is the kong variable identifier containing the path to
// the configuration file written by init.
const ConfigIdentifier = "config"
