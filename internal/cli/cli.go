// Package cli provides the command-line interface for proppanel.
package cli

type CommandLineOpts struct {
	Version  bool   `short:"v" long:"version" description:"Show the program version"`
	LogLevel string `long:"log-level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info" description:"Minimum level of log messages"`

	TuiCommand     TuiCommand     `command:"tui" subcommands-optional:"true"`
	ShowCommand    ShowCommand    `command:"show" subcommands-optional:"true"`
	SetCommand     SetCommand     `command:"set" subcommands-optional:"true"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true"`
}

var Opts CommandLineOpts
