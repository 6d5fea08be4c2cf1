// Package cli defines the kong command surface: global context flags shared
// by every subcommand, the API connection flags, and the run and check
// commands themselves.
package cli

import "github.com/alecthomas/kong"

// Context carries the global flags that apply to every subcommand. Logging
// is configured from these in main before command dispatch.
type Context struct {
	LogLevel string `env:"SCRIBEMASTER_LOG_LEVEL" default:"info" enum:"error,warn,info,debug" help:"Log verbosity [${enum}]"`
	LogFile  string `env:"SCRIBEMASTER_LOG_FILE" type:"path" help:"Append logs to this file as well as the terminal"`
	Color    string `default:"auto" enum:"auto,always,never" help:"Colorize terminal output [${enum}]"`
}

// APIFlags carries the connection settings shared by commands that talk to
// the transcription API.
type APIFlags struct {
	APIKey string `env:"DEEPGRAM_API_KEY" help:"Deepgram API key (read from DEEPGRAM_API_KEY when not given)"`
	APIURL string `env:"DEEPGRAM_API_URL" default:"https://api.deepgram.com" help:"Deepgram API base URL"`
}

var CLI struct {
	Context `embed:""`

	Run   RunCMD   `cmd:"" default:"withargs" help:"Transcribe every media file in a directory. This is the default command."`
	Check CheckCMD `cmd:"" help:"Verify the API key and directory setup without transcribing anything"`

	Version kong.VersionFlag `short:"V" help:"Print version information and quit"`
}
