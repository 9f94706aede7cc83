// Command keyhost is a terminal host for the keybinding service: it wires
// built-in commands to their shortcuts, shows a command palette and reports
// every dispatched key in a status line.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Build information injected at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// CLI is the command-line interface.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Config   []string `help:"Config files, later files override earlier ones" type:"path" short:"c"`
	Platform string   `help:"Modifier conventions: auto, mac or other" env:"FERRUM_PLATFORM"`
	LogLevel string   `help:"Log level: debug, info, warn or error" env:"FERRUM_LOG_LEVEL"`
	LogFile  string   `help:"Write logs to this file" type:"path" env:"FERRUM_LOG_FILE"`
	Debug    bool     `help:"Shorthand for --log-level=debug" short:"d"`

	Run  RunCmd  `cmd:"" help:"Start the interactive host (default)" default:"1"`
	Keys KeysCmd `cmd:"" help:"List commands and their shortcuts"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("keyhost"),
		kong.Description("Terminal host for keybinding dispatch"),
		kong.Vars{
			"version": fmt.Sprintf("keyhost %s (commit: %s)", Version, Commit),
		},
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
