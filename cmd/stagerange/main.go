package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

const version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config    string
	Verbose   bool
	Quiet     bool
	LogFormat string
	NoColor   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type cli struct {
	Config    string      `help:"Configuration file path" default:"stagerange.yaml"`
	Verbose   bool        `help:"Enable verbose output" short:"v"`
	Quiet     bool        `help:"Suppress log output" short:"q"`
	LogFormat string      `help:"Log format (text, json). Overrides output.log_format" name:"log-format"`
	NoColor   bool        `help:"Disable colored output" name:"no-color"`
	Solve     SolveCmd    `cmd:"" help:"Print the lowest location reachable from the seeds"`
	Trace     TraceCmd    `cmd:"" help:"Show what every stage did to the seed ranges"`
	Validate  ValidateCmd `cmd:"" help:"Parse an almanac and build its stages"`
	Version   VersionCmd  `cmd:"" help:"Show version information"`
}

// CLI holds the parsed command line
var CLI cli

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "stagerange %s\n", version)
	return err
}

func newContext(c *cli) *Context {
	return &Context{
		Config:    c.Config,
		Verbose:   c.Verbose,
		Quiet:     c.Quiet,
		LogFormat: c.LogFormat,
		NoColor:   c.NoColor,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("stagerange"),
		kong.Description("Push integer ranges through chained mapping stages"),
		kong.UsageOnError(),
	)

	err := ctx.Run(newContext(&CLI))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
