package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/shibukawa/stagerange/formatter"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	File  string `arg:"" optional:"" help:"Almanac file, '-' for stdin. Defaults to input from the config"`
	Rules bool   `help:"List the rules of every stage"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	almanac, err := s.loadAlmanac(ctx, cmd.File)
	if err != nil {
		return err
	}

	if cmd.Rules || ctx.Verbose {
		err := formatter.NewReportFormatter().FormatStages(ctx.Stdout, almanac.Categories(), almanac.Stages())
		if err != nil {
			return err
		}
	}

	if ctx.Quiet {
		return nil
	}

	_, err = fmt.Fprintln(ctx.Stdout, color.GreenString("Validation completed successfully: %d stages", len(almanac.Stages())))

	return err
}
