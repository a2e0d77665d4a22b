package main

import (
	"fmt"

	"github.com/shibukawa/stagerange"
	"github.com/shibukawa/stagerange/formatter"
)

// TraceCmd represents the trace command
type TraceCmd struct {
	File string `arg:"" optional:"" help:"Almanac file, '-' for stdin. Defaults to input from the config"`
	Mode string `help:"Seed interpretation (values, ranges). Defaults to solve.default_mode" short:"m"`
}

// Run executes the trace command
func (cmd *TraceCmd) Run(ctx *Context) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	mode, err := s.mode(cmd.Mode)
	if err != nil {
		return err
	}

	almanac, err := s.loadAlmanac(ctx, cmd.File)
	if err != nil {
		return err
	}

	result, err := almanac.Trace(mode, stagerange.SolveOptions{Logger: s.logger})
	if err != nil {
		return fmt.Errorf("trace failed: %w", err)
	}

	return formatter.NewReportFormatter().FormatTrace(ctx.Stdout, almanac.Categories(), result)
}
