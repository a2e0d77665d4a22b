package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shibukawa/stagerange"
	"github.com/shibukawa/stagerange/formatter"
)

// SolveCmd represents the solve command
type SolveCmd struct {
	File    string `arg:"" optional:"" help:"Almanac file, '-' for stdin. Defaults to input from the config"`
	Mode    string `help:"Seed interpretation (values, ranges). Defaults to solve.default_mode" short:"m"`
	Workers int    `help:"Number of parallel runs in ranges mode (0 uses solve.workers)" default:"0"`
}

// Run executes the solve command
func (cmd *SolveCmd) Run(ctx *Context) error {
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

	lowest, err := almanac.LowestLocation(s.ctx, mode, stagerange.SolveOptions{
		Workers: s.workers(cmd.Workers),
		Logger:  s.logger,
	})
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	s.logger.Info("solved",
		slog.String("mode", string(mode)),
		slog.Int64("lowest", lowest),
		slog.Duration("elapsed", time.Since(s.started)),
	)

	if ctx.Quiet {
		_, err = fmt.Fprintln(ctx.Stdout, lowest)
		return err
	}

	categories := almanac.Categories()

	return formatter.NewReportFormatter().FormatLowest(ctx.Stdout, categories[len(categories)-1], string(mode), lowest)
}
