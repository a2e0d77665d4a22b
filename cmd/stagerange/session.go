package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shibukawa/stagerange"
	"github.com/shibukawa/stagerange/logging"
)

// session is the state shared by the commands of one invocation.
type session struct {
	ctx     context.Context
	config  *stagerange.Config
	logger  *slog.Logger
	started time.Time
}

// openSession loads the configuration and prepares the logger.
func openSession(ctx *Context) (*session, error) {
	if ctx.Verbose && ctx.Quiet {
		return nil, ErrVerboseAndQuiet
	}

	config, err := stagerange.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logging.ParseLevel(config.Output.LogLevel)
	if err != nil {
		return nil, err
	}

	switch {
	case ctx.Verbose:
		level = logging.LevelDebug
	case ctx.Quiet:
		level = logging.LevelError
	}

	formatName := config.Output.LogFormat
	if ctx.LogFormat != "" {
		formatName = ctx.LogFormat
	}

	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	if ctx.NoColor || !config.Output.IsColorEnabled() {
		color.NoColor = true
	}

	runCtx := logging.WithRunID(context.Background(), uuid.NewString())
	logger := logging.FromContext(runCtx, logging.New(ctx.Stderr, level, format))

	return &session{
		ctx:     runCtx,
		config:  config,
		logger:  logger,
		started: time.Now(),
	}, nil
}

// loadAlmanac reads the almanac from file, the configured input or stdin ("-").
func (s *session) loadAlmanac(ctx *Context, file string) (*stagerange.Almanac, error) {
	if file == "" {
		file = s.config.Input
	}

	if file == "" {
		return nil, ErrNoInput
	}

	var (
		data []byte
		err  error
	)

	if file == "-" {
		data, err = io.ReadAll(ctx.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read almanac: %w", err)
	}

	almanac, err := stagerange.ParseAlmanac(string(data), s.config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	s.logger.Debug("almanac loaded",
		slog.String("file", file),
		slog.Int("stages", len(almanac.Stages())),
	)

	return almanac, nil
}

// mode resolves the --mode flag against the configured default.
func (s *session) mode(flag string) (stagerange.SeedMode, error) {
	if flag == "" {
		return s.config.Solve.DefaultMode, nil
	}

	return stagerange.ParseSeedMode(flag)
}

func (s *session) workers(flag int) int {
	if flag > 0 {
		return flag
	}

	return s.config.Solve.Workers
}
