package main

import "errors"

// Sentinel errors for command operations
var (
	ErrNoInput         = errors.New("no almanac file given: pass a file or set input in the config")
	ErrVerboseAndQuiet = errors.New("--verbose and --quiet are mutually exclusive")
)
