package stagerange

import "errors"

// Common errors used throughout the stagerange package
var (
	// Almanac errors

	// ErrNoSeeds is returned when the almanac declares no seed numbers.
	ErrNoSeeds = errors.New("almanac declares no seeds")
	// ErrOddSeedCount indicates seeds cannot be read as (start, length) pairs.
	ErrOddSeedCount = errors.New("seed ranges need an even number of values")
	// ErrStageCountMismatch indicates the almanac has an unexpected number of map blocks.
	ErrStageCountMismatch = errors.New("unexpected number of stages")
	// ErrBrokenChain indicates a map block does not start where the previous one ended.
	ErrBrokenChain = errors.New("map blocks do not form a chain")
	// ErrNegativeSeed indicates a seed value or length below zero.
	ErrNegativeSeed = errors.New("seed values must be non-negative")

	// Solve errors

	// ErrUnknownMode indicates an unsupported seed interpretation mode.
	ErrUnknownMode = errors.New("unknown seed mode")

	// Configuration errors

	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
)
