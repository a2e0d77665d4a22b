// Package stagerange turns almanac documents into stage pipelines and finds
// the lowest location reachable from their seeds.
package stagerange

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shibukawa/stagerange/almanacparser"
	"github.com/shibukawa/stagerange/interval"
	"github.com/shibukawa/stagerange/mapping"
	"github.com/shibukawa/stagerange/pipeline"
)

// Almanac is a validated almanac: its seeds and the stages built from its
// map blocks.
type Almanac struct {
	seeds      []int64
	categories []string
	stages     []*mapping.Stage
}

// SolveOptions controls LowestLocation and Trace.
type SolveOptions struct {
	// Workers is the number of parallel runs in ranges mode. 0 means runtime.NumCPU().
	Workers int
	Logger  *slog.Logger
}

// ParseAlmanac parses src and builds an Almanac checked against cfg.
// A nil cfg uses DefaultConfig.
func ParseAlmanac(src string, cfg *Config) (*Almanac, error) {
	doc, err := almanacparser.Parse(src)
	if err != nil {
		return nil, err
	}

	return NewAlmanac(doc, cfg)
}

// NewAlmanac validates a parsed document and builds its stages.
func NewAlmanac(doc *almanacparser.Document, cfg *Config) (*Almanac, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if len(doc.Seeds) == 0 {
		return nil, ErrNoSeeds
	}

	for _, seed := range doc.Seeds {
		if seed < 0 {
			return nil, fmt.Errorf("%w: line %d: %d", ErrNegativeSeed, doc.SeedsLine, seed)
		}
	}

	expected := cfg.Pipeline.ExpectedStageCount()
	if expected > 0 && len(doc.Maps) != expected {
		return nil, fmt.Errorf("%w: expected %d map blocks, got %d", ErrStageCountMismatch, expected, len(doc.Maps))
	}

	if len(doc.Maps) == 0 {
		return nil, fmt.Errorf("%w: no map blocks", ErrStageCountMismatch)
	}

	if err := checkChain(doc.Maps, &cfg.Pipeline); err != nil {
		return nil, err
	}

	stages := make([]*mapping.Stage, 0, len(doc.Maps))
	categories := make([]string, 0, len(doc.Maps)+1)
	categories = append(categories, doc.Maps[0].From)

	for _, block := range doc.Maps {
		stage, err := mapping.NewStage(block.Name, block.Entries)
		if err != nil {
			return nil, fmt.Errorf("map %s (line %d): %w", block.Name, block.Line, err)
		}

		stages = append(stages, stage)
		categories = append(categories, block.To)
	}

	return &Almanac{
		seeds:      slices.Clone(doc.Seeds),
		categories: categories,
		stages:     stages,
	}, nil
}

func checkChain(maps []almanacparser.MapBlock, cfg *PipelineConfig) error {
	for i := 1; i < len(maps); i++ {
		prev, cur := maps[i-1], maps[i]
		if prev.To != cur.From {
			return fmt.Errorf("%w: line %d: %s follows %s", ErrBrokenChain, cur.Line, cur.Name, prev.Name)
		}
	}

	if !cfg.IsStrictChain() {
		return nil
	}

	first, last := maps[0], maps[len(maps)-1]

	if cfg.FirstCategory != "" && first.From != cfg.FirstCategory {
		return fmt.Errorf("%w: line %d: chain must start at %q, got %q", ErrBrokenChain, first.Line, cfg.FirstCategory, first.From)
	}

	if cfg.LastCategory != "" && last.To != cfg.LastCategory {
		return fmt.Errorf("%w: line %d: chain must end at %q, got %q", ErrBrokenChain, last.Line, cfg.LastCategory, last.To)
	}

	return nil
}

// Categories returns the category names from the first source to the last
// destination.
func (a *Almanac) Categories() []string {
	return slices.Clone(a.categories)
}

// Stages returns the stages in application order.
func (a *Almanac) Stages() []*mapping.Stage {
	return slices.Clone(a.stages)
}

// Pipeline builds a pipeline over the almanac stages.
func (a *Almanac) Pipeline(options ...pipeline.Options) (*pipeline.Pipeline, error) {
	return pipeline.New(a.stages, options...)
}

// SeedValues returns every seed as a one-value range.
func (a *Almanac) SeedValues() ([]interval.Range, error) {
	ranges := make([]interval.Range, 0, len(a.seeds))

	for _, seed := range a.seeds {
		r, err := interval.FromLength(seed, 1)
		if err != nil {
			return nil, err
		}

		ranges = append(ranges, r)
	}

	return ranges, nil
}

// SeedRanges reads the seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]interval.Range, error) {
	if len(a.seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrOddSeedCount, len(a.seeds))
	}

	ranges := make([]interval.Range, 0, len(a.seeds)/2)

	for i := 0; i < len(a.seeds); i += 2 {
		r, err := interval.FromLength(a.seeds[i], a.seeds[i+1])
		if err != nil {
			return nil, fmt.Errorf("seed pair %d: %w", i/2, err)
		}

		ranges = append(ranges, r)
	}

	return ranges, nil
}

// Seeds converts the seed line according to mode.
func (a *Almanac) Seeds(mode SeedMode) ([]interval.Range, error) {
	switch mode {
	case ModeValues:
		return a.SeedValues()
	case ModeRanges:
		return a.SeedRanges()
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownMode, mode)
	}
}

// LowestLocation returns the lowest location reachable from the seeds.
// ModeValues threads every seed value through the stages on its own;
// ModeRanges runs every seed range through the range engine, one run per
// range, spread over opts.Workers goroutines.
func (a *Almanac) LowestLocation(ctx context.Context, mode SeedMode, opts SolveOptions) (int64, error) {
	p, err := a.Pipeline(pipeline.Options{Logger: opts.Logger})
	if err != nil {
		return 0, err
	}

	switch mode {
	case ModeValues:
		return p.LowestScalar(a.seeds)
	case ModeRanges:
		ranges, err := a.SeedRanges()
		if err != nil {
			return 0, err
		}

		batches := make([][]interval.Range, 0, len(ranges))
		for _, r := range ranges {
			batches = append(batches, []interval.Range{r})
		}

		return p.LowestParallel(ctx, batches, opts.Workers)
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownMode, mode)
	}
}

// Trace runs all seeds in a single run and returns the full result with
// per-stage reports.
func (a *Almanac) Trace(mode SeedMode, opts SolveOptions) (*pipeline.Result, error) {
	seeds, err := a.Seeds(mode)
	if err != nil {
		return nil, err
	}

	p, err := a.Pipeline(pipeline.Options{Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	return p.Run(seeds)
}
