// Package pipeline drives sets of ranges through successive mapping stages
// and reports the lowest value reachable at the end.
//
// Each stage is processed with a work-list. A range that overlaps no rule is
// passed through as is; otherwise the overlapping part is mapped and the
// remaining fragments are queued again for the same stage, since they may
// match another rule. The work-list of a stage is discarded once it is empty
// and the collected ranges become the input of the next stage.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/shibukawa/stagerange/interval"
	"github.com/shibukawa/stagerange/mapping"
)

// Sentinel errors
var (
	ErrNoStages = errors.New("pipeline has no stages")
	ErrNilStage = errors.New("pipeline stage is nil")
	ErrNoRanges = errors.New("no ranges to process")
)

// Options configures a Pipeline.
type Options struct {
	// Logger receives debug records at stage boundaries. Nil disables logging.
	Logger *slog.Logger
}

// Pipeline is an immutable sequence of stages. It is safe to run the same
// Pipeline from several goroutines; every run owns its own work-list.
type Pipeline struct {
	stages []*mapping.Stage
	logger *slog.Logger
}

// New creates a pipeline over stages, applied in the given order.
func New(stages []*mapping.Stage, options ...Options) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	for i, stage := range stages {
		if stage == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilStage, i)
		}
	}

	opts := Options{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Pipeline{
		stages: slices.Clone(stages),
		logger: opts.Logger,
	}, nil
}

// Stages returns the stages in application order.
func (p *Pipeline) Stages() []*mapping.Stage {
	return slices.Clone(p.stages)
}

// StageReport summarizes the work done for one stage during a run.
type StageReport struct {
	Name string
	// Inputs is the number of ranges entering the stage.
	Inputs int
	// Outputs is the number of ranges handed to the next stage.
	Outputs int
	// Mapped counts ranges produced by a rule.
	Mapped int
	// PassedThrough counts ranges that matched no rule.
	PassedThrough int
	// Requeued counts leftover fragments pushed back onto the work-list.
	Requeued int
	// Span is the total length of the output ranges. It always equals the
	// total length of the inputs. It saturates at math.MaxInt64 when the
	// sum does not fit in int64.
	Span int64
}

// Result is the outcome of a run.
type Result struct {
	// Ranges holds the output of the last stage.
	Ranges []interval.Range
	// Min is the lowest start over Ranges.
	Min    int64
	Stages []StageReport
}

// Run pushes seeds through every stage. Empty seed ranges are ignored.
func (p *Pipeline) Run(seeds []interval.Range) (*Result, error) {
	current := make([]interval.Range, 0, len(seeds))
	for _, seed := range seeds {
		if !seed.IsEmpty() {
			current = append(current, seed)
		}
	}

	if len(current) == 0 {
		return nil, ErrNoRanges
	}

	reports := make([]StageReport, 0, len(p.stages))

	for _, stage := range p.stages {
		next, report, err := runStage(stage, current)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		if p.logger != nil {
			p.logger.Debug("stage finished",
				slog.String("stage", report.Name),
				slog.Int("inputs", report.Inputs),
				slog.Int("outputs", report.Outputs),
				slog.Int("mapped", report.Mapped),
				slog.Int("passed_through", report.PassedThrough),
				slog.Int("requeued", report.Requeued),
			)
		}

		reports = append(reports, report)
		current = next
	}

	lowest := current[0].Start
	for _, r := range current[1:] {
		lowest = min(lowest, r.Start)
	}

	return &Result{
		Ranges: current,
		Min:    lowest,
		Stages: reports,
	}, nil
}

// runStage resolves every input range against stage and returns the
// accumulated output. The leftover of a split re-enters the same work-list.
func runStage(stage *mapping.Stage, inputs []interval.Range) ([]interval.Range, StageReport, error) {
	report := StageReport{Name: stage.Name(), Inputs: len(inputs)}

	queue := newWorkList(inputs)
	accumulator := make([]interval.Range, 0, len(inputs))

	for {
		r, ok := queue.popFront()
		if !ok {
			break
		}

		if !stage.OverlapsAny(r) {
			accumulator = append(accumulator, r)
			report.PassedThrough++

			continue
		}

		res, err := stage.ResolveRange(r)
		if err != nil {
			return nil, report, err
		}

		accumulator = append(accumulator, res.Mapped)
		report.Mapped++

		for _, fragment := range res.Leftover {
			queue.pushBack(fragment)
			report.Requeued++
		}
	}

	report.Outputs = len(accumulator)
	span, err := interval.TotalLen(accumulator)
	if err != nil {
		span = math.MaxInt64
	}

	report.Span = span

	return accumulator, report, nil
}

// Lowest returns the lowest value reachable from seeds.
func (p *Pipeline) Lowest(seeds []interval.Range) (int64, error) {
	result, err := p.Run(seeds)
	if err != nil {
		return 0, err
	}

	return result.Min, nil
}

// ResolveScalar threads a single value through every stage.
func (p *Pipeline) ResolveScalar(v int64) (int64, error) {
	for _, stage := range p.stages {
		next, err := stage.ResolveScalar(v)
		if err != nil {
			return 0, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		v = next
	}

	return v, nil
}

// LowestScalar returns the lowest value reached by any of values.
func (p *Pipeline) LowestScalar(values []int64) (int64, error) {
	if len(values) == 0 {
		return 0, ErrNoRanges
	}

	var lowest int64

	for i, v := range values {
		location, err := p.ResolveScalar(v)
		if err != nil {
			return 0, err
		}

		if i == 0 || location < lowest {
			lowest = location
		}
	}

	return lowest, nil
}
