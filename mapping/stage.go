// Package mapping implements offset rules and the stages built from them.
//
// A Stage maps every value inside one of its rule sources onto the matching
// destination; values outside all sources pass through unchanged.
package mapping

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/shibukawa/stagerange/interval"
)

// Sentinel errors for stage construction
var (
	ErrInvalidLength    = errors.New("rule length must be positive")
	ErrNegativeValue    = errors.New("rule start must be non-negative")
	ErrEmptyStage       = errors.New("stage has no rules")
	ErrOverlappingRules = errors.New("rule sources overlap")
)

// Triple is the raw form of a rule as it appears in input data:
// destination start, source start and length.
type Triple struct {
	Dest   int64
	Source int64
	Length int64
}

// Rule maps every value of Source onto Dest, keeping the offset from the start.
// Source and Dest always have the same length.
type Rule struct {
	Source interval.Range
	Dest   interval.Range
}

// NewRule converts a triple into a Rule.
func NewRule(t Triple) (Rule, error) {
	if t.Length <= 0 {
		return Rule{}, fmt.Errorf("%w: got %d", ErrInvalidLength, t.Length)
	}

	if t.Dest < 0 || t.Source < 0 {
		return Rule{}, fmt.Errorf("%w: dest=%d source=%d", ErrNegativeValue, t.Dest, t.Source)
	}

	source, err := interval.FromLength(t.Source, t.Length)
	if err != nil {
		return Rule{}, err
	}

	dest, err := interval.FromLength(t.Dest, t.Length)
	if err != nil {
		return Rule{}, err
	}

	return Rule{Source: source, Dest: dest}, nil
}

// Apply maps a value of the rule source into destination space.
func (r Rule) Apply(v int64) (int64, error) {
	offset, err := interval.CheckedSub(v, r.Source.Start)
	if err != nil {
		return 0, err
	}

	return interval.CheckedAdd(r.Dest.Start, offset)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Source, r.Dest)
}

// Stage is an ordered, read-only set of rules.
type Stage struct {
	name  string
	rules []Rule
}

// NewStage builds a stage from raw triples, keeping their order.
// Rules whose sources overlap make the stage ambiguous and are rejected.
func NewStage(name string, triples []Triple) (*Stage, error) {
	if len(triples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyStage, name)
	}

	rules := make([]Rule, 0, len(triples))

	for i, t := range triples {
		rule, err := NewRule(t)
		if err != nil {
			return nil, fmt.Errorf("stage %s, rule %d: %w", name, i+1, err)
		}

		rules = append(rules, rule)
	}

	if err := checkOverlap(name, rules); err != nil {
		return nil, err
	}

	return &Stage{name: name, rules: rules}, nil
}

func checkOverlap(name string, rules []Rule) error {
	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b Rule) int {
		return cmp.Compare(a.Source.Start, b.Source.Start)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Source.Overlaps(sorted[i].Source) {
			return fmt.Errorf("%w: stage %s, %s and %s", ErrOverlappingRules, name, sorted[i-1].Source, sorted[i].Source)
		}
	}

	return nil
}

// Name returns the stage label, e.g. "seed-to-soil".
func (s *Stage) Name() string {
	return s.name
}

// Rules returns a copy of the stage rules in stored order.
func (s *Stage) Rules() []Rule {
	return slices.Clone(s.rules)
}

// Len returns the rule count.
func (s *Stage) Len() int {
	return len(s.rules)
}

// ResolveScalar maps v through the first rule whose source contains it.
// Values outside every source are returned unchanged.
func (s *Stage) ResolveScalar(v int64) (int64, error) {
	for _, rule := range s.rules {
		if rule.Source.Contains(v) {
			return rule.Apply(v)
		}
	}

	return v, nil
}

// OverlapsAny reports whether r intersects at least one rule source.
func (s *Stage) OverlapsAny(r interval.Range) bool {
	for _, rule := range s.rules {
		if _, ok := interval.Intersect(r, rule.Source); ok {
			return true
		}
	}

	return false
}

// Resolution is the outcome of splitting one range against a stage.
type Resolution struct {
	// Mapped is the destination image of the overlapping part, or the input
	// itself when no rule matched.
	Mapped interval.Range
	// Matched is false when no rule intersected the input.
	Matched bool
	// Leftover holds the unmatched fragments. They still belong to this
	// stage and must be resolved again.
	Leftover []interval.Range
}

// ResolveRange splits r against the first rule whose source intersects it.
func (s *Stage) ResolveRange(r interval.Range) (Resolution, error) {
	for _, rule := range s.rules {
		ov, ok := interval.Intersect(r, rule.Source)
		if !ok {
			continue
		}

		start, err := rule.Apply(ov.Start)
		if err != nil {
			return Resolution{}, err
		}

		end, err := interval.CheckedAdd(start, ov.Len())
		if err != nil {
			return Resolution{}, err
		}

		return Resolution{
			Mapped:   interval.Range{Start: start, End: end},
			Matched:  true,
			Leftover: interval.Subtract(r, rule.Source),
		}, nil
	}

	return Resolution{Mapped: r}, nil
}
