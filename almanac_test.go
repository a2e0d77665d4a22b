package stagerange

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/stagerange/almanacparser"
	"github.com/shibukawa/stagerange/interval"
	"github.com/shibukawa/stagerange/mapping"
	"github.com/shibukawa/stagerange/testhelper"
)

func sampleAlmanac(t *testing.T) *Almanac {
	t.Helper()

	almanac, err := ParseAlmanac(testhelper.SampleAlmanac(t), nil)
	assert.NoError(t, err)

	return almanac
}

func TestLowestLocationSample(t *testing.T) {
	almanac := sampleAlmanac(t)

	tests := []struct {
		name     string
		mode     SeedMode
		workers  int
		expected int64
	}{
		{"values", ModeValues, 0, 35},
		{"ranges", ModeRanges, 0, 46},
		{"ranges with one worker", ModeRanges, 1, 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowest, err := almanac.LowestLocation(context.Background(), tt.mode, SolveOptions{Workers: tt.workers})
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, lowest)
		})
	}

	_, err := almanac.LowestLocation(context.Background(), "pairs", SolveOptions{})
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestTraceAgreesWithLowestLocation(t *testing.T) {
	almanac := sampleAlmanac(t)

	for _, mode := range []SeedMode{ModeValues, ModeRanges} {
		lowest, err := almanac.LowestLocation(context.Background(), mode, SolveOptions{})
		assert.NoError(t, err)

		result, err := almanac.Trace(mode, SolveOptions{})
		assert.NoError(t, err)
		assert.Equal(t, lowest, result.Min, "mode %s", mode)
		assert.Equal(t, 7, len(result.Stages))
		assert.Equal(t, "seed-to-soil", result.Stages[0].Name)
	}
}

func TestTraceLogsWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := sampleAlmanac(t).Trace(ModeRanges, SolveOptions{Logger: logger})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "stage=humidity-to-location")
}

func TestSeeds(t *testing.T) {
	almanac := sampleAlmanac(t)

	values, err := almanac.SeedValues()
	assert.NoError(t, err)
	assert.Equal(t, []interval.Range{{Start: 79, End: 80}, {Start: 14, End: 15}, {Start: 55, End: 56}, {Start: 13, End: 14}}, values)

	ranges, err := almanac.SeedRanges()
	assert.NoError(t, err)
	assert.Equal(t, []interval.Range{{Start: 79, End: 93}, {Start: 55, End: 68}}, ranges)

	assert.Equal(t, []string{"seed", "soil", "fertilizer", "water", "light", "temperature", "humidity", "location"}, almanac.Categories())
	assert.Equal(t, 7, len(almanac.Stages()))
}

func TestSeedRangesOddCount(t *testing.T) {
	almanac, err := ParseAlmanac("seeds: 1 2 3\nseed-to-location map:\n1 2 3\n", &Config{Pipeline: PipelineConfig{
		ExpectedStages: intPtr(0),
		FirstCategory:  "seed",
		LastCategory:   "location",
	}})
	assert.NoError(t, err)

	_, err = almanac.SeedRanges()
	assert.True(t, errors.Is(err, ErrOddSeedCount))

	_, err = almanac.LowestLocation(context.Background(), ModeRanges, SolveOptions{})
	assert.True(t, errors.Is(err, ErrOddSeedCount))

	lowest, err := almanac.LowestLocation(context.Background(), ModeValues, SolveOptions{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), lowest)
}

func TestSeedRangesOverflow(t *testing.T) {
	doc := &almanacparser.Document{
		Seeds: []int64{1 << 62, 1 << 62},
		Maps:  []almanacparser.MapBlock{{Name: "seed-to-location", From: "seed", To: "location", Entries: []mapping.Triple{{Dest: 0, Source: 0, Length: 1}}}},
	}

	almanac, err := NewAlmanac(doc, &Config{Pipeline: PipelineConfig{ExpectedStages: intPtr(0)}})
	assert.NoError(t, err)

	_, err = almanac.SeedRanges()
	assert.True(t, errors.Is(err, interval.ErrOverflow))
}

func TestNewAlmanacErrors(t *testing.T) {
	anyCount := &Config{Pipeline: PipelineConfig{ExpectedStages: intPtr(0)}}
	relaxed := &Config{Pipeline: PipelineConfig{ExpectedStages: intPtr(0), StrictChain: boolPtr(false)}}
	strict := &Config{Pipeline: PipelineConfig{ExpectedStages: intPtr(0), FirstCategory: "seed", LastCategory: "location"}}

	tests := []struct {
		name     string
		src      string
		config   *Config
		expected error
		message  string
	}{
		{
			name:     "no seeds",
			src:      "seeds:\nseed-to-location map:\n1 2 3\n",
			config:   anyCount,
			expected: ErrNoSeeds,
		},
		{
			name:     "stage count",
			src:      "seeds: 1\nseed-to-location map:\n1 2 3\n",
			config:   nil,
			expected: ErrStageCountMismatch,
			message:  "expected 7",
		},
		{
			name:     "unset stage count means seven",
			src:      "seeds: 1\nseed-to-location map:\n1 2 3\n",
			config:   &Config{},
			expected: ErrStageCountMismatch,
			message:  "expected 7",
		},
		{
			name:     "no maps",
			src:      "seeds: 1\n",
			config:   anyCount,
			expected: ErrStageCountMismatch,
		},
		{
			name:     "broken chain",
			src:      "seeds: 1\na-to-b map:\n1 2 3\nc-to-d map:\n1 2 3\n",
			config:   relaxed,
			expected: ErrBrokenChain,
			message:  "line 4",
		},
		{
			name:     "wrong first category",
			src:      "seeds: 1\nsoil-to-location map:\n1 2 3\n",
			config:   strict,
			expected: ErrBrokenChain,
			message:  `start at "seed"`,
		},
		{
			name:     "wrong last category",
			src:      "seeds: 1\nseed-to-soil map:\n1 2 3\n",
			config:   strict,
			expected: ErrBrokenChain,
			message:  `end at "location"`,
		},
		{
			name:     "overlapping rules",
			src:      "seeds: 1\na-to-b map:\n0 10 5\n0 12 5\n",
			config:   relaxed,
			expected: mapping.ErrOverlappingRules,
			message:  "map a-to-b (line 2)",
		},
		{
			name:     "empty block",
			src:      "seeds: 1\na-to-b map:\n",
			config:   relaxed,
			expected: mapping.ErrEmptyStage,
		},
		{
			name:     "zero length rule",
			src:      "seeds: 1\na-to-b map:\n1 2 0\n",
			config:   relaxed,
			expected: mapping.ErrInvalidLength,
		},
		{
			name:     "syntax error",
			src:      "seeds: 1\na-to-b map:\n1 2\n",
			config:   relaxed,
			expected: almanacparser.ErrInvalidSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAlmanac(tt.src, tt.config)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestNewAlmanacNegativeSeed(t *testing.T) {
	doc := &almanacparser.Document{
		Seeds:     []int64{-1},
		SeedsLine: 1,
		Maps:      []almanacparser.MapBlock{{Name: "seed-to-location", From: "seed", To: "location", Entries: []mapping.Triple{{Dest: 0, Source: 0, Length: 1}}}},
	}

	_, err := NewAlmanac(doc, &Config{})
	assert.True(t, errors.Is(err, ErrNegativeSeed))
}

func TestRelaxedChainAcceptsAnyCategories(t *testing.T) {
	src := testhelper.TrimIndent(t, `
		seeds: 0 10
		a-to-b map:
		100 0 5
		b-to-c map:
		0 103 1
		`)

	almanac, err := ParseAlmanac(src, &Config{Pipeline: PipelineConfig{ExpectedStages: intPtr(0), StrictChain: boolPtr(false)}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, almanac.Categories())

	lowest, err := almanac.LowestLocation(context.Background(), ModeRanges, SolveOptions{})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), lowest)
}
