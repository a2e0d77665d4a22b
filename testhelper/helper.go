package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var whiteSpaces = regexp.MustCompile(`^(\s+)`)

// TrimIndent removes the indentation of the second line from every line and
// drops the first one, so fixtures can be written as indented raw strings.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")

	var indent string
	if len(lines) > 1 {
		indent = whiteSpaces.FindString(lines[1])
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines[1:], "\n")
}

// SampleAlmanac returns the small almanac used across package tests.
// The lowest location is 35 for single seeds and 46 for seed ranges.
func SampleAlmanac(t *testing.T) string {
	t.Helper()

	return TrimIndent(t, `
		seeds: 79 14 55 13

		seed-to-soil map:
		50 98 2
		52 50 48

		soil-to-fertilizer map:
		0 15 37
		37 52 2
		39 0 15

		fertilizer-to-water map:
		49 53 8
		0 11 42
		42 0 7
		57 7 4

		water-to-light map:
		88 18 7
		18 25 70

		light-to-temperature map:
		45 77 23
		81 45 19
		68 64 13

		temperature-to-humidity map:
		0 69 1
		1 0 69

		humidity-to-location map:
		60 56 37
		56 93 4
		`)
}
