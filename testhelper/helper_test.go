package testhelper

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	got := TrimIndent(t, `
		seeds: 1 2

		a-to-b map:
		  1 2 3
		`)

	assert.Equal(t, "seeds: 1 2\n\na-to-b map:\n  1 2 3\n", got)
}

func TestSampleAlmanac(t *testing.T) {
	sample := SampleAlmanac(t)

	assert.True(t, strings.HasPrefix(sample, "seeds: 79 14 55 13\n"))
	assert.Equal(t, 7, strings.Count(sample, " map:"))
}
