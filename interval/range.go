package interval

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when an endpoint computation leaves the int64 domain.
var ErrOverflow = errors.New("integer overflow")

// Range is a half-open interval [Start, End) over int64.
// A well-formed Range always satisfies Start <= End; it is empty when they are equal.
type Range struct {
	Start int64
	End   int64
}

// Normalize builds a Range from two endpoints given in any order.
func Normalize(a, b int64) Range {
	if a > b {
		a, b = b, a
	}

	return Range{Start: a, End: b}
}

// FromLength builds [start, start+length). length may be negative, in which
// case the endpoints are normalized.
func FromLength(start, length int64) (Range, error) {
	end, err := CheckedAdd(start, length)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range starting at %d with length %d", err, start, length)
	}

	return Normalize(start, end), nil
}

// CheckedAdd returns a+b or ErrOverflow when the sum does not fit in int64.
func CheckedAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}

	return a + b, nil
}

// CheckedSub returns a-b or ErrOverflow when the difference does not fit in int64.
func CheckedSub(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}

	return a - b, nil
}

// Len returns the number of integers covered by r.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// IsEmpty reports whether r covers no integer.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains reports whether v lies in [Start, End).
func (r Range) Contains(v int64) bool {
	return r.Start <= v && v < r.End
}

// Overlaps reports whether r and other share at least one integer.
// Ranges that only touch at a boundary do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Intersect returns the common part of r1 and r2. The boolean is false when
// the ranges are disjoint or only touch at a boundary.
func Intersect(r1, r2 Range) (Range, bool) {
	start := max(r1.Start, r2.Start)
	end := min(r1.End, r2.End)

	if start < end {
		return Range{Start: start, End: end}, true
	}

	return Range{}, false
}

// Subtract returns the parts of r1 not covered by r2, left remainder first.
// When the ranges do not overlap the result is r1 unchanged.
func Subtract(r1, r2 Range) []Range {
	if r1.Start >= r2.End || r1.End <= r2.Start {
		return []Range{r1}
	}

	difference := make([]Range, 0, 2)

	if r1.Start < r2.Start {
		difference = append(difference, Range{Start: r1.Start, End: r2.Start})
	}

	if r1.End > r2.End {
		difference = append(difference, Range{Start: r2.End, End: r1.End})
	}

	return difference
}

// TotalLen sums the lengths of ranges. It fails with ErrOverflow when the
// sum does not fit in int64.
func TotalLen(ranges []Range) (int64, error) {
	var total int64

	for _, r := range ranges {
		next, err := CheckedAdd(total, r.Len())
		if err != nil {
			return 0, err
		}

		total = next
	}

	return total, nil
}
