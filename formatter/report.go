// Package formatter renders pipeline results for the terminal.
package formatter

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/shibukawa/stagerange/interval"
	"github.com/shibukawa/stagerange/mapping"
	"github.com/shibukawa/stagerange/pipeline"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleFmt  = color.New(color.FgBlue, color.Bold).SprintfFunc()
	stageFmt  = color.New(color.FgCyan).SprintfFunc()
	countFmt  = color.New(color.FgYellow).SprintfFunc()
	resultFmt = color.New(color.FgGreen, color.Bold).SprintfFunc()
	faintFmt  = color.New(color.Faint).SprintfFunc()
)

const (
	arrowGlyph = "->"
	// maxListedRanges limits the number of final ranges printed by FormatTrace.
	maxListedRanges = 20
)

// ReportFormatter writes human readable reports.
type ReportFormatter struct {
	caser cases.Caser
}

// NewReportFormatter creates a formatter. Colors follow color.NoColor.
func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{
		caser: cases.Title(language.English),
	}
}

// CategoryTitle converts "temperature" to "Temperature".
func (f *ReportFormatter) CategoryTitle(category string) string {
	return f.caser.String(category)
}

func (f *ReportFormatter) transition(from, to string) string {
	return f.CategoryTitle(from) + " " + arrowGlyph + " " + f.CategoryTitle(to)
}

// FormatTrace writes one line per stage followed by the final ranges and
// the lowest value. categories holds len(result.Stages)+1 names; when it is
// shorter the stage names are used instead.
func (f *ReportFormatter) FormatTrace(w io.Writer, categories []string, result *pipeline.Result) error {
	labels := make([]string, len(result.Stages))
	width := 0

	for i, report := range result.Stages {
		if len(categories) == len(result.Stages)+1 {
			labels[i] = f.transition(categories[i], categories[i+1])
		} else {
			labels[i] = report.Name
		}

		width = max(width, len(labels[i]))
	}

	var b strings.Builder

	b.WriteString(titleFmt("Stages"))
	b.WriteString("\n")

	for i, report := range result.Stages {
		fmt.Fprintf(&b, "  %s  in %s  out %s  mapped %s  passed %s  requeued %s  span %d\n",
			stageFmt("%-*s", width, labels[i]),
			countFmt("%4d", report.Inputs),
			countFmt("%4d", report.Outputs),
			countFmt("%4d", report.Mapped),
			countFmt("%4d", report.PassedThrough),
			countFmt("%4d", report.Requeued),
			report.Span,
		)
	}

	ranges := sortedRanges(result.Ranges)

	fmt.Fprintf(&b, "%s (%d)\n", titleFmt("Ranges"), len(ranges))

	for i, r := range ranges {
		if i == maxListedRanges {
			b.WriteString(faintFmt("  ... %d more", len(ranges)-maxListedRanges))
			b.WriteString("\n")

			break
		}

		fmt.Fprintf(&b, "  %s\n", r)
	}

	fmt.Fprintf(&b, "%s %s\n", titleFmt("Lowest:"), resultFmt("%d", result.Min))

	_, err := io.WriteString(w, b.String())

	return err
}

// FormatLowest writes the single line answer of the solve command.
func (f *ReportFormatter) FormatLowest(w io.Writer, category string, mode string, lowest int64) error {
	_, err := fmt.Fprintf(w, "Lowest %s (%s): %s\n", strings.ToLower(category), mode, resultFmt("%d", lowest))
	return err
}

// FormatStages lists the stages and their rules.
func (f *ReportFormatter) FormatStages(w io.Writer, categories []string, stages []*mapping.Stage) error {
	var b strings.Builder

	for i, stage := range stages {
		label := stage.Name()
		if len(categories) == len(stages)+1 {
			label = f.transition(categories[i], categories[i+1])
		}

		fmt.Fprintf(&b, "%s %s\n", stageFmt("%s", label), faintFmt("(%d rules)", stage.Len()))

		for _, rule := range stage.Rules() {
			fmt.Fprintf(&b, "  %s\n", rule)
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func sortedRanges(ranges []interval.Range) []interval.Range {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b interval.Range) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	return sorted
}
