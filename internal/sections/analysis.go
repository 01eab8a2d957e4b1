package sections

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/scholar/internal/lesson"
)

// Analysis headings in the order the model is asked to emit them.
const (
	HeadingStrengths        = "STRENGTHS"
	HeadingFalsePoints      = "FALSE POINTS"
	HeadingMissingPoints    = "MISSING POINTS"
	HeadingExamplesQuality  = "EXAMPLES QUALITY"
	HeadingAreasLacking     = "AREAS LACKING"
	HeadingImprovements     = "IMPROVEMENTS"
	HeadingGrade            = "GRADE"
	HeadingGradeExplanation = "GRADE EXPLANATION"
	HeadingDetailedFeedback = "DETAILED FEEDBACK"
	HeadingNextSteps        = "NEXT STEPS"
)

// AnalysisHeadings lists every analysis heading in prompt order.
var AnalysisHeadings = []string{
	HeadingStrengths,
	HeadingFalsePoints,
	HeadingMissingPoints,
	HeadingExamplesQuality,
	HeadingAreasLacking,
	HeadingImprovements,
	HeadingGrade,
	HeadingGradeExplanation,
	HeadingDetailedFeedback,
	HeadingNextSteps,
}

// DefaultGrade is used when no "<n>/10" pattern is found.
const DefaultGrade = 5

// Fallback text for fields the model left empty.
const (
	DefaultStrength         = "You attempted to engage with the topic, which shows initiative."
	DefaultImprovement      = "Continue studying the material and practice explaining concepts in your own words."
	DefaultDetailedFeedback = "Keep working on understanding the core concepts. Learning is a process, and every attempt helps you grow."
	NextStepsPassed         = "Excellent work! You can confidently move on to the next topic."
	NextStepsRetry          = "Review the areas mentioned above and try explaining the topic again when you feel ready."
)

type fieldKind int

const (
	listField fieldKind = iota
	scalarField
	gradeField
)

// headingsBySpecificity holds the headings longest first so that a line
// carrying "## GRADE EXPLANATION" selects that field and not GRADE.
var headingsBySpecificity = func() []string {
	hs := append([]string(nil), AnalysisHeadings...)
	sort.SliceStable(hs, func(i, j int) bool { return len(hs[i]) > len(hs[j]) })
	return hs
}()

var gradePattern = regexp.MustCompile(`(\d+)/10`)

// analysisAccumulator folds classified lines into an Analysis. Its only
// state is the heading currently being filled.
type analysisAccumulator struct {
	target   string
	lists    map[string][]string
	scalars  map[string][]string
	grade    int
	gradeSet bool
}

func newAnalysisAccumulator() *analysisAccumulator {
	return &analysisAccumulator{
		lists:   make(map[string][]string),
		scalars: make(map[string][]string),
		grade:   DefaultGrade,
	}
}

func kindOf(heading string) fieldKind {
	switch heading {
	case HeadingGrade:
		return gradeField
	case HeadingExamplesQuality, HeadingGradeExplanation, HeadingDetailedFeedback, HeadingNextSteps:
		return scalarField
	default:
		return listField
	}
}

// matchHeading returns the analysis heading named on the line, if any.
// Matching is a case-sensitive substring test on "## NAME".
func matchHeading(raw string) (string, bool) {
	for _, h := range headingsBySpecificity {
		if strings.Contains(raw, "## "+h) {
			return h, true
		}
	}
	return "", false
}

func (a *analysisAccumulator) feed(l Line) {
	if l.Kind == KindBlank {
		return
	}
	if h, ok := matchHeading(l.Raw); ok {
		a.target = h
		return
	}
	if a.target == "" || l.Kind == KindHeading || l.Kind == KindMarker {
		return
	}

	switch kindOf(a.target) {
	case listField:
		if item := listItem(l); item != "" {
			a.lists[a.target] = append(a.lists[a.target], item)
		}
	case scalarField:
		a.scalars[a.target] = append(a.scalars[a.target], l.Raw)
	case gradeField:
		if !a.gradeSet {
			if g, ok := findGrade(l.Raw); ok {
				a.grade = g
				a.gradeSet = true
			}
		}
	}
}

// listItem strips every leading marker rune and space from a list line,
// spaced or not, so "-point" and "- point" read the same.
func listItem(l Line) string {
	if strings.IndexAny(l.Raw, "•-*") != 0 {
		return l.Text
	}
	return strings.TrimSpace(strings.TrimLeft(l.Raw, "•-* "))
}

// findGrade returns the first in-range "<n>/10" on the line. A number glued
// to a decimal point or followed by more digits ("7.5/10", "3/100") does not
// count.
func findGrade(line string) (int, bool) {
	for _, m := range gradePattern.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[2], m[1]
		if start > 0 && line[start-1] == '.' {
			continue
		}
		if end < len(line) && line[end] >= '0' && line[end] <= '9' {
			continue
		}
		n, err := strconv.Atoi(line[m[2]:m[3]])
		if err != nil || n < 1 || n > 10 {
			continue
		}
		return n, true
	}
	return 0, false
}

func (a *analysisAccumulator) list(h string) []string {
	if l := a.lists[h]; l != nil {
		return l
	}
	return []string{}
}

func (a *analysisAccumulator) scalar(h string) string {
	return strings.Join(a.scalars[h], " ")
}

func (a *analysisAccumulator) result() lesson.Analysis {
	out := lesson.Analysis{
		Strengths:        a.list(HeadingStrengths),
		FalsePoints:      a.list(HeadingFalsePoints),
		MissingPoints:    a.list(HeadingMissingPoints),
		ExamplesQuality:  a.scalar(HeadingExamplesQuality),
		AreasLacking:     a.list(HeadingAreasLacking),
		Improvements:     a.list(HeadingImprovements),
		Grade:            a.grade,
		GradeExplanation: a.scalar(HeadingGradeExplanation),
		DetailedFeedback: a.scalar(HeadingDetailedFeedback),
		NextSteps:        a.scalar(HeadingNextSteps),
	}

	if len(out.Strengths) == 0 {
		out.Strengths = []string{DefaultStrength}
	}
	if len(out.Improvements) == 0 {
		out.Improvements = []string{DefaultImprovement}
	}
	if out.DetailedFeedback == "" {
		out.DetailedFeedback = DefaultDetailedFeedback
	}

	passed := lesson.Passed(out.Grade)
	if out.NextSteps == "" {
		if passed {
			out.NextSteps = NextStepsPassed
		} else {
			out.NextSteps = NextStepsRetry
		}
	}
	out.CanProceed = passed
	out.CelebrationWorthy = passed
	return out
}

// ParseAnalysis folds an analysis reply into a fully populated record.
// Headings may come in any order or be missing; unknown headings are
// dropped. It never fails.
func ParseAnalysis(text string) lesson.Analysis {
	acc := newAnalysisAccumulator()
	for _, l := range Scan(text) {
		acc.feed(l)
	}
	return acc.result()
}
