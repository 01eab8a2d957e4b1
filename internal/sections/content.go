package sections

import (
	"strings"

	"github.com/abhisek/scholar/internal/lesson"
)

// MaxKeyPoints caps the key points extracted from a lesson.
const MaxKeyPoints = 10

// introductionPrefix marks the opening section, which is never a key point.
const introductionPrefix = "## 1. Introduction"

// ContentSections is the content-mode parse of a lesson body.
type ContentSections struct {
	Body      string
	Structure []lesson.Section
}

// ParseContent builds the lesson outline. A level-2 heading opens a section,
// a level-3 heading under an open section becomes a subsection, and every
// other line is body only. Body is always the unmodified input.
func ParseContent(text string) ContentSections {
	structure := []lesson.Section{}
	open := -1

	for _, l := range Scan(text) {
		if l.Kind != KindHeading {
			continue
		}
		switch l.Level {
		case 2:
			structure = append(structure, lesson.Section{
				Title:       l.Text,
				Subsections: []string{},
			})
			open = len(structure) - 1
		case 3:
			if open >= 0 {
				structure[open].Subsections = append(structure[open].Subsections, l.Text)
			}
		}
	}

	return ContentSections{Body: text, Structure: structure}
}

// KeyPoints collects level-2 headings (except the introduction) and "-" or
// "*" bullets in document order, keeping the first MaxKeyPoints.
func KeyPoints(text string) []string {
	points := []string{}
	for _, l := range Scan(text) {
		if len(points) == MaxKeyPoints {
			break
		}
		switch {
		case l.Kind == KindHeading && l.Level == 2:
			if strings.HasPrefix(l.Raw, introductionPrefix) {
				continue
			}
			if p := strings.TrimSpace(strings.ReplaceAll(l.Text, "#", "")); p != "" {
				points = append(points, p)
			}
		case l.Kind == KindBullet && l.Marker != '•':
			if l.Text != "" {
				points = append(points, l.Text)
			}
		}
	}
	return points
}

// WordCount is the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
