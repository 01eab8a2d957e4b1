// Package prompts renders the instructions sent to the text-generation
// model. Both builders are pure: the same input always gives the same text.
package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/sections"
)

// MaxPromptKeyPoints caps the key points quoted back to the model.
const MaxPromptKeyPoints = 15

// Word range requested for a lesson.
const (
	MinLessonWords = 2000
	MaxLessonWords = 3000
)

// RubricItem is one weighted grading criterion.
type RubricItem struct {
	Criterion string
	Weight    int
}

// Rubric is the weighted grading scheme described to the model. Weights sum
// to 100.
var Rubric = []RubricItem{
	{"Accuracy of information", 30},
	{"Completeness of coverage", 25},
	{"Understanding depth", 20},
	{"Use of examples", 15},
	{"Clarity of explanation", 10},
}

// lessonOutline is the numbered skeleton the content parser expects.
var lessonOutline = []struct {
	Title       string
	Guide       string
	Subsections []string
}{
	{"1. Introduction and Overview", "What the topic is and why it matters", nil},
	{"2. Fundamental Concepts", "Core ideas and definitions", []string{"2.1", "2.2"}},
	{"3. Detailed Analysis", "A deeper walk through the topic", []string{"3.1", "3.2", "3.3"}},
	{"4. Practical Applications and Examples", "Worked, real-world examples", nil},
	{"5. Advanced Concepts", "Harder material for deeper understanding", nil},
	{"6. Current Research and Developments", "Recent work in the field", nil},
	{"7. Conclusion and Key Takeaways", "The main points and why they matter", nil},
}

// headingGuides tells the model what belongs under each analysis heading.
var headingGuides = map[string]string{
	sections.HeadingStrengths:        "3-5 specific strengths of the response. Be encouraging and honest.",
	sections.HeadingFalsePoints:      "Each incorrect claim or misconception, why it is wrong, and the correct version.",
	sections.HeadingMissingPoints:    "Important ideas from the lesson that the student left out or covered too thinly.",
	sections.HeadingExamplesQuality:  "How relevant and accurate the student's examples are.",
	sections.HeadingAreasLacking:     "Where the student's understanding looks shallow or incomplete.",
	sections.HeadingImprovements:     "Concrete, actionable suggestions.",
	sections.HeadingGrade:            "A single grade written exactly as \"Grade: X/10\".",
	sections.HeadingGradeExplanation: "Two or three sentences on why this grade was given.",
	sections.HeadingDetailedFeedback: "Supportive feedback that recognises the effort and shows the way forward.",
	sections.HeadingNextSteps:        "With a grade of 9 or 10, encourage moving on; otherwise name what to study next.",
}

type headingGuide struct {
	Name  string
	Guide string
}

var contentTemplate = template.Must(template.New("content").Parse(
	`You are a world-class educator and an expert in {{.Subject}}. Write an in-depth, well-organised lesson on "{{.Topic}}" for {{.Level}} students.

Requirements:
- Length: {{.MinWords}}-{{.MaxWords}} words.
- Use numbered topics and sub-topics with markdown headings and bullet points.
- Match the vocabulary and rigour to the {{.Level}} level.
- Include practical examples and applications, and keep it engaging.
- Stay factually accurate.

Use exactly this outline:

# {{.Topic}}
{{range .Outline}}
## {{.Title}}
[{{.Guide}}]
{{- range .Subsections}}
### {{.}} [Subtopic]
{{- end}}
{{end}}`))

var analysisTemplate = template.Must(template.New("analysis").Parse(
	`You are a world-class educator with decades of experience teaching students of every background. Your feedback is known for being specific, constructive and encouraging.

STUDENT
- Academic level: {{.Level}}
- Subject: {{.Subject}}
- Topic: {{.Topic}}

KEY POINTS FROM THE LESSON
{{- range .KeyPoints}}
• {{.}}
{{- end}}

LESSON SECTIONS
{{- range .Sections}}
• {{.}}
{{- end}}

STUDENT RESPONSE
"{{.Response}}"

Assess the response using exactly these headings, in this order:
{{range .Headings}}
## {{.Name}}
[{{.Guide}}]
{{end}}
Grade on a scale of 1-10 using these weights:
{{- range .Rubric}}
- {{.Criterion}} ({{.Weight}}%)
{{- end}}

Keep the tone supportive without lowering the standard, write for the {{.Level}} level, and make every suggestion actionable.
`))

// BuildContentPrompt renders the lesson-generation instruction.
func BuildContentPrompt(level, subject, topic string) (string, error) {
	data := struct {
		Level, Subject, Topic string
		MinWords, MaxWords    int
		Outline               any
	}{level, subject, topic, MinLessonWords, MaxLessonWords, lessonOutline}

	var buf bytes.Buffer
	if err := contentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render content prompt: %w", err)
	}
	return buf.String(), nil
}

// BuildAnalysisPrompt renders the grading instruction for a learner
// response to the given lesson. At most MaxPromptKeyPoints key points are
// quoted.
func BuildAnalysisPrompt(response string, content *lesson.Content, level, subject, topic string) (string, error) {
	var keyPoints []string
	var titles []string
	if content != nil {
		keyPoints = content.KeyPoints
		if len(keyPoints) > MaxPromptKeyPoints {
			keyPoints = keyPoints[:MaxPromptKeyPoints]
		}
		for _, s := range content.Structure {
			titles = append(titles, s.Title)
		}
	}

	headings := make([]headingGuide, 0, len(sections.AnalysisHeadings))
	for _, h := range sections.AnalysisHeadings {
		headings = append(headings, headingGuide{Name: h, Guide: headingGuides[h]})
	}

	data := struct {
		Level, Subject, Topic string
		KeyPoints             []string
		Sections              []string
		Response              string
		Headings              []headingGuide
		Rubric                []RubricItem
	}{level, subject, topic, keyPoints, titles, response, headings, Rubric}

	var buf bytes.Buffer
	if err := analysisTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render analysis prompt: %w", err)
	}
	return buf.String(), nil
}
