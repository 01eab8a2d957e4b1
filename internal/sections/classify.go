// Package sections turns heading-delimited model output into typed records.
//
// Parsing happens in two steps. Classify tags every line with a kind and a
// payload; small accumulators then fold the tagged lines into a lesson
// outline (content mode) or an analysis record (analysis mode). Neither
// accumulator can fail: malformed input degrades to defaults.
package sections

import "strings"

// Kind classifies a single line of model output.
type Kind int

const (
	KindBlank   Kind = iota
	KindHeading      // "#" run followed by a space, e.g. "## 2. Concepts"
	KindMarker       // any other line starting with "#"
	KindBullet       // "- x", "* x" or "• x"
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeading:
		return "heading"
	case KindMarker:
		return "marker"
	case KindBullet:
		return "bullet"
	default:
		return "text"
	}
}

// Line is one classified line. Raw is the trimmed source line; Text is the
// payload with the heading or bullet marker removed.
type Line struct {
	Kind   Kind
	Level  int  // heading depth, set for KindHeading only
	Marker rune // bullet rune, set for KindBullet only
	Raw    string
	Text   string
}

// Classify tags a single line.
func Classify(line string) Line {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Line{Kind: KindBlank}
	}

	if raw[0] == '#' {
		depth := 0
		for depth < len(raw) && raw[depth] == '#' {
			depth++
		}
		if depth < len(raw) && raw[depth] == ' ' {
			return Line{
				Kind:  KindHeading,
				Level: depth,
				Raw:   raw,
				Text:  strings.TrimSpace(raw[depth+1:]),
			}
		}
		return Line{Kind: KindMarker, Raw: raw, Text: raw}
	}

	if marker, rest, ok := cutBullet(raw); ok {
		return Line{Kind: KindBullet, Marker: marker, Raw: raw, Text: rest}
	}

	return Line{Kind: KindText, Raw: raw, Text: raw}
}

// Scan classifies every line of text in order.
func Scan(text string) []Line {
	src := strings.Split(text, "\n")
	out := make([]Line, 0, len(src))
	for _, l := range src {
		out = append(out, Classify(l))
	}
	return out
}

// cutBullet strips one leading list marker. "•" is accepted with or without
// a following space; "-" and "*" need whitespace after them so that
// "**bold**" and "---" stay text.
func cutBullet(raw string) (rune, string, bool) {
	if rest, ok := strings.CutPrefix(raw, "•"); ok {
		return '•', strings.TrimSpace(rest), true
	}
	switch raw[0] {
	case '-', '*':
		if len(raw) == 1 {
			return rune(raw[0]), "", true
		}
		if raw[1] == ' ' || raw[1] == '\t' {
			return rune(raw[0]), strings.TrimSpace(raw[2:]), true
		}
	}
	return 0, "", false
}
