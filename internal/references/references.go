// Package references builds citation-like links for a lesson from static
// tables. Nothing here touches the network; the URLs are search links that
// are constructed, not verified.
package references

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/abhisek/scholar/internal/lesson"
)

// Academic level keys.
const (
	LevelHighSchool    = "high_school"
	LevelUndergraduate = "undergraduate"
	LevelGraduate      = "graduate"
)

// template renders one reference for a (subject, topic) pair.
type template struct {
	title func(subject, topic string) string
	url   func(topic string) string
	kind  string
}

func titled(site string) func(string, string) string {
	return func(_, topic string) string { return topic + " - " + site }
}

// query escapes spaces as "+".
func query(prefix, suffix string) func(string) string {
	return func(topic string) string { return prefix + url.QueryEscape(topic) + suffix }
}

// pathQuery escapes spaces as "%20".
func pathQuery(prefix string) func(string) string {
	return func(topic string) string { return prefix + url.PathEscape(topic) }
}

// slug joins lowercased words with dashes.
func slug(prefix, suffix string, lower bool) func(string) string {
	return func(topic string) string {
		s := topic
		if lower {
			s = strings.ToLower(s)
		}
		s = strings.Join(strings.Fields(s), "-")
		return prefix + url.PathEscape(s) + suffix
	}
}

var byLevel = map[string][]template{
	LevelHighSchool: {
		{titled("Khan Academy"), pathQuery("https://www.khanacademy.org/search?search_again=1&page_search_query="), "Educational Resource"},
		{titled("Britannica"), query("https://www.britannica.com/search?query=", ""), "Encyclopedia"},
		{
			func(subject, topic string) string {
				return fmt.Sprintf("%s: %s - National Geographic Education", subject, topic)
			},
			slug("https://education.nationalgeographic.org/resource/", "", true),
			"Educational Article",
		},
	},
	LevelUndergraduate: {
		{titled("MIT OpenCourseWare"), query("https://ocw.mit.edu/search/?q=", ""), "Academic Course"},
		{titled("Stanford Encyclopedia of Philosophy"), query("https://plato.stanford.edu/search/searcher.py?query=", ""), "Academic Reference"},
		{
			func(subject, topic string) string { return fmt.Sprintf("%s and %s - Coursera", subject, topic) },
			pathQuery("https://www.coursera.org/search?query="),
			"Online Course",
		},
		{
			func(_, topic string) string { return topic + " Research - Google Scholar" },
			query("https://scholar.google.com/scholar?q=", ""),
			"Academic Papers",
		},
	},
	LevelGraduate: {
		{titled("Nature Journal"), query("https://www.nature.com/search?q=", ""), "Scientific Journal"},
		{
			func(_, topic string) string { return topic + " Research - PubMed" },
			query("https://pubmed.ncbi.nlm.nih.gov/?term=", ""),
			"Medical Research",
		},
		{titled("IEEE Xplore"), query("https://ieeexplore.ieee.org/search/searchresult.jsp?queryText=", ""), "Technical Papers"},
		{titled("ResearchGate"), query("https://www.researchgate.net/search?q=", ""), "Research Network"},
		{
			func(subject, topic string) string { return fmt.Sprintf("%s: %s - arXiv", subject, topic) },
			query("https://arxiv.org/search/?query=", "&searchtype=all"),
			"Preprint Repository",
		},
	},
}

var bySubject = map[string]template{
	"Mathematics":      {titled("Wolfram MathWorld"), query("https://mathworld.wolfram.com/search/?query=", ""), "Mathematical Reference"},
	"Physics":          {titled("Physics World"), slug("https://physicsworld.com/search/", "/", false), "Physics Journal"},
	"Chemistry":        {titled("Chemical & Engineering News"), query("https://cen.acs.org/search.html?q=", ""), "Chemistry News"},
	"Biology":          {titled("Biology Online"), query("https://www.biologyonline.com/search?q=", ""), "Biology Resource"},
	"Computer Science": {titled("ACM Digital Library"), query("https://dl.acm.org/action/doSearch?AllField=", ""), "Computer Science Papers"},
	"History":          {titled("History.com"), query("https://www.history.com/search?q=", ""), "Historical Resource"},
}

// NormalizeLevel lowercases the level and joins its words with underscores,
// so "High School" and "high_school" name the same table.
func NormalizeLevel(level string) string {
	return strings.Join(strings.Fields(strings.ToLower(level)), "_")
}

// Build returns the level references followed by at most one
// subject-specific reference. Unknown levels use the undergraduate table;
// subjects match exactly.
func Build(level, subject, topic string) []lesson.Reference {
	base, ok := byLevel[NormalizeLevel(level)]
	if !ok {
		base = byLevel[LevelUndergraduate]
	}

	out := make([]lesson.Reference, 0, len(base)+1)
	for _, t := range base {
		out = append(out, t.render(subject, topic))
	}
	if t, ok := bySubject[subject]; ok {
		out = append(out, t.render(subject, topic))
	}
	return out
}

func (t template) render(subject, topic string) lesson.Reference {
	return lesson.Reference{
		Title: t.title(subject, topic),
		URL:   t.url(topic),
		Type:  t.kind,
	}
}
