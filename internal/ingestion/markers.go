package ingestion

import (
	"regexp"
	"strings"
)

var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\([가-하]\)`),
	regexp.MustCompile(`\[[A-Z]\]`),
	regexp.MustCompile(`\[\s*[0-9]+\s*~\s*[0-9]+\s*\]`),
	regexp.MustCompile(`\[\s*[0-9]+\s*점\s*\]`),
	regexp.MustCompile(`[①②③④⑤⑥⑦⑧⑨⑩]`),
	regexp.MustCompile(`[㉠㉡㉢㉣㉤]`),
	// Ⓐ..Ⓩ and ⓐ..ⓩ
	regexp.MustCompile(`[\x{24B6}-\x{24E9}]`),
}

var examHeaderRangeRe = regexp.MustCompile(`^\[[0-9~\- ]+\]`)

// RemoveMarkers strips part labels, bracket section tags and circled enumeration glyphs.
// Markdown escapes are resolved first so escaped tags are caught too.
func RemoveMarkers(text string) string {
	text = UnescapeMarkdown(text)
	for _, re := range markerPatterns {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// StripExamHeaders drops exam instruction headers ("다음 글을 읽고", "[1~3]", "###")
// from the first five lines and any blank lines they leave at the top.
func StripExamHeaders(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, ln := range lines {
		s := strings.TrimSpace(ln)
		if i < 5 && (strings.Contains(s, instructionLead) || examHeaderRangeRe.MatchString(s) || strings.HasPrefix(s, "###")) {
			continue
		}
		out = append(out, ln)
	}
	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
