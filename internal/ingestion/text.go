// Package ingestion cleans raw passage text (literature, nonfiction and PDF extracts) into
// plain passage prose, removing exam apparatus, markup noise and enumeration glyphs.
package ingestion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultExamCutThreshold is the number of passage characters that must have accumulated
// before a detected question/option block truncates the rest of the text.
const DefaultExamCutThreshold = 60

// Stage is one pure text transformation of the cleaning pipeline
type Stage struct {
	Name  string
	Apply func(string) string
}

// Options configures a Cleaner
type Options struct {
	// ExamCutThreshold overrides DefaultExamCutThreshold when positive
	ExamCutThreshold int
}

// Cleaner runs the passage cleaning stages in a fixed order.
// Later stages rely on markers that earlier stages leave in place: meta-line detection
// needs the unescaped numbering and circled glyphs, so markers are stripped last.
type Cleaner struct {
	threshold int
	stages    []Stage
}

var (
	controlCharsRe   = regexp.MustCompile(`[\x00-\x08\x0b-\x1f]`)
	horizontalRunsRe = regexp.MustCompile(`[ \t]+`)
	markdownEscapeRe = regexp.MustCompile(`\\([\[\]().<>~+*:-])`)
)

// NewCleaner creates a Cleaner
func NewCleaner(opts Options) *Cleaner {
	threshold := opts.ExamCutThreshold
	if threshold <= 0 {
		threshold = DefaultExamCutThreshold
	}
	c := &Cleaner{threshold: threshold}
	c.stages = []Stage{
		{Name: "normalize", Apply: Normalize},
		{Name: "unescape", Apply: UnescapeMarkdown},
		{Name: "meta-lines", Apply: func(s string) string { return stripNonPassageLines(s, c.threshold) }},
		{Name: "markers", Apply: RemoveMarkers},
		{Name: "normalize", Apply: Normalize},
	}
	return c
}

// Stages returns the names of the cleaning stages in execution order
func (c *Cleaner) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}

// ExamCutThreshold returns the configured exam-block cut threshold
func (c *Cleaner) ExamCutThreshold() int {
	return c.threshold
}

// Clean runs every stage on text
func (c *Cleaner) Clean(text string) string {
	for _, s := range c.stages {
		text = s.Apply(text)
	}
	return text
}

// CleanSource cleans text and rejects results shorter than minLen characters
func (c *Cleaner) CleanSource(text string, minLen int) (string, error) {
	cleaned := c.Clean(text)
	if n := utf8.RuneCountInString(cleaned); n < minLen {
		return "", &InsufficientSourceError{Length: n, Min: minLen}
	}
	return cleaned, nil
}

// Part is one labeled sub-passage after multi-part splitting. Label is empty for
// unlabeled text.
type Part struct {
	Label string
	Text  string
}

// CleanParts normalizes text, splits it into labeled sub-passages and cleans each one.
// Parts shorter than minLen are dropped.
func (c *Cleaner) CleanParts(text string, minLen int) []Part {
	text = UnescapeMarkdown(Normalize(text))

	var out []Part
	for _, p := range SplitParts(text) {
		cleaned, err := c.CleanSource(p.Text, minLen)
		if err != nil {
			continue
		}
		out = append(out, Part{Label: p.Label, Text: cleaned})
	}
	return out
}

// Normalize unifies line endings, drops markdown bold markers and control characters,
// collapses horizontal whitespace and trims every line.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "**", "")
	text = controlCharsRe.ReplaceAllString(text, "")
	text = horizontalRunsRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// UnescapeMarkdown turns markdown-escaped punctuation back into plain characters,
// e.g. "\[정답\]" -> "[정답]", "22\." -> "22.", "22\~26" -> "22~26".
func UnescapeMarkdown(text string) string {
	return markdownEscapeRe.ReplaceAllString(text, "$1")
}

// RuneLen returns the length of s in characters
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
