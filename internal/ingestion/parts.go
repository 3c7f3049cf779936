package ingestion

import (
	"regexp"
	"strings"
)

var partLabelRe = regexp.MustCompile(`(?m)(^|\n)\s*\(\s*([가-하])\s*\)\s*`)

// SplitParts splits text on "(가)", "(나)", ... labels at line starts. With fewer than two
// labels the whole text is returned as one unlabeled part. Label text is not kept.
func SplitParts(text string) []Part {
	matches := partLabelRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 2 {
		return []Part{{Text: text}}
	}

	parts := make([]Part, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		label := text[m[4]:m[5]]
		body := strings.TrimSpace(text[m[1]:end])
		if body == "" {
			continue
		}
		parts = append(parts, Part{Label: label, Text: body})
	}
	return parts
}
