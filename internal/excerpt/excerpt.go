// Package excerpt fits passage text to a level's target length.
package excerpt

import (
	"strings"
	"unicode"
)

const (
	windowFactor   = 1.15
	boundaryFactor = 0.85
)

// ToLength returns text unchanged when it has at most target characters. Longer text is
// cut to target characters and, when the last sentence terminal or line break of the cut
// lies at or beyond 85% of target, trimmed back to just after it. Trailing whitespace is
// removed; the result is never empty for text with non-space content in its first
// target characters.
func ToLength(text string, target int) string {
	r := []rune(text)
	if len(r) <= target {
		return text
	}
	if target <= 0 {
		return ""
	}

	window := int(float64(target) * windowFactor)
	if window > len(r) {
		window = len(r)
	}
	cut := r[:window]
	if len(cut) > target {
		cut = cut[:target]
	}

	boundary := -1
	for i := len(cut) - 1; i >= 0; i-- {
		if isBoundary(cut[i]) {
			boundary = i
			break
		}
	}
	if boundary >= 0 && boundary >= int(float64(target)*boundaryFactor) {
		trimmed := strings.TrimRightFunc(string(cut[:boundary+1]), unicode.IsSpace)
		if trimmed != "" {
			return trimmed
		}
	}

	return strings.TrimRightFunc(string(cut), unicode.IsSpace)
}

func isBoundary(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '\n'
}
