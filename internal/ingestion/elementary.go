package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/daily-reading/internal/rules"
)

var (
	hanjaParentheticalRe = regexp.MustCompile(`\([^)]*[\x{4E00}-\x{9FFF}][^)]*\)`)
	hanjaRe              = regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)
	commaChainRe         = regexp.MustCompile(`,\s*`)
	doublePeriodRe       = regexp.MustCompile(`\.\s*\.`)
)

// CleanElementary cleans text for the elementary levels: standard cleaning, then
// parenthetical hanja glosses, bare hanja and footnote asterisks are removed.
func (c *Cleaner) CleanElementary(text string) string {
	text = c.Clean(text)
	text = hanjaParentheticalRe.ReplaceAllString(text, "")
	text = hanjaRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "*", "")
	return Normalize(text)
}

// SimplifyForLowestTier rewrites formal connectives with plainer ones and breaks comma
// chains into short sentences.
func SimplifyForLowestTier(text string, set *rules.Set) string {
	for _, r := range set.Simplify {
		text = strings.ReplaceAll(text, r.Key, r.Value)
	}
	text = commaChainRe.ReplaceAllString(text, ". ")
	text = doublePeriodRe.ReplaceAllString(text, ".")
	return Normalize(text)
}

// IsArchaic reports whether text carries archaic-style markers
func IsArchaic(text string, set *rules.Set) bool {
	for _, m := range set.ArchaicMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// CountParens returns the number of parentheses in text
func CountParens(text string) int {
	return strings.Count(text, "(") + strings.Count(text, ")")
}
