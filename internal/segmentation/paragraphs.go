// Package segmentation splits cleaned passage text into paragraphs and sentence spans.
// All offsets are rune offsets.
package segmentation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/daily-reading/internal/types"
)

// ForceSplitThreshold is the length above which a lone paragraph is split in two
const ForceSplitThreshold = 240

const (
	verseMinNewlines = 8
	verseAvgLine     = 25
	verseMaxLine     = 60
)

var (
	blankLineRe  = regexp.MustCompile(`\n\s*\n+`)
	newlineRunRe = regexp.MustCompile(`\n+`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

// SplitParagraphs splits text on blank lines. A single block with many line breaks is kept
// as one verse paragraph when its lines are short, otherwise its line breaks are folded
// into spaces.
func SplitParagraphs(text string) []string {
	var parts []string
	for _, p := range blankLineRe.Split(strings.TrimSpace(text), -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) != 1 || strings.Count(text, "\n") <= verseMinNewlines {
		return parts
	}

	if isVerse(parts[0]) {
		return parts
	}
	collapsed := newlineRunRe.ReplaceAllString(parts[0], " ")
	collapsed = strings.TrimSpace(spaceRunRe.ReplaceAllString(collapsed, " "))
	return []string{collapsed}
}

func isVerse(block string) bool {
	total, longest, count := 0, 0, 0
	for _, ln := range strings.Split(block, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		n := utf8.RuneCountInString(ln)
		total += n
		if n > longest {
			longest = n
		}
		count++
	}
	if count == 0 {
		return false
	}
	return float64(total)/float64(count) <= verseAvgLine && longest <= verseMaxLine
}

// EnsureTwoParagraphs splits a lone paragraph longer than threshold at the last space
// before its midpoint, or at the midpoint when there is no such space.
func EnsureTwoParagraphs(paras []string, threshold int) []string {
	if len(paras) != 1 || utf8.RuneCountInString(paras[0]) <= threshold {
		return paras
	}

	runes := []rune(paras[0])
	mid := len(runes) / 2
	at := -1
	for i := mid - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			at = i
			break
		}
	}
	if at < 0 {
		at = mid
	}

	first := strings.TrimSpace(string(runes[:at]))
	second := strings.TrimSpace(string(runes[at:]))
	if first == "" || second == "" {
		return paras
	}
	return []string{first, second}
}

// Paragraphs segments text into id-tagged paragraphs p1..pn
func Paragraphs(text string) []types.Paragraph {
	parts := EnsureTwoParagraphs(SplitParagraphs(text), ForceSplitThreshold)
	out := make([]types.Paragraph, len(parts))
	for i, p := range parts {
		out[i] = types.Paragraph{ID: ParagraphID(i + 1), Text: p}
	}
	return out
}

// ParagraphID formats the 1-based paragraph id
func ParagraphID(n int) string {
	return fmt.Sprintf("p%d", n)
}
