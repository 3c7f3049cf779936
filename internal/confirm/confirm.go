// Package confirm builds the find-the-keyword task of an exercise.
package confirm

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/types"
)

// MaxRanges caps the answer ranges of a question
const MaxRanges = 20

var tokenRe = regexp.MustCompile(`[가-힣]{2,8}`)

// Build picks a rare keyword, locates its non-overlapping occurrences and wraps them in a
// single confirm question. When the keyword cannot be found the first two characters of
// the first paragraph are used instead.
func Build(paragraphs []types.Paragraph, tier string, set *rules.Set) types.ConfirmTask {
	fallback := ""
	if len(paragraphs) > 0 {
		if r := []rune(paragraphs[0].Text); len(r) >= 2 {
			fallback = string(r[:2])
		}
	}

	keyword, ok := PickKeyword(paragraphs, set)
	if !ok {
		keyword = fallback
	}
	ranges := FindRanges(paragraphs, keyword)
	if len(ranges) == 0 && len(paragraphs) > 0 {
		keyword = fallback
		ranges = FindRanges(paragraphs, keyword)
	}
	if len(ranges) > MaxRanges {
		ranges = ranges[:MaxRanges]
	}
	if ranges == nil {
		ranges = []types.AnswerRange{}
	}

	q := types.ConfirmQuestion{
		ID:            "q1",
		Prompt:        rules.Format(set.PromptsFor(tier).Confirm, map[string]string{"Keyword": keyword}),
		AnswerRanges:  ranges,
		Scoring:       types.ConfirmScoring(),
		RevealOnWrong: true,
	}
	if len(ranges) > 1 {
		q.AnswerMatchMode = types.AnswerMatchAny
	}
	return types.ConfirmTask{Questions: []types.ConfirmQuestion{q}}
}

// PickKeyword returns the least frequent non-stop-word token, preferring longer tokens on
// equal counts and earlier tokens after that.
func PickKeyword(paragraphs []types.Paragraph, set *rules.Set) (string, bool) {
	texts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		texts[i] = p.Text
	}

	counts := map[string]int{}
	var order []string
	for _, w := range tokenRe.FindAllString(strings.Join(texts, "\n"), -1) {
		if set.IsStopWord(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	if len(order) == 0 {
		return "", false
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if counts[a] != counts[b] {
			return counts[a] < counts[b]
		}
		return len([]rune(a)) > len([]rune(b))
	})
	return order[0], true
}

// FindRanges locates every non-overlapping occurrence of needle, paragraph by paragraph,
// as rune ranges.
func FindRanges(paragraphs []types.Paragraph, needle string) []types.AnswerRange {
	if needle == "" {
		return nil
	}
	n := []rune(needle)

	var ranges []types.AnswerRange
	for _, p := range paragraphs {
		r := []rune(p.Text)
		for i := 0; i+len(n) <= len(r); {
			if string(r[i:i+len(n)]) == needle {
				ranges = append(ranges, types.AnswerRange{ParagraphID: p.ID, Start: i, End: i + len(n)})
				i += len(n)
				continue
			}
			i++
		}
	}
	return ranges
}
