package segmentation

import (
	"strings"
	"unicode"

	"github.com/jonathan/daily-reading/internal/types"
)

// MinSentenceRunes is the shortest span kept on its own; shorter spans are merged
// into the following span.
const MinSentenceRunes = 8

// SentenceSpans splits a paragraph into ordered sentence spans. A sentence ends after
// '.', '!' or '?', or at a line break, whichever comes first.
func SentenceSpans(paragraph string) []types.SentenceSpan {
	r := []rune(paragraph)
	n := len(r)

	var spans []types.SentenceSpan
	i := 0
	for i < n {
		for i < n && unicode.IsSpace(r[i]) {
			i++
		}
		if i >= n {
			break
		}

		j := i
		for j < n {
			ch := r[j]
			if ch == '.' || ch == '!' || ch == '?' {
				j++
				break
			}
			if ch == '\n' {
				break
			}
			j++
		}

		end := j
		for j < n && r[j] == '\n' {
			j++
		}
		for end > i && unicode.IsSpace(r[end-1]) && r[end-1] != '\n' {
			end--
		}

		if seg := strings.TrimSpace(string(r[i:end])); seg != "" {
			spans = append(spans, types.SentenceSpan{Start: i, End: end, Text: seg})
		}
		i = j
	}

	return mergeShort(r, spans)
}

// mergeShort folds each short span into its successor once; the merged span is not
// checked again.
func mergeShort(r []rune, spans []types.SentenceSpan) []types.SentenceSpan {
	merged := make([]types.SentenceSpan, 0, len(spans))
	for k := 0; k < len(spans); k++ {
		cur := spans[k]
		if len([]rune(cur.Text)) < MinSentenceRunes && k+1 < len(spans) {
			next := spans[k+1]
			merged = append(merged, types.SentenceSpan{
				Start: cur.Start,
				End:   next.End,
				Text:  strings.TrimSpace(string(r[cur.Start:next.End])),
			})
			k++
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}
