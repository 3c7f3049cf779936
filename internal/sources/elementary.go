package sources

import (
	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/types"
)

const (
	elementaryMinRunes = 220
	maxParens          = 10
)

// ElementaryPool re-cleans sources for young readers and keeps those at least 220
// characters long with few parentheses; the lowest tier also drops archaic texts. Sources
// reaching 70% of the level's target length are preferred. When nothing qualifies the
// original sources are returned.
func ElementaryPool(src []types.SourceText, level levels.Level, cleaner *ingestion.Cleaner, set *rules.Set) []types.SourceText {
	var out []types.SourceText
	for _, s := range src {
		t := cleaner.CleanElementary(s.Text)
		if ingestion.RuneLen(t) < elementaryMinRunes {
			continue
		}
		if level.IsLowestTier() && ingestion.IsArchaic(t, set) {
			continue
		}
		if ingestion.CountParens(t) > maxParens {
			continue
		}
		s.Text = t
		out = append(out, s)
	}
	if len(out) == 0 {
		return src
	}

	minLen := int(float64(level.TargetLength) * 0.7)
	var long []types.SourceText
	for _, s := range out {
		if ingestion.RuneLen(s.Text) >= minLen {
			long = append(long, s)
		}
	}
	if len(long) > 0 {
		return long
	}
	return out
}
