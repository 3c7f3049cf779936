package intensive

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/daily-reading/internal/types"
)

// MaxChoiceRunes is the default choice text limit
const MaxChoiceRunes = 90

var whitespaceRe = regexp.MustCompile(`\s+`)

// TruncateChoice collapses whitespace and cuts text to max characters, backing up to the
// last space when that keeps at least 70% of max.
func TruncateChoice(text string, max int) string {
	t := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if utf8.RuneCountInString(t) <= max {
		return t
	}

	cut := []rune(t)[:max]
	sp := -1
	for i := len(cut) - 1; i >= 0; i-- {
		if cut[i] == ' ' {
			sp = i
			break
		}
	}
	if sp >= int(float64(max)*0.7) {
		cut = cut[:sp]
	}
	return strings.TrimSpace(string(cut))
}

// PickDistractors draws three wrong choices for correct. Candidates come from preferred
// first, then from all, without duplicates and never equal to correct; the pool is shuffled
// and padded with the sentinel when fewer than three remain.
func (s *Synthesizer) PickDistractors(correct string, preferred, all []string) []string {
	seen := map[string]bool{correct: true}
	var pool []string
	for _, list := range [][]string{preferred, all} {
		for _, c := range list {
			if c != "" && !seen[c] {
				pool = append(pool, c)
				seen[c] = true
			}
		}
	}

	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := make([]string, 0, 3)
	for _, c := range pool {
		if len(out) == 3 {
			break
		}
		out = append(out, c)
	}
	for len(out) < 3 {
		out = append(out, s.rules.Sentinel)
	}
	return out
}

// ShuffleChoices applies a uniformly random permutation to the correct text followed by
// the distractors and returns the choices with the id of the correct one.
func (s *Synthesizer) ShuffleChoices(correct string, distractors []string) ([]types.Choice, string) {
	items := append([]string{correct}, distractors[:3]...)
	perm := s.rng.Perm(len(items))

	choices := make([]types.Choice, len(items))
	answer := ""
	for k, from := range perm {
		choices[k] = types.Choice{ID: types.ChoiceIDs[k], Text: items[from]}
		if from == 0 {
			answer = types.ChoiceIDs[k]
		}
	}
	return choices, answer
}

// shuffleLabels shuffles a fixed label set and returns the id of want
func (s *Synthesizer) shuffleLabels(labels []string, want string) ([]types.Choice, string) {
	options := append([]string(nil), labels...)
	s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	choices := make([]types.Choice, len(options))
	answer := ""
	for k, o := range options {
		choices[k] = types.Choice{ID: types.ChoiceIDs[k], Text: o}
		if o == want {
			answer = types.ChoiceIDs[k]
		}
	}
	return choices, answer
}
