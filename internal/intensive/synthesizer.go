// Package intensive builds the intensive-reading timeline: highlight+question steps
// walked sentence by sentence, then paragraph by paragraph.
package intensive

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/segmentation"
	"github.com/jonathan/daily-reading/internal/types"
)

// Synthesizer emits timeline steps. All randomness comes from rng, so the order of calls
// determines the output for a given seed.
type Synthesizer struct {
	rules *rules.Set
	rng   *rand.Rand
}

// NewSynthesizer creates a Synthesizer. A nil rule set selects rules.Default().
func NewSynthesizer(set *rules.Set, rng *rand.Rand) *Synthesizer {
	if set == nil {
		set = rules.Default()
	}
	return &Synthesizer{rules: set, rng: rng}
}

type segmented struct {
	para     types.Paragraph
	spans    []types.SentenceSpan
	snippets []string
}

// timeline accumulates steps and numbers them s1, s2, ...
type timeline struct {
	steps []types.Step
}

func (t *timeline) add(pid string, start, end int, prompt string, choices []types.Choice, answer string) {
	t.steps = append(t.steps, types.Step{
		StepID:    fmt.Sprintf("s%d", len(t.steps)+1),
		Highlight: types.Highlight{ParagraphID: pid, Range: types.Range{Start: start, End: end}},
		Question: types.Question{
			Prompt:   prompt,
			Choices:  choices,
			AnswerID: answer,
			Scoring:  types.IntensiveScoring(),
		},
	})
}

// Synthesize walks paragraphs in order and, per sentence, emits a grammatical-role step
// (first match per paragraph), a connective step, a simile step (literature only, first
// match per paragraph) and a sentence-content step, then one main-idea step per paragraph.
func (s *Synthesizer) Synthesize(paragraphs []types.Paragraph, tier, subArea string) []types.Step {
	prompts := s.rules.PromptsFor(tier)

	segs := make([]segmented, len(paragraphs))
	var all []string
	for i, p := range paragraphs {
		segs[i] = segmented{para: p, spans: segmentation.SentenceSpans(p.Text)}
		for _, sp := range segs[i].spans {
			if sn := TruncateChoice(sp.Text, MaxChoiceRunes); sn != "" {
				segs[i].snippets = append(segs[i].snippets, sn)
				all = append(all, sn)
			}
		}
	}

	tl := &timeline{}
	for i, seg := range segs {
		pid := seg.para.ID
		roleAdded, deviceAdded := false, false

		for _, sp := range seg.spans {
			sentence := []rune(sp.Text)

			if !roleAdded {
				if m, ok := findParticleWord(sentence, s.rules); ok {
					role, _ := s.rules.Role(m.particle)
					choices, answer := s.shuffleLabels(s.rules.Roles, role)
					tl.add(pid, sp.Start+m.start, sp.Start+m.end, prompts.Role, choices, answer)
					roleAdded = true
				}
			}

			if c, pos, ok := s.rules.Connective(sp.Text); ok {
				at := utf8.RuneCountInString(sp.Text[:pos])
				choices, answer := s.shuffleLabels(s.rules.Relations, c.Value)
				tl.add(pid, sp.Start+at, sp.Start+at+utf8.RuneCountInString(c.Key), prompts.Connective, choices, answer)
			}

			if subArea == s.rules.Device.SubArea && !deviceAdded {
				if at := runeIndex(sp.Text, s.rules.Device.Marker); at >= 0 {
					choices, answer := s.shuffleLabels(s.rules.Device.Choices, s.rules.Device.Answer)
					tl.add(pid, sp.Start+at, sp.Start+at+utf8.RuneCountInString(s.rules.Device.Marker), prompts.Device, choices, answer)
					deviceAdded = true
				}
			}

			snippet := TruncateChoice(sp.Text, MaxChoiceRunes)
			choices, answer := s.ShuffleChoices(snippet, s.PickDistractors(snippet, seg.snippets, all))
			tl.add(pid, sp.Start, sp.End, prompts.Content, choices, answer)
		}

		s.mainIdea(tl, segs, i, all, prompts.MainIdea)
	}

	return tl.steps
}

// mainIdea highlights the whole paragraph and asks for its leading sentence against the
// leading sentences of the other paragraphs.
func (s *Synthesizer) mainIdea(tl *timeline, segs []segmented, i int, all []string, prompt string) {
	seg := segs[i]
	var correct string
	if len(seg.spans) > 0 {
		correct = TruncateChoice(seg.spans[0].Text, MaxChoiceRunes)
	} else {
		correct = TruncateChoice(seg.para.Text, MaxChoiceRunes)
	}

	var others []string
	for j, o := range segs {
		if j == i || len(o.spans) == 0 {
			continue
		}
		others = append(others, TruncateChoice(o.spans[0].Text, MaxChoiceRunes))
	}

	choices, answer := s.ShuffleChoices(correct, s.PickDistractors(correct, others, all))
	tl.add(seg.para.ID, 0, utf8.RuneCountInString(seg.para.Text), prompt, choices, answer)
}

// runeIndex is strings.Index in runes
func runeIndex(s, substr string) int {
	pos := strings.Index(s, substr)
	if pos < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:pos])
}
