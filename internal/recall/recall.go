// Package recall builds the card-reordering deck of an exercise.
package recall

import (
	"fmt"
	"strings"

	"github.com/jonathan/daily-reading/internal/types"
)

const (
	// MinCards is the number of synthetic chunks used for short passages
	MinCards = 5
	// MaxCards caps the deck
	MaxCards = 10
	// CardRunes is the length of a paragraph-leading card
	CardRunes = 80
	// SeedPenalty is charged for each wrong placement
	SeedPenalty = 1
)

// Build takes one card per paragraph from its first 80 characters. With fewer than five
// paragraphs the joined passage is cut into five equal chunks instead. The deck keeps at
// most ten cards and its correct order is the natural order.
func Build(paragraphs []types.Paragraph) types.RecallDeck {
	var texts []string
	for _, p := range paragraphs {
		s := []rune(strings.TrimSpace(p.Text))
		if len(s) == 0 {
			continue
		}
		if len(s) > CardRunes {
			s = s[:CardRunes]
		}
		texts = append(texts, strings.TrimSpace(string(s)))
	}

	if len(texts) < MinCards {
		texts = chunks(paragraphs)
	}
	if len(texts) > MaxCards {
		texts = texts[:MaxCards]
	}

	deck := types.RecallDeck{
		Cards:        make([]types.RecallCard, 0, len(texts)),
		CorrectOrder: make([]string, 0, len(texts)),
		SeedPenalty:  SeedPenalty,
	}
	for i, text := range texts {
		id := fmt.Sprintf("c%d", i+1)
		deck.Cards = append(deck.Cards, types.RecallCard{ID: id, Text: text})
		deck.CorrectOrder = append(deck.CorrectOrder, id)
	}
	return deck
}

func chunks(paragraphs []types.Paragraph) []string {
	parts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		parts[i] = p.Text
	}
	joined := []rune(strings.Join(parts, " "))

	step := len(joined) / MinCards
	if step < 1 {
		step = 1
	}

	var out []string
	for i, taken := 0, 0; i < len(joined) && taken < MinCards; i, taken = i+step, taken+1 {
		end := i + step
		if end > len(joined) {
			end = len(joined)
		}
		if c := strings.TrimSpace(string(joined[i:end])); c != "" {
			out = append(out, c)
		}
	}
	return out
}
