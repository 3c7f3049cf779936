// Package types provides type definitions for structured data used throughout the daily-reading compiler.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ContentTypeDailyReading is the only content type the compiler emits
const ContentTypeDailyReading = "DAILY_READING"

var validate = validator.New()

// Choice ids in display order
var ChoiceIDs = []string{"A", "B", "C", "D"}

// Paragraph is one passage paragraph. IDs are "p1".."pn" in order.
type Paragraph struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// SentenceSpan is a sentence inside a paragraph. Start and End are rune offsets,
// half-open, and Text is the trimmed substring they delimit.
type SentenceSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Range is a half-open rune range inside a paragraph
type Range struct {
	Start int `json:"start" validate:"gte=0"`
	End   int `json:"end" validate:"gtfield=Start"`
}

// Highlight marks the passage region a step is about
type Highlight struct {
	ParagraphID string `json:"paragraphId" validate:"required"`
	Range       Range  `json:"range"`
}

// Choice is one answer option
type Choice struct {
	ID   string `json:"id" validate:"required,oneof=A B C D"`
	Text string `json:"text" validate:"required"`
}

// Scoring is the timer adjustment contract consumed by the quiz player
type Scoring struct {
	CorrectDeltaSec      int   `json:"correctDeltaSec"`
	WrongDeltaSec        int   `json:"wrongDeltaSec"`
	EliminateWrongChoice *bool `json:"eliminateWrongChoice,omitempty"`
}

// IntensiveScoring returns the fixed scoring of intensive-reading steps
func IntensiveScoring() Scoring {
	eliminate := true
	return Scoring{CorrectDeltaSec: 20, WrongDeltaSec: -20, EliminateWrongChoice: &eliminate}
}

// ConfirmScoring returns the fixed scoring of confirm questions
func ConfirmScoring() Scoring {
	return Scoring{CorrectDeltaSec: 30, WrongDeltaSec: -30}
}

// Question is a four-choice question attached to a step
type Question struct {
	Prompt   string   `json:"prompt" validate:"required"`
	Choices  []Choice `json:"choices" validate:"len=4,dive"`
	AnswerID string   `json:"answerId" validate:"required,oneof=A B C D"`
	Scoring  Scoring  `json:"scoring"`
}

// Step is one element of the intensive-reading timeline
type Step struct {
	StepID    string    `json:"stepId" validate:"required"`
	Highlight Highlight `json:"highlight"`
	Question  Question  `json:"question"`
}

// RecallCard is one card of the recall deck
type RecallCard struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// RecallDeck is the card-reordering exercise. CorrectOrder is always the natural order.
type RecallDeck struct {
	Cards        []RecallCard `json:"cards" validate:"dive"`
	CorrectOrder []string     `json:"correctOrder"`
	SeedPenalty  int          `json:"seedPenalty"`
}

// AnswerRange is one accepted click target of a confirm question
type AnswerRange struct {
	ParagraphID string `json:"paragraphId" validate:"required"`
	Start       int    `json:"start" validate:"gte=0"`
	End         int    `json:"end" validate:"gtfield=Start"`
}

// AnswerMatchAny accepts a click on any of the answer ranges
const AnswerMatchAny = "ANY"

// ConfirmQuestion is a find-the-keyword question
type ConfirmQuestion struct {
	ID              string        `json:"id" validate:"required"`
	Prompt          string        `json:"prompt" validate:"required"`
	AnswerRanges    []AnswerRange `json:"answerRanges" validate:"dive"`
	Scoring         Scoring       `json:"scoring"`
	RevealOnWrong   bool          `json:"revealOnWrong"`
	AnswerMatchMode string        `json:"answerMatchMode,omitempty"`
}

// ConfirmTask wraps the confirm questions (one per exercise today)
type ConfirmTask struct {
	Questions []ConfirmQuestion `json:"questions" validate:"dive"`
}

// Passage is the rendered passage
type Passage struct {
	Format     string      `json:"format"`
	Paragraphs []Paragraph `json:"paragraphs" validate:"min=1,dive"`
}

// Intensive holds the intensive-reading timeline
type Intensive struct {
	Timeline []Step `json:"timeline" validate:"dive"`
}

// Payload is the interactive part of an exercise
type Payload struct {
	Passage   Passage     `json:"passage"`
	Intensive Intensive   `json:"intensive"`
	Recall    RecallDeck  `json:"recall"`
	Confirm   ConfirmTask `json:"confirm"`
}

// GradeRange is an inclusive school grade range
type GradeRange struct {
	Min int `json:"min" validate:"gte=1"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// Access describes how the exercise is unlocked
type Access struct {
	Mode string `json:"mode"`
}

// SeedReward is granted on completion
type SeedReward struct {
	SeedType   string `json:"seedType"`
	Count      int    `json:"count"`
	Multiplier int    `json:"multiplier"`
}

// Exercise is the compiled DAILY_READING record
type Exercise struct {
	ContentID        string         `json:"contentId" validate:"required"`
	ContentType      string         `json:"contentType" validate:"eq=DAILY_READING"`
	Version          int            `json:"version"`
	Status           string         `json:"status"`
	Title            string         `json:"title" validate:"required"`
	Description      string         `json:"description"`
	TargetLevel      string         `json:"targetLevel" validate:"required"`
	SchoolGradeRange GradeRange     `json:"schoolGradeRange"`
	Area             string         `json:"area"`
	SubArea          string         `json:"subArea" validate:"required"`
	Competencies     []string       `json:"competencies"`
	Tags             []string       `json:"tags"`
	Access           Access         `json:"access"`
	SeedReward       SeedReward     `json:"seedReward"`
	TimeLimitSec     int            `json:"timeLimitSec" validate:"gt=0"`
	Assets           map[string]any `json:"assets"`
	Payload          Payload        `json:"payload"`
}

// Validate checks struct tags and the cross-field invariants tags cannot express:
// every range lies inside its paragraph and every answer id names one of its choices.
func (e *Exercise) Validate() error {
	if err := validate.Struct(e); err != nil {
		return err
	}

	lengths := make(map[string]int, len(e.Payload.Passage.Paragraphs))
	for _, p := range e.Payload.Passage.Paragraphs {
		if _, dup := lengths[p.ID]; dup {
			return fmt.Errorf("duplicate paragraph id %s", p.ID)
		}
		lengths[p.ID] = utf8.RuneCountInString(p.Text)
	}

	checkRange := func(where, pid string, start, end int) error {
		n, ok := lengths[pid]
		if !ok {
			return fmt.Errorf("%s: unknown paragraph %s", where, pid)
		}
		if start < 0 || start >= end || end > n {
			return fmt.Errorf("%s: range [%d,%d) outside paragraph %s (len %d)", where, start, end, pid, n)
		}
		return nil
	}

	for _, s := range e.Payload.Intensive.Timeline {
		if err := checkRange(s.StepID, s.Highlight.ParagraphID, s.Highlight.Range.Start, s.Highlight.Range.End); err != nil {
			return err
		}
		found := 0
		for _, c := range s.Question.Choices {
			if c.ID == s.Question.AnswerID {
				found++
			}
		}
		if found != 1 {
			return fmt.Errorf("%s: answer %s matches %d choices", s.StepID, s.Question.AnswerID, found)
		}
	}

	for _, q := range e.Payload.Confirm.Questions {
		for _, r := range q.AnswerRanges {
			if err := checkRange(q.ID, r.ParagraphID, r.Start, r.End); err != nil {
				return err
			}
		}
	}

	return nil
}
