package types

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExercise() *Exercise {
	choices := make([]Choice, len(ChoiceIDs))
	for i, id := range ChoiceIDs {
		choices[i] = Choice{ID: id, Text: "보기 " + id}
	}
	return &Exercise{
		ContentID:        "dr-f1-001",
		ContentType:      ContentTypeDailyReading,
		Title:            "독해(비문학) Day 1",
		TargetLevel:      "FREGE_1",
		SchoolGradeRange: GradeRange{Min: 4, Max: 4},
		SubArea:          "NONFICTION",
		TimeLimitSec:     180,
		Payload: Payload{
			Passage: Passage{Paragraphs: []Paragraph{{ID: "p1", Text: "나무는 그늘을 만든다."}}},
			Intensive: Intensive{Timeline: []Step{{
				StepID:    "s1",
				Highlight: Highlight{ParagraphID: "p1", Range: Range{Start: 0, End: 12}},
				Question:  Question{Prompt: "무엇인가?", Choices: choices, AnswerID: "B", Scoring: IntensiveScoring()},
			}}},
			Confirm: ConfirmTask{Questions: []ConfirmQuestion{{
				ID:           "c1",
				Prompt:       "'그늘'을 찾아 클릭하세요.",
				AnswerRanges: []AnswerRange{{ParagraphID: "p1", Start: 4, End: 6}},
				Scoring:      ConfirmScoring(),
			}}},
		},
	}
}

func TestExercise_Validate(t *testing.T) {
	require.NoError(t, validExercise().Validate())
}

func TestExercise_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Exercise)
		want   string
	}{
		{"wrong content type", func(e *Exercise) { e.ContentType = "QUIZ" }, "ContentType"},
		{"no paragraphs", func(e *Exercise) { e.Payload.Passage.Paragraphs = nil }, "Paragraphs"},
		{"three choices", func(e *Exercise) {
			q := &e.Payload.Intensive.Timeline[0].Question
			q.Choices = q.Choices[:3]
		}, "Choices"},
		{"highlight past paragraph end", func(e *Exercise) {
			e.Payload.Intensive.Timeline[0].Highlight.Range.End = 40
		}, "outside paragraph p1"},
		{"unknown paragraph", func(e *Exercise) {
			e.Payload.Confirm.Questions[0].AnswerRanges[0].ParagraphID = "p9"
		}, "unknown paragraph p9"},
		{"duplicate paragraph", func(e *Exercise) {
			p := e.Payload.Passage.Paragraphs
			e.Payload.Passage.Paragraphs = append(p, p[0])
		}, "duplicate paragraph id p1"},
		{"inverted grade range", func(e *Exercise) { e.SchoolGradeRange = GradeRange{Min: 5, Max: 4} }, "Max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise()
			tt.mutate(ex)
			err := ex.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScoring_JSON(t *testing.T) {
	data, err := json.Marshal(ConfirmScoring())
	require.NoError(t, err)
	assert.JSONEq(t, `{"correctDeltaSec": 30, "wrongDeltaSec": -30}`, string(data))

	data, err = json.Marshal(IntensiveScoring())
	require.NoError(t, err)
	assert.JSONEq(t, `{"correctDeltaSec": 20, "wrongDeltaSec": -20, "eliminateWrongChoice": true}`, string(data))
}

func TestSourceIndexEntry_NullFields(t *testing.T) {
	data, err := json.Marshal(SourceIndexEntry{Level: "frege1", Day: 2, SourceType: SourceUnknown})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contentId":null`)
	assert.Contains(t, string(data), `"type":null`)
}

func TestExercise_ValidateConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ex := validExercise()
			if i%2 == 1 {
				ex.ContentType = "QUIZ"
			}
			errs[i] = ex.Validate()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 1 {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}
