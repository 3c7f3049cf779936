// Package exercise assembles a complete DAILY_READING record from one passage.
package exercise

import (
	"math/rand"

	"github.com/jonathan/daily-reading/internal/confirm"
	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/intensive"
	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/recall"
	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/segmentation"
	"github.com/jonathan/daily-reading/internal/types"
)

// Fixed record fields
const (
	Version       = 1
	StatusPublish = "PUBLISHED"
	AreaReading   = "READING"
	Description   = "일일 독해 - 정독·복기·확인"
	TimeLimitSec  = 300
	PassageFormat = "TEXT"
)

// Meta identifies the exercise being built
type Meta struct {
	ContentID string
	Title     string
	Level     levels.Level
	SubArea   string
}

// NewMeta builds the metadata of a level's day
func NewMeta(level levels.Level, day int, subArea string) Meta {
	return Meta{
		ContentID: level.ContentID(day),
		Title:     levels.Title(subArea, day),
		Level:     level,
		SubArea:   subArea,
	}
}

// Builder compiles passages into exercises. One Builder shares its random source across
// every exercise it builds, so build order is part of the output.
type Builder struct {
	cleaner *ingestion.Cleaner
	rules   *rules.Set
	synth   *intensive.Synthesizer
}

// NewBuilder creates a Builder
func NewBuilder(cleaner *ingestion.Cleaner, set *rules.Set, rng *rand.Rand) *Builder {
	if set == nil {
		set = rules.Default()
	}
	if cleaner == nil {
		cleaner = ingestion.NewCleaner(ingestion.Options{})
	}
	return &Builder{
		cleaner: cleaner,
		rules:   set,
		synth:   intensive.NewSynthesizer(set, rng),
	}
}

// Build cleans passage, segments it and derives the timeline, recall deck and confirm
// task. The record is validated before it is returned.
func (b *Builder) Build(meta Meta, passage string) (*types.Exercise, error) {
	text := ingestion.StripExamHeaders(b.cleaner.Clean(passage))
	paragraphs := segmentation.Paragraphs(text)
	if len(paragraphs) == 0 {
		return nil, &Error{Message: "passage " + meta.ContentID + " is empty after cleaning"}
	}

	tier := meta.Level.TargetLevel
	ex := &types.Exercise{
		ContentID:        meta.ContentID,
		ContentType:      types.ContentTypeDailyReading,
		Version:          Version,
		Status:           StatusPublish,
		Title:            meta.Title,
		Description:      Description,
		TargetLevel:      tier,
		SchoolGradeRange: meta.Level.Grade,
		Area:             AreaReading,
		SubArea:          meta.SubArea,
		Competencies:     []string{AreaReading},
		Tags:             []string{"daily"},
		Access:           types.Access{Mode: "FREE"},
		SeedReward:       types.SeedReward{SeedType: "WHEAT", Count: 3, Multiplier: 1},
		TimeLimitSec:     TimeLimitSec,
		Assets:           map[string]any{},
		Payload: types.Payload{
			Passage:   types.Passage{Format: PassageFormat, Paragraphs: paragraphs},
			Intensive: types.Intensive{Timeline: b.synth.Synthesize(paragraphs, tier, meta.SubArea)},
			Recall:    recall.Build(paragraphs),
			Confirm:   confirm.Build(paragraphs, tier, b.rules),
		},
	}

	if err := ex.Validate(); err != nil {
		return nil, &Error{Message: "invalid exercise " + meta.ContentID, Cause: err}
	}
	return ex, nil
}
