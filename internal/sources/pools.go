package sources

import (
	"context"

	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/types"
	"golang.org/x/sync/errgroup"
)

// Paths locates the raw source material
type Paths struct {
	NonfictionDir    string
	LiteratureDir    string
	SpeechWritingPDF string
	GrammarPDF       string
	PageMinRunes     int
}

// Pools holds every loaded source pool
type Pools struct {
	Nonfiction    []types.SourceText
	Literature    []types.SourceText
	SpeechWriting []types.SourceText
	Grammar       []types.SourceText
}

// LoadAll loads the four pools concurrently. Each loader fills its own slot and sorts its
// files, so the result does not depend on scheduling.
func LoadAll(ctx context.Context, paths Paths, cleaner *ingestion.Cleaner) (*Pools, error) {
	pools := &Pools{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		pools.Nonfiction, err = LoadNonfiction(paths.NonfictionDir, cleaner)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		pools.Literature, err = LoadLiterature(paths.LiteratureDir, cleaner)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		pools.SpeechWriting, err = LoadPDFPages(paths.SpeechWritingPDF, paths.PageMinRunes, cleaner)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		pools.Grammar, err = LoadPDFPages(paths.GrammarPDF, paths.PageMinRunes, cleaner)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pools, nil
}
