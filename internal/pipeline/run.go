// Package pipeline provides the high-level orchestration of a generation run: load the
// source pools, schedule every level's year and compile one exercise per day.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/daily-reading/internal/db"
	"github.com/jonathan/daily-reading/internal/excerpt"
	"github.com/jonathan/daily-reading/internal/exercise"
	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/logger"
	"github.com/jonathan/daily-reading/internal/observability"
	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/schedule"
	"github.com/jonathan/daily-reading/internal/schemas"
	"github.com/jonathan/daily-reading/internal/sourceindex"
	"github.com/jonathan/daily-reading/internal/sources"
	"github.com/jonathan/daily-reading/internal/types"
)

// ProgressEvent represents a progress update during a generation run
type ProgressEvent struct {
	Level     string `json:"level"`
	Day       int    `json:"day"`
	ContentID string `json:"content_id,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
}

// ProgressCallback is called after every day slot
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for a generation run
type RunOptions struct {
	OutputDir        string
	Sources          sources.Paths
	Levels           []string // empty means every level
	ForceLevels      []string // levels regenerated even when their files exist
	Seed             int64
	ExamCutThreshold int
	Verbose          bool
	DatabaseURL      string
	Logger           *logger.Logger
	Out              io.Writer // verbose summaries, stdout when nil
	OnProgress       ProgressCallback
}

// Result summarizes a finished run
type Result struct {
	RunID     uuid.UUID
	Levels    []observability.LevelSummary
	Index     []types.SourceIndexEntry
	IndexPath string
}

// elementaryRefillRatio is the share of the target length below which a passage is
// padded with the next source of its pool
const elementaryRefillRatio = 0.9

// cursor cycles through the source pools. Positions carry over between levels.
type cursor struct {
	nf, lit, sw, gr int
}

// levelPools are the pools one level draws nonfiction and literature from
type levelPools struct {
	nf, lit []types.SourceText
}

type runner struct {
	opts    RunOptions
	log     *logger.Logger
	printer *observability.Printer
	cleaner *ingestion.Cleaner
	rules   *rules.Set
	builder *exercise.Builder
	pools   *sources.Pools
	old     []types.SourceIndexEntry
	oldIdx  map[sourceindex.Key]types.SourceIndexEntry
	force   map[string]bool
	pos     cursor
	db      *db.DB
	runID   uuid.UUID
}

// Run compiles every selected level. Existing exercise files are kept unless their level
// is forced; the source index always covers every selected (level, day).
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	selected, err := selectLevels(opts.Levels)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	r := &runner{
		opts:    opts,
		log:     opts.Logger,
		printer: observability.NewPrinter(opts.Out),
		cleaner: ingestion.NewCleaner(ingestion.Options{ExamCutThreshold: opts.ExamCutThreshold}),
		rules:   rules.Default(),
		force:   make(map[string]bool, len(opts.ForceLevels)),
	}
	for _, l := range opts.ForceLevels {
		r.force[l] = true
	}
	r.builder = exercise.NewBuilder(r.cleaner, r.rules, rand.New(rand.NewSource(opts.Seed)))

	r.pools, err = sources.LoadAll(ctx, opts.Sources, r.cleaner)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	if len(r.pools.Nonfiction) == 0 {
		return nil, fmt.Errorf("%w: nonfiction pool is empty", ErrNoSources)
	}
	if len(r.pools.Literature) == 0 {
		return nil, fmt.Errorf("%w: literature pool is empty", ErrNoSources)
	}
	r.log.Info("sources loaded",
		"nonfiction", len(r.pools.Nonfiction),
		"literature", len(r.pools.Literature),
		"speech_writing", len(r.pools.SpeechWriting),
		"grammar", len(r.pools.Grammar))

	r.connect(ctx)
	if r.db != nil {
		defer r.db.Close()
	}

	fileStore := sourceindex.NewFileStore(opts.OutputDir)
	var store sourceindex.Store = fileStore
	if r.db != nil {
		store = sourceindex.Multi{fileStore, sourceindex.NewDBStore(r.db)}
	}
	old, err := store.Load(ctx)
	if err != nil {
		r.log.Warn("ignoring unreadable source index", "error", err)
	}
	r.old = old
	r.oldIdx = sourceindex.ByKey(old)

	result := &Result{RunID: r.runID, IndexPath: fileStore.Path}
	generated := make(map[string][]types.SourceIndexEntry, len(selected))
	for _, level := range selected {
		if err := ctx.Err(); err != nil {
			r.finishRun(ctx, db.RunStatusFailed)
			return nil, err
		}
		summary, entries, err := r.runLevel(ctx, level)
		if err != nil {
			r.finishRun(ctx, db.RunStatusFailed)
			return nil, fmt.Errorf("level %s: %w", level.Name, err)
		}
		result.Levels = append(result.Levels, summary)
		generated[level.Name] = entries
		r.log.Info("level generated", "level", level.Name, "written", summary.Written, "skipped", summary.Skipped)
	}

	result.Index = mergeIndex(r.old, generated)
	if err := schemas.ValidateSourceIndex(result.Index); err != nil {
		r.finishRun(ctx, db.RunStatusFailed)
		return nil, fmt.Errorf("invalid source index: %w", err)
	}
	if err := store.Save(ctx, result.Index); err != nil {
		r.finishRun(ctx, db.RunStatusFailed)
		return nil, err
	}
	r.finishRun(ctx, db.RunStatusCompleted)
	r.log.Info("source index written", "path", fileStore.Path, "entries", len(result.Index))

	if opts.Verbose {
		r.printer.PrintRunSummary(result.Levels, fileStore.Path)
	}
	return result, nil
}

// mergeIndex orders the index by level and day. Levels outside this run keep their
// previous entries.
func mergeIndex(old []types.SourceIndexEntry, generated map[string][]types.SourceIndexEntry) []types.SourceIndexEntry {
	previous := make(map[string][]types.SourceIndexEntry)
	for _, e := range old {
		if e.Day < 1 || e.Day > schedule.DaysPerYear {
			continue
		}
		previous[e.Level] = append(previous[e.Level], e)
	}

	var out []types.SourceIndexEntry
	for _, name := range levels.Names() {
		if entries, ok := generated[name]; ok {
			out = append(out, entries...)
			continue
		}
		kept := previous[name]
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Day < kept[j].Day })
		out = append(out, kept...)
	}
	return out
}

// selectLevels resolves level names, keeping generation order
func selectLevels(names []string) ([]levels.Level, error) {
	all := levels.All()
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, err := levels.Lookup(n); err != nil {
			return nil, err
		}
		want[n] = true
	}
	var out []levels.Level
	for _, l := range all {
		if want[l.Name] {
			out = append(out, l)
		}
	}
	return out, nil
}

// connect opens the optional database. Failures downgrade the run to file output only.
func (r *runner) connect(ctx context.Context) {
	if r.opts.DatabaseURL == "" {
		return
	}
	database, err := db.Connect(ctx, r.opts.DatabaseURL)
	if err != nil {
		r.log.Warn("continuing without database persistence", "database_url", r.opts.DatabaseURL, "error", err)
		return
	}
	if err := database.EnsureSchema(ctx); err != nil {
		r.log.Warn("continuing without database persistence", "error", err)
		database.Close()
		return
	}
	runID, err := database.CreateRun(ctx, r.opts.Seed, r.opts.OutputDir)
	if err != nil {
		r.log.Warn("failed to create database run", "error", err)
	}
	r.db = database
	r.runID = runID
	r.log = r.log.With("run_id", runID.String())
}

func (r *runner) finishRun(ctx context.Context, status string) {
	if r.db == nil || r.runID == uuid.Nil {
		return
	}
	if err := r.db.CompleteRun(ctx, r.runID, status); err != nil {
		r.log.Warn("failed to complete database run", "error", err)
	}
}

func (r *runner) runLevel(ctx context.Context, level levels.Level) (observability.LevelSummary, []types.SourceIndexEntry, error) {
	summary := observability.LevelSummary{Level: level.Name}

	labels, err := schedule.Year(level.Quota)
	if err != nil {
		return summary, nil, err
	}
	if r.opts.Verbose {
		r.printer.PrintSchedule(level.Name, schedule.Entries(level.Name, labels))
	}

	dir := filepath.Join(r.opts.OutputDir, level.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return summary, nil, fmt.Errorf("failed to create level directory: %w", err)
	}

	trackLevel := r.db != nil && r.runID != uuid.Nil
	if trackLevel {
		if _, err := r.db.StartLevel(ctx, r.runID, level.Name); err != nil {
			r.log.Warn("failed to record level start", "level", level.Name, "error", err)
			trackLevel = false
		}
	}

	pools := r.poolsFor(level)
	entries := make([]types.SourceIndexEntry, 0, len(labels))
	for day := 1; day <= len(labels); day++ {
		path := filepath.Join(dir, levels.FileName(day))
		if _, statErr := os.Stat(path); statErr == nil && !r.force[level.Name] {
			entries = append(entries, r.reuseEntry(level.Name, day, path))
			summary.Skipped++
			r.progress(ProgressEvent{Level: level.Name, Day: day, Skipped: true})
			continue
		}

		typ := labels[day-1]
		src, text := r.pick(level, pools, typ, day)
		if level.IsElementary() {
			text = r.fitElementary(level, pools, typ, text)
		}

		ex, err := r.builder.Build(exercise.NewMeta(level, day, typ), text)
		if err != nil {
			r.failLevel(ctx, level.Name, trackLevel, summary, err)
			return summary, nil, err
		}
		if err := schemas.ValidateExercise(ex); err != nil {
			err = fmt.Errorf("exercise %s: %w", ex.ContentID, err)
			r.failLevel(ctx, level.Name, trackLevel, summary, err)
			return summary, nil, err
		}
		if err := WriteExercise(path, ex); err != nil {
			r.failLevel(ctx, level.Name, trackLevel, summary, err)
			return summary, nil, err
		}
		if r.db != nil {
			if err := r.db.SaveExercise(ctx, r.runID, level.Name, day, ex); err != nil {
				r.log.Warn("failed to archive exercise", "content_id", ex.ContentID, "error", err)
			}
		}
		if r.opts.Verbose && summary.Written == 0 {
			r.printer.PrintExercise(ex)
		}

		contentID, subArea := ex.ContentID, typ
		entries = append(entries, types.SourceIndexEntry{
			Level:       level.Name,
			Day:         day,
			ContentID:   &contentID,
			Type:        &subArea,
			SourceType:  src.SourceType,
			SourcePath:  src.SourcePath,
			SourceTitle: src.Title,
		})
		summary.Written++
		r.log.Debug("exercise written", "content_id", ex.ContentID, "type", typ, "source", src.SourcePath)
		r.progress(ProgressEvent{Level: level.Name, Day: day, ContentID: ex.ContentID})
	}

	if trackLevel {
		if err := r.db.FinishLevel(ctx, r.runID, level.Name, summary.Written, summary.Skipped, nil); err != nil {
			r.log.Warn("failed to record level finish", "level", level.Name, "error", err)
		}
	}
	return summary, entries, nil
}

func (r *runner) failLevel(ctx context.Context, level string, track bool, summary observability.LevelSummary, cause error) {
	if !track {
		return
	}
	msg := cause.Error()
	if err := r.db.FinishLevel(ctx, r.runID, level, summary.Written, summary.Skipped, &msg); err != nil {
		r.log.Warn("failed to record level failure", "level", level, "error", err)
	}
}

func (r *runner) progress(e ProgressEvent) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(e)
	}
}

// poolsFor returns the nonfiction and literature pools of a level. Elementary levels
// draw from re-cleaned, filtered pools.
func (r *runner) poolsFor(level levels.Level) levelPools {
	if !level.IsElementary() {
		return levelPools{nf: r.pools.Nonfiction, lit: r.pools.Literature}
	}
	return levelPools{
		nf:  sources.ElementaryPool(r.pools.Nonfiction, level, r.cleaner, r.rules),
		lit: sources.ElementaryPool(r.pools.Literature, level, r.cleaner, r.rules),
	}
}

// pick chooses the source of a day slot and advances the matching cursor. Speech,
// writing and grammar slots fall back to the nonfiction pool without advancing it when
// their workbook pool is empty.
func (r *runner) pick(level levels.Level, pools levelPools, typ string, day int) (types.SourceText, string) {
	var src types.SourceText
	switch typ {
	case levels.Nonfiction:
		src = pools.nf[r.pos.nf%len(pools.nf)]
		r.pos.nf++
	case levels.Literature:
		src = pools.lit[r.pos.lit%len(pools.lit)]
		r.pos.lit++
	case levels.Speech, levels.Writing:
		src = r.workbook(r.pools.SpeechWriting, r.pos.sw)
		r.pos.sw++
	case levels.Grammar:
		src = r.workbook(r.pools.Grammar, r.pos.gr)
		r.pos.gr++
	case levels.Life, levels.Usage:
		src, _ = sources.Generated(typ, level, day)
	default:
		src = r.pools.Nonfiction[r.pos.nf%len(r.pools.Nonfiction)]
		r.pos.nf++
	}
	return src, src.Text
}

func (r *runner) workbook(pool []types.SourceText, at int) types.SourceText {
	if len(pool) > 0 {
		return pool[at%len(pool)]
	}
	return r.pools.Nonfiction[r.pos.nf%len(r.pools.Nonfiction)]
}

// fitElementary prepares a passage of an elementary level, pads short passages with the
// next source of the same pool and excerpts to the target length.
func (r *runner) fitElementary(level levels.Level, pools levelPools, typ, text string) string {
	target := level.TargetLength
	text = ElementaryText(r.cleaner, r.rules, level, typ, text)

	if ingestion.RuneLen(text) < int(float64(target)*elementaryRefillRatio) {
		switch typ {
		case levels.Literature:
			text += "\n\n" + pools.lit[r.pos.lit%len(pools.lit)].Text
			r.pos.lit++
		case levels.Nonfiction:
			text += "\n\n" + pools.nf[r.pos.nf%len(pools.nf)].Text
			r.pos.nf++
		}
	}
	return excerpt.ToLength(text, target)
}

// ElementaryText cleans nonfiction and literature passages for young readers. Passages of
// other content types are returned unchanged.
func ElementaryText(cleaner *ingestion.Cleaner, set *rules.Set, level levels.Level, typ, text string) string {
	if typ != levels.Nonfiction && typ != levels.Literature {
		return text
	}
	text = cleaner.CleanElementary(text)
	if level.IsLowestTier() {
		text = ingestion.SimplifyForLowestTier(text, set)
	}
	// Strip headers now so length checks see the final passage
	return ingestion.StripExamHeaders(text)
}

// reuseEntry returns the index entry of a day whose file is kept. Without a previous
// entry one is derived from the file itself.
func (r *runner) reuseEntry(level string, day int, path string) types.SourceIndexEntry {
	if e, ok := r.oldIdx[sourceindex.Key{Level: level, Day: day}]; ok {
		return e
	}
	entry := types.SourceIndexEntry{Level: level, Day: day, SourceType: types.SourceUnknown}

	data, err := os.ReadFile(path)
	if err != nil {
		return entry
	}
	var existing struct {
		ContentID *string `json:"contentId"`
		SubArea   *string `json:"subArea"`
	}
	if err := json.Unmarshal(data, &existing); err != nil {
		r.log.Warn("existing exercise is unreadable", "path", path, "error", err)
		return entry
	}
	entry.ContentID = existing.ContentID
	entry.Type = existing.SubArea
	return entry
}

// WriteExercise writes ex as indented JSON without HTML escaping. The record is encoded in
// memory and renamed into place, so a failed write never leaves a partial file at path.
func WriteExercise(path string, ex *types.Exercise) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ex); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}
