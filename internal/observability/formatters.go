// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n characters, ending in "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExercise outputs a summary of a compiled exercise
func (p *Printer) PrintExercise(ex *types.Exercise) {
	if ex == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", ex.ContentID))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", ex.Title))
	sb.WriteString(fmt.Sprintf("Level:    %s (grade %d)\n", ex.TargetLevel, ex.SchoolGradeRange.Min))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", ex.SubArea))
	sb.WriteString("\n")

	paragraphs := ex.Payload.Passage.Paragraphs
	sb.WriteString(fmt.Sprintf("Paragraphs: %d\n", len(paragraphs)))
	if len(paragraphs) > 0 {
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(paragraphs[0].Text, 40)))
	}
	sb.WriteString("\n")

	steps := ex.Payload.Intensive.Timeline
	sb.WriteString(fmt.Sprintf("Steps: %d\n", len(steps)))
	count := min(len(steps), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := steps[i]
		sb.WriteString(fmt.Sprintf("  • %s [%s] %s\n", s.StepID, s.Question.AnswerID, s.Question.Prompt))
	}
	if len(steps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(steps)-maxItemsToShow))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Recall cards: %d\n", len(ex.Payload.Recall.Cards)))
	for _, q := range ex.Payload.Confirm.Questions {
		sb.WriteString(fmt.Sprintf("Confirm: %s (%d ranges)\n", q.Prompt, len(q.AnswerRanges)))
	}

	p.printBox("COMPILED EXERCISE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSchedule outputs per-label counts and the opening days of a level schedule
func (p *Printer) PrintSchedule(level string, entries []types.ScheduleEntry) {
	if len(entries) == 0 {
		return
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if counts[e.Label] == 0 {
			order = append(order, e.Label)
		}
		counts[e.Label]++
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Days: %d\n\n", len(entries)))
	for _, label := range order {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", label, counts[label]))
	}
	sb.WriteString("\n")

	count := min(len(entries), 2*maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("Day %03d  %s\n", entries[i].Day, entries[i].Label))
	}
	if len(entries) > count {
		sb.WriteString(fmt.Sprintf("... and %d more days", len(entries)-count))
	}

	p.printBox("SCHEDULE "+strings.ToUpper(level), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCleaning outputs what the cleaner did to one source
func (p *Printer) PrintCleaning(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	if meta.SourcePath != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", meta.SourcePath))
	}
	sb.WriteString(fmt.Sprintf("Length:   %d -> %d\n", meta.RawLength, meta.CleanedLength))
	sb.WriteString(fmt.Sprintf("Stages:   %s\n", strings.Join(meta.Stages, ", ")))
	sb.WriteString(fmt.Sprintf("Exam cut: %d\n", meta.ExamCutAtChars))
	if len(meta.Parts) > 0 {
		sb.WriteString(fmt.Sprintf("Parts:    %s\n", strings.Join(meta.Parts, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Hash:     %s", truncate(meta.Hash, 19)))

	p.printBox("CLEANED SOURCE", sb.String())
}

// LevelSummary counts the files of one level in a generation run
type LevelSummary struct {
	Level   string
	Written int
	Skipped int
}

// PrintRunSummary outputs per-level counts of a generation run
func (p *Printer) PrintRunSummary(levels []LevelSummary, indexPath string) {
	if len(levels) == 0 {
		return
	}

	var sb strings.Builder
	written, skipped := 0, 0
	for _, l := range levels {
		sb.WriteString(fmt.Sprintf("%-14s written %3d  skipped %3d\n", l.Level, l.Written, l.Skipped))
		written += l.Written
		skipped += l.Skipped
	}
	sb.WriteString(fmt.Sprintf("\nTotal: written %d, skipped %d\n", written, skipped))
	if indexPath != "" {
		sb.WriteString(fmt.Sprintf("Index: %s\n", indexPath))
	}

	p.printBox("GENERATION RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs schema problems found in a file.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(path string, problems []string) {
	if len(problems) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate("✅ VALID "+path, boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\nFound %d problems:\n\n", path, len(problems)))
	for i, problem := range problems {
		sb.WriteString(fmt.Sprintf("⚠ %s", problem))
		if i < len(problems)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCHEMA VIOLATIONS", sb.String())
}
