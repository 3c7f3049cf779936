package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/daily-reading/internal/config"
	"github.com/jonathan/daily-reading/internal/excerpt"
	"github.com/jonathan/daily-reading/internal/exercise"
	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/pipeline"
	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/schedule"
	"github.com/jonathan/daily-reading/internal/schemas"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile one passage file into a DAILY_READING exercise",
	Long: `Cleans a single passage (text, markdown or HTML) and compiles it into one exercise JSON
for the given level, day and content type. Elementary levels are cleaned for young readers
and excerpted to the level's target length.`,
	RunE: runCompile,
}

var (
	compileInputFile  string
	compileOutputFile string
	compileLevel      string
	compileDay        int
	compileType       string
	compileSeed       int64
	compileExamCut    int
)

func init() {
	compileCmd.Flags().StringVarP(&compileInputFile, "in", "i", "", "Path to passage file")
	compileCmd.Flags().StringVarP(&compileOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	compileCmd.Flags().StringVarP(&compileLevel, "level", "l", "", "Level name, e.g. frege2")
	compileCmd.Flags().IntVarP(&compileDay, "day", "d", 1, "Day number (1-365)")
	compileCmd.Flags().StringVarP(&compileType, "type", "t", levels.Nonfiction, "Content type, e.g. NONFICTION or LITERATURE")
	compileCmd.Flags().Int64Var(&compileSeed, "seed", config.DefaultSeed, "Random seed")
	compileCmd.Flags().IntVar(&compileExamCut, "exam-cut", 0, "Passage characters required before an exam block ends the text")

	_ = compileCmd.MarkFlagRequired("in")
	_ = compileCmd.MarkFlagRequired("level")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	level, err := levels.Lookup(compileLevel)
	if err != nil {
		return err
	}
	if compileDay < 1 || compileDay > schedule.DaysPerYear {
		return fmt.Errorf("day must be between 1 and %d, got %d", schedule.DaysPerYear, compileDay)
	}
	typ := strings.ToUpper(compileType)
	if !hasLabel(level, typ) {
		return fmt.Errorf("content type %s is not scheduled for %s", typ, level.Name)
	}

	text, err := readPassage(compileInputFile)
	if err != nil {
		return err
	}

	cleaner := ingestion.NewCleaner(ingestion.Options{ExamCutThreshold: compileExamCut})
	set := rules.Default()
	if level.IsElementary() {
		text = excerpt.ToLength(pipeline.ElementaryText(cleaner, set, level, typ, text), level.TargetLength)
	}

	builder := exercise.NewBuilder(cleaner, set, rand.New(rand.NewSource(compileSeed)))
	ex, err := builder.Build(exercise.NewMeta(level, compileDay, typ), text)
	if err != nil {
		return fmt.Errorf("failed to compile passage: %w", err)
	}
	if err := schemas.ValidateExercise(ex); err != nil {
		return fmt.Errorf("compiled exercise does not validate against schema: %w", err)
	}

	if compileOutputFile == "" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ex); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(compileOutputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := pipeline.WriteExercise(compileOutputFile, ex); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Compiled %s (%s)\n", ex.ContentID, typ)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", compileOutputFile)
	return nil
}

func hasLabel(level levels.Level, label string) bool {
	for _, q := range level.Quota {
		if q.Label == label {
			return true
		}
	}
	return false
}

// readPassage reads a passage file, reducing HTML to its text
func readPassage(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := ingestion.HTMLToText(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to extract HTML text: %w", err)
		}
		return text, nil
	default:
		return string(content), nil
	}
}
