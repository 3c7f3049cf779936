package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/observability"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a raw passage file into plain passage prose",
	Long:  "Removes exam apparatus, workbook noise and enumeration markers from a passage file and prints the cleaned text. Labeled parts such as (가) and (나) are cleaned separately.",
	RunE:  runClean,
}

var (
	cleanInputFile  string
	cleanOutputFile string
	cleanMetaFile   string
	cleanExamCut    int
	cleanElementary bool
	cleanVerbose    bool
)

func init() {
	cleanCmd.Flags().StringVarP(&cleanInputFile, "in", "i", "", "Path to raw passage file (.txt, .md or .html)")
	cleanCmd.Flags().StringVarP(&cleanOutputFile, "out", "o", "", "Path to cleaned text file (default stdout)")
	cleanCmd.Flags().StringVar(&cleanMetaFile, "meta", "", "Path to write cleaning metadata JSON")
	cleanCmd.Flags().IntVar(&cleanExamCut, "exam-cut", 0, "Passage characters required before an exam block ends the text")
	cleanCmd.Flags().BoolVar(&cleanElementary, "elementary", false, "Also apply the young-reader cleanup")
	cleanCmd.Flags().BoolVarP(&cleanVerbose, "verbose", "v", false, "Print a cleaning summary")

	_ = cleanCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	raw, err := readPassage(cleanInputFile)
	if err != nil {
		return err
	}

	cleaner := ingestion.NewCleaner(ingestion.Options{ExamCutThreshold: cleanExamCut})
	parts := cleaner.CleanParts(raw, 1)
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		text := p.Text
		if cleanElementary {
			text = cleaner.CleanElementary(text)
		}
		texts = append(texts, text)
	}
	cleaned := strings.Join(texts, "\n\n")

	meta := ingestion.NewMetadata(cleaner, cleanInputFile, raw, cleaned)
	if len(parts) > 1 {
		for _, p := range parts {
			meta.Parts = append(meta.Parts, p.Label)
		}
	}

	if cleanOutputFile == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cleaned)
	} else if err := os.WriteFile(cleanOutputFile, []byte(cleaned+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if cleanMetaFile != "" {
		metaJSON, err := meta.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if err := os.WriteFile(cleanMetaFile, metaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write metadata file: %w", err)
		}
	}

	if cleanVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCleaning(meta)
	}
	return nil
}
