package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jonathan/daily-reading/internal/config"
	"github.com/jonathan/daily-reading/internal/logger"
	"github.com/jonathan/daily-reading/internal/pipeline"
	"github.com/jonathan/daily-reading/internal/sources"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a year of exercises for every level",
	Long: `Loads the source pools, schedules 365 days per level and writes one exercise file per day
into <output>/<level>/NNN.json, followed by the source index.

Existing files are kept unless their level is listed in --force. Configuration can be loaded
from a JSON or YAML file using --config. Command-line flags override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath    string
	genOutputDir     string
	genNonfiction    string
	genLiterature    string
	genSpeechWriting string
	genGrammar       string
	genSeed          int64
	genLevels        []string
	genForce         []string
	genExamCut       int
	genPageMin       int
	genLogMode       string
	genVerbose       bool
	genDatabaseURL   string
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config file (.json, .yaml or .yml)")

	generateCmd.Flags().StringVarP(&genOutputDir, "output", "o", "", "Output directory (default \"daily-reading\")")
	generateCmd.Flags().StringVar(&genNonfiction, "nonfiction", "", "Directory of nonfiction JSON sources")
	generateCmd.Flags().StringVar(&genLiterature, "literature", "", "Directory of literature md/txt/html sources")
	generateCmd.Flags().StringVar(&genSpeechWriting, "speech-writing", "", "Extracted text of the speech/writing workbook")
	generateCmd.Flags().StringVar(&genGrammar, "grammar", "", "Extracted text of the grammar workbook")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (default 20260214)")
	generateCmd.Flags().StringSliceVar(&genLevels, "levels", nil, "Levels to generate, e.g. saussure1,frege2 (default all)")
	generateCmd.Flags().StringSliceVar(&genForce, "force", nil, "Levels regenerated even when files exist")
	generateCmd.Flags().IntVar(&genExamCut, "exam-cut", 0, "Passage characters required before an exam block ends the text")
	generateCmd.Flags().IntVar(&genPageMin, "page-min", 0, "Minimum characters of a workbook page")
	generateCmd.Flags().StringVar(&genLogMode, "log-mode", "", "Log mode: prod, dev or quiet")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print schedules and a run summary")

	// Database URL for run archiving
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DAILY_READING_DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()

	// Step 2: Apply CLI overrides (command-line args take priority)
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = genOutputDir
	}
	if flags.Changed("nonfiction") {
		cfg.NonfictionDir = genNonfiction
	}
	if flags.Changed("literature") {
		cfg.LiteratureDir = genLiterature
	}
	if flags.Changed("speech-writing") {
		cfg.SpeechWritingPDF = genSpeechWriting
	}
	if flags.Changed("grammar") {
		cfg.GrammarPDF = genGrammar
	}
	if flags.Changed("seed") {
		cfg.Seed = genSeed
	}
	if flags.Changed("levels") {
		cfg.Levels = genLevels
	}
	if flags.Changed("force") {
		cfg.ForceLevels = genForce
	}
	if flags.Changed("exam-cut") {
		cfg.ExamCutThreshold = genExamCut
	}
	if flags.Changed("page-min") {
		cfg.PageMinRunes = genPageMin
	}
	if flags.Changed("log-mode") {
		cfg.LogMode = genLogMode
	}
	if flags.Changed("verbose") {
		cfg.Verbose = genVerbose
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}

	// Step 3: Apply defaults and validate
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := pipeline.RunOptions{
		OutputDir: cfg.OutputDir,
		Sources: sources.Paths{
			NonfictionDir:    cfg.NonfictionDir,
			LiteratureDir:    cfg.LiteratureDir,
			SpeechWritingPDF: cfg.SpeechWritingPDF,
			GrammarPDF:       cfg.GrammarPDF,
			PageMinRunes:     cfg.PageMinRunes,
		},
		Levels:           cfg.Levels,
		ForceLevels:      cfg.ForceLevels,
		Seed:             cfg.Seed,
		ExamCutThreshold: cfg.ExamCutThreshold,
		Verbose:          cfg.Verbose,
		DatabaseURL:      cfg.DatabaseURL,
		Logger:           log,
		Out:              cmd.OutOrStdout(),
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	written, skipped := 0, 0
	for _, l := range result.Levels {
		written += l.Written
		skipped += l.Skipped
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d levels: %d written, %d kept\n", len(result.Levels), written, skipped)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Source index: %s\n", result.IndexPath)
	return nil
}
