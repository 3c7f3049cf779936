package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/daily-reading/internal/observability"
	"github.com/jonathan/daily-reading/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate exercise and source index files against their JSON schemas",
	Long: `Validates JSON files against the embedded schemas. Directories are searched for *.json files.
Files ending in _source_index.json are checked against the source index schema, everything else
against the exercise schema unless --schema names a schema file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateSchemaPath string
	validateQuiet      bool
)

func init() {
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a JSON schema file overriding the embedded schemas")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Only report invalid files")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectJSONFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no JSON files found")
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	failed := 0
	for _, path := range files {
		var err error
		if validateSchemaPath != "" {
			err = schemas.ValidateJSON(validateSchemaPath, path)
		} else {
			err = schemas.ValidateFile(path)
		}

		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &schemaLoadErr) {
			return err
		}
		problems := validationProblems(err)
		if len(problems) > 0 {
			failed++
		}
		if len(problems) > 0 || !validateQuiet {
			printer.PrintValidation(path, problems)
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d of %d files invalid", failed, len(files))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d files\n", len(files))
	return nil
}

func validationProblems(err error) []string {
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Problems()
	}
	return []string{err.Error()}
}

// collectJSONFiles expands directories into their *.json files, sorted by path
func collectJSONFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}
	sort.Strings(files)
	return files, nil
}
