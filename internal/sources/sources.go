// Package sources loads passage pools (nonfiction JSON, literature files, PDF page text)
// and produces the generated life and usage texts.
package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/types"
)

// MinSourceRunes is the minimum cleaned length of a file source
const MinSourceRunes = 200

// nonfictionDoc is the part of a nonfiction JSON file the loader reads
type nonfictionDoc struct {
	PassageText string `json:"passage_text"`
}

// LoadNonfiction loads *.json files from dir, reading their passage_text field. Each
// labeled part of a multi-part passage becomes its own source.
func LoadNonfiction(dir string, cleaner *ingestion.Cleaner) ([]types.SourceText, error) {
	paths, err := listFiles(dir, ".json")
	if err != nil {
		return nil, err
	}

	var out []types.SourceText
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ingestion.Error{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
		}
		var doc nonfictionDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			// Not a passage file
			continue
		}
		if ingestion.RuneLen(strings.TrimSpace(doc.PassageText)) < MinSourceRunes {
			continue
		}
		out = append(out, fromParts(types.SourceNonfiction, path, stem(path), cleaner.CleanParts(doc.PassageText, MinSourceRunes))...)
	}
	return out, nil
}

// LoadLiterature loads *.md, *.txt and *.html files from dir. HTML is reduced to its
// passage text first.
func LoadLiterature(dir string, cleaner *ingestion.Cleaner) ([]types.SourceText, error) {
	paths, err := listFiles(dir, ".md", ".txt", ".html", ".htm")
	if err != nil {
		return nil, err
	}

	var out []types.SourceText
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ingestion.Error{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
		}
		text := string(data)
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".html" || ext == ".htm" {
			text, err = ingestion.HTMLToText(text)
			if err != nil {
				continue
			}
		}
		out = append(out, fromParts(types.SourceLiterature, path, stem(path), cleaner.CleanParts(text, MinSourceRunes))...)
	}
	return out, nil
}

// fromParts tags cleaned parts with provenance. Labeled parts get " (label)" in the title
// and "#part=label" in the path.
func fromParts(sourceType, path, title string, parts []ingestion.Part) []types.SourceText {
	out := make([]types.SourceText, 0, len(parts))
	for _, p := range parts {
		src := types.SourceText{SourceType: sourceType, SourcePath: path, Title: title, Text: p.Text}
		if p.Label != "" {
			src.Title += " (" + p.Label + ")"
			src.SourcePath += "#part=" + p.Label
		}
		out = append(out, src)
	}
	return out
}

// listFiles returns the sorted files of dir with one of exts. A missing dir yields no files.
func listFiles(dir string, exts ...string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ingestion.Error{Message: fmt.Sprintf("failed to list %s", dir), Cause: err}
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
