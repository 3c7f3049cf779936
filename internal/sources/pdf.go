package sources

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/types"
)

// DefaultPageMinRunes is the minimum cleaned length of a PDF page
const DefaultPageMinRunes = 450

var (
	pageRefRe   = regexp.MustCompile(`^p\.\d+$`)
	blankRunsRe = regexp.MustCompile(`\n\s*\n+`)
)

// page furniture of the workbook PDFs
var pageNoise = map[string]bool{"문제편": true, "해설편": true, "학습체크": true, "□": true}

// LoadPDFPages loads text extracted from a PDF (pdftotext output, pages separated by form
// feeds). Pages shorter than minLen or dominated by page references are skipped; parts
// must reach max(250, 0.6*minLen). A missing file yields no sources.
func LoadPDFPages(path string, minLen int, cleaner *ingestion.Cleaner) ([]types.SourceText, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ingestion.Error{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	if minLen <= 0 {
		minLen = DefaultPageMinRunes
	}
	partMin := int(float64(minLen) * 0.6)
	if partMin < 250 {
		partMin = 250
	}

	var out []types.SourceText
	for i, page := range strings.Split(string(data), "\f") {
		text := cleanPage(page)
		if ingestion.RuneLen(text) < minLen {
			continue
		}
		if strings.Count(text, "p.") > 8 {
			continue
		}
		title := fmt.Sprintf("%s p%d", stem(path), i+1)
		loc := fmt.Sprintf("%s#page=%d", path, i+1)
		out = append(out, fromParts(types.SourcePDF, loc, title, cleaner.CleanParts(text, partMin))...)
	}
	return out, nil
}

func cleanPage(page string) string {
	page = strings.ReplaceAll(page, "\r\n", "\n")
	lines := strings.Split(page, "\n")
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		s := strings.TrimSpace(ln)
		if s == "" {
			kept = append(kept, "")
			continue
		}
		if pageNoise[s] || pageRefRe.MatchString(s) {
			continue
		}
		kept = append(kept, s)
	}
	text := blankRunsRe.ReplaceAllString(strings.Join(kept, "\n"), "\n\n")
	return ingestion.Normalize(strings.TrimSpace(text))
}
