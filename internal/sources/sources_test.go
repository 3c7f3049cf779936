package sources

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/daily-reading/internal/ingestion"
	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 18 characters
const springSentence = "산과 들에 봄꽃이 가득 피었다. "

func prose(n int) string {
	return strings.TrimSpace(strings.Repeat(springSentence, n))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNonfiction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"passage_text": "`+prose(12)+`"}`)
	writeFile(t, dir, "b.json", `{"passage_text": "짧은 글"}`)
	writeFile(t, dir, "c.json", `{ not json`)
	writeFile(t, dir, "d.txt", prose(12))
	writeFile(t, dir, "e.json", `{"passage_text": "(가) `+prose(12)+`\n(나) `+prose(13)+`"}`)

	got, err := LoadNonfiction(dir, ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, types.SourceNonfiction, got[0].SourceType)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, filepath.Join(dir, "a.json"), got[0].SourcePath)
	assert.Equal(t, prose(12), got[0].Text)

	assert.Equal(t, "e (가)", got[1].Title)
	assert.Equal(t, filepath.Join(dir, "e.json")+"#part=가", got[1].SourcePath)
	assert.Equal(t, "e (나)", got[2].Title)
	assert.Equal(t, prose(13), got[2].Text)
}

func TestLoadNonfiction_MissingDir(t *testing.T) {
	got, err := LoadNonfiction(filepath.Join(t.TempDir(), "missing"), ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadLiterature(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "poem.md", "# 제목\n\n"+prose(12))
	writeFile(t, dir, "story.html", "<html><body><article><p>"+prose(6)+"</p><p>"+prose(7)+"</p></article></body></html>")
	writeFile(t, dir, "short.txt", "짧은 글")

	got, err := LoadLiterature(dir, ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "poem", got[0].Title)
	assert.Equal(t, prose(12), got[0].Text)
	assert.Equal(t, types.SourceLiterature, got[0].SourceType)

	assert.Equal(t, "story", got[1].Title)
	assert.Equal(t, prose(6)+"\n\n"+prose(7), got[1].Text)
}

func TestLoadPDFPages(t *testing.T) {
	dir := t.TempDir()
	long := prose(30)
	pages := []string{
		"문제편\np.23\n" + long + "\n□",
		"짧은 쪽",
		long + "\n" + strings.Repeat("p.12 목차 ", 9),
		long,
	}
	path := writeFile(t, dir, "workbook.txt", strings.Join(pages, "\f"))

	got, err := LoadPDFPages(path, DefaultPageMinRunes, ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, types.SourcePDF, got[0].SourceType)
	assert.Equal(t, "workbook p1", got[0].Title)
	assert.Equal(t, path+"#page=1", got[0].SourcePath)
	assert.Equal(t, long, got[0].Text)
	assert.NotContains(t, got[0].Text, "문제편")

	assert.Equal(t, "workbook p4", got[1].Title)
}

func TestLoadPDFPages_MissingFile(t *testing.T) {
	got, err := LoadPDFPages(filepath.Join(t.TempDir(), "none.txt"), 0, ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = LoadPDFPages("", 0, ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadAll(t *testing.T) {
	nf := t.TempDir()
	lit := t.TempDir()
	writeFile(t, nf, "a.json", `{"passage_text": "`+prose(12)+`"}`)
	writeFile(t, lit, "b.md", prose(12))
	pdf := writeFile(t, t.TempDir(), "sw.txt", prose(30))

	pools, err := LoadAll(context.Background(), Paths{
		NonfictionDir:    nf,
		LiteratureDir:    lit,
		SpeechWritingPDF: pdf,
	}, ingestion.NewCleaner(ingestion.Options{}))
	require.NoError(t, err)

	assert.Len(t, pools.Nonfiction, 1)
	assert.Len(t, pools.Literature, 1)
	assert.Len(t, pools.SpeechWriting, 1)
	assert.Empty(t, pools.Grammar)
}

func TestLoadAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadAll(ctx, Paths{}, ingestion.NewCleaner(ingestion.Options{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestElementaryPool(t *testing.T) {
	cleaner := ingestion.NewCleaner(ingestion.Options{})
	set := rules.Default()

	clean := types.SourceText{Title: "clean", Text: "학교(學校) " + prose(13)}
	short := types.SourceText{Title: "short", Text: prose(3)}
	archaic := types.SourceText{Title: "archaic", Text: prose(13) + " 나는 가노라."}
	glossed := types.SourceText{Title: "glossed", Text: prose(13) + strings.Repeat(" (주석)", 6)}
	src := []types.SourceText{clean, short, archaic, glossed}

	saussure, _ := levels.Lookup("saussure1")
	got := ElementaryPool(src, saussure, cleaner, set)
	require.Len(t, got, 1)
	assert.Equal(t, "clean", got[0].Title)
	assert.NotContains(t, got[0].Text, "學校")
	assert.True(t, strings.HasPrefix(got[0].Text, "학교 "))

	frege, _ := levels.Lookup("frege1")
	got = ElementaryPool(src, frege, cleaner, set)
	require.Len(t, got, 2)
	assert.Equal(t, "archaic", got[1].Title)
}

func TestElementaryPool_FallsBackToOriginals(t *testing.T) {
	src := []types.SourceText{{Title: "short", Text: "짧은 글"}}
	level, _ := levels.Lookup("saussure2")

	got := ElementaryPool(src, level, ingestion.NewCleaner(ingestion.Options{}), rules.Default())
	assert.Equal(t, src, got)
}

func TestElementaryPool_PrefersLongSources(t *testing.T) {
	src := []types.SourceText{
		{Title: "medium", Text: prose(13)},
		{Title: "long", Text: prose(30)},
	}
	level, _ := levels.Lookup("frege1")

	got := ElementaryPool(src, level, ingestion.NewCleaner(ingestion.Options{}), rules.Default())
	require.Len(t, got, 1)
	assert.Equal(t, "long", got[0].Title)
}

func TestLifeText(t *testing.T) {
	s, _ := levels.Lookup("saussure1")
	f, _ := levels.Lookup("frege2")
	r, _ := levels.Lookup("russell1")

	assert.Contains(t, LifeText(s), "[추가 안내]")
	assert.Contains(t, LifeText(f), "[체크리스트]")
	assert.Equal(t, tmpl("life_common"), LifeText(r))
	assert.Contains(t, LifeText(r), "학교 활동 안내")
}

func TestUsageText(t *testing.T) {
	s, _ := levels.Lookup("saussure3")
	f1, _ := levels.Lookup("frege1")
	f2, _ := levels.Lookup("frege2")
	f3, _ := levels.Lookup("frege3")
	w, _ := levels.Lookup("wittgenstein1")

	assert.Contains(t, UsageText(s), `"안"과 "않"`)
	assert.NotContains(t, UsageText(f1), "[주제 3]")
	assert.Contains(t, UsageText(f2), "[주제 3]")
	assert.NotContains(t, UsageText(f2), "[심화]")
	assert.Contains(t, UsageText(f3), "[심화]")
	assert.Contains(t, UsageText(w), "표현의 쓰임")
}

func TestGenerated(t *testing.T) {
	level, _ := levels.Lookup("frege1")

	src, ok := Generated(levels.Life, level, 12)
	require.True(t, ok)
	assert.Equal(t, types.SourceGenerated, src.SourceType)
	assert.Equal(t, LifeLocator, src.SourcePath)
	assert.Equal(t, "frege1 day12", src.Title)

	src, ok = Generated(levels.Usage, level, 3)
	require.True(t, ok)
	assert.Equal(t, UsageLocator, src.SourcePath)

	_, ok = Generated(levels.Speech, level, 1)
	assert.False(t, ok)
}
