package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGenerateSources(t *testing.T, dir string) {
	t.Helper()
	doc, err := json.Marshal(map[string]string{"passage_text": samplePassage})
	require.NoError(t, err)
	writeFile(t, dir, filepath.Join("nonfiction", "trees.json"), string(doc))
	writeFile(t, dir, filepath.Join("literature", "grandma.md"), sampleStory)
}

func TestGenerateCommand_FromConfig(t *testing.T) {
	dir := t.TempDir()
	writeGenerateSources(t, dir)
	out := filepath.Join(dir, "out")
	cfg := writeFile(t, dir, "config.yaml", `output_dir: `+out+`
nonfiction_dir: `+filepath.Join(dir, "nonfiction")+`
literature_dir: `+filepath.Join(dir, "literature")+`
levels: [wittgenstein3]
log_mode: quiet
`)

	stdout, err := execute(t, "generate", "--config", cfg, "--db-url", "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated 1 levels: 365 written, 0 kept")

	_, err = os.Stat(filepath.Join(out, "wittgenstein3", "365.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "daily-reading_source_index.json"))
	assert.NoError(t, err)

	// Flags override the config file
	stdout, err = execute(t, "generate", "--config", cfg, "--db-url", "", "--levels", "wittgenstein3", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "365 kept")
	assert.Contains(t, stdout, "GENERATION RUN")
}

func TestGenerateCommand_InvalidLevel(t *testing.T) {
	_, err := execute(t, "generate", "--levels", "hegel1", "--log-mode", "quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestGenerateCommand_NoSources(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "generate",
		"--output", filepath.Join(dir, "out"),
		"--nonfiction", filepath.Join(dir, "nonfiction"),
		"--literature", filepath.Join(dir, "literature"),
		"--levels", "russell1",
		"--log-mode", "quiet",
		"--db-url", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources loaded")
}

func TestGenerateCommand_MissingConfig(t *testing.T) {
	_, err := execute(t, "generate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
