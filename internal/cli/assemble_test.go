package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/featuredb/internal/ir"
)

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	index := writeFile(t, dir, "index.json", indexJSON)
	categories := writeFile(t, dir, "categories.yaml", categoriesYAML)
	output := filepath.Join(dir, "static", "features-data.json")

	out, err := execute(NewAssembleCommand(testRootOptions(t, "text")),
		"--index", index,
		"--categories", categories,
		"--commit-base-url", "https://github.com/acme/site/commit/",
		"-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Assembled 2 feature(s), 2 change(s)")

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	data, err := ir.DecodeFeaturesData(raw, ir.Strict)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/site/commit/", data.CommitBaseURL)
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "Core", data.Categories[0].Title)
	assert.Len(t, data.Commits, 2)
}

func TestAssembleCUECategories(t *testing.T) {
	dir := t.TempDir()
	index := writeFile(t, dir, "index.json", indexJSON)
	categories := writeFile(t, dir, "categories.cue", `categories: [{
	id:    "core"
	title: "Core"
}]
`)
	output := filepath.Join(dir, "data.json")

	_, err := execute(NewAssembleCommand(testRootOptions(t, "json")),
		"--index", index, "--categories", categories, "-o", output)
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestAssembleUnknownCategoryFails(t *testing.T) {
	dir := t.TempDir()
	index := writeFile(t, dir, "index.json", indexJSON)
	categories := writeFile(t, dir, "categories.yaml", "categories:\n  - id: other\n    title: Other\n")
	output := filepath.Join(dir, "data.json")

	out, err := execute(NewAssembleCommand(testRootOptions(t, "text")),
		"--index", index, "--categories", categories, "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E114")
	assert.NoFileExists(t, output)
}

func TestAssembleMalformedIndex(t *testing.T) {
	dir := t.TempDir()
	index := writeFile(t, dir, "index.json", `{"commits": `)
	categories := writeFile(t, dir, "categories.yaml", categoriesYAML)

	out, err := execute(NewAssembleCommand(testRootOptions(t, "text")),
		"--index", index, "--categories", categories, "-o", filepath.Join(dir, "data.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E006]")
	assert.Contains(t, out, index)
}

func TestAssembleBadCategories(t *testing.T) {
	dir := t.TempDir()
	index := writeFile(t, dir, "index.json", indexJSON)
	categories := writeFile(t, dir, "categories.toml", "x = 1")

	out, err := execute(NewAssembleCommand(testRootOptions(t, "text")),
		"--index", index, "--categories", categories, "-o", filepath.Join(dir, "data.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}
