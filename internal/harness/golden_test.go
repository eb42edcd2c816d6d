package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCanonical(t *testing.T) {
	r := NewResult()
	data, err := Snapshot("empty", r)
	require.NoError(t, err)
	assert.Equal(t, `{"listing":{},"scenario_name":"empty","skipped":[]}`, string(data))

	r.ErrorCode = "E203"
	data, err = Snapshot("failed", r)
	require.NoError(t, err)
	assert.Equal(t, `{"error_code":"E203","listing":{},"scenario_name":"failed","skipped":[]}`, string(data))
}

func TestRunWithGolden_CoreFallback(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "core_fallback_order.yaml"))
	require.NoError(t, err)

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "%v", result.Errors)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "core.golden"),
		GoldenPath(filepath.Join("scenarios", "core.yaml")))
}

func TestWriteAndMatchGolden(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := filepath.Join(dir, "core.yaml")

	s := &Scenario{
		Name:       "core",
		Markup:     twoCoreFeatures,
		Assertions: []Assertion{{Type: AssertChangeCount, Count: intp(2)}},
	}
	result, err := Run(s)
	require.NoError(t, err)

	_, ok, err := MatchesGolden(scenarioFile, s, result)
	require.NoError(t, err)
	assert.False(t, ok, "no golden file yet")

	require.NoError(t, WriteGolden(scenarioFile, s, result))
	assert.FileExists(t, GoldenPath(scenarioFile))

	match, ok, err := MatchesGolden(scenarioFile, s, result)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, match)

	require.NoError(t, os.WriteFile(GoldenPath(scenarioFile), []byte(`{}`), 0o644))
	match, ok, err = MatchesGolden(scenarioFile, s, result)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, match)
}
