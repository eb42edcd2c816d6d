package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/featuredb/internal/ir"
)

// ListingSnapshot captures what a scenario derived.
// All fields use canonical JSON serialization for deterministic comparison.
type ListingSnapshot struct {
	ScenarioName string
	Result       *Result
}

// toCanonicalMap converts a snapshot to a map[string]any for canonical JSON serialization.
func (s *ListingSnapshot) toCanonicalMap() map[string]any {
	listing := make(map[string]any, len(s.Result.Listing))
	for cat, records := range s.Result.Listing {
		list := make([]any, len(records))
		for i, r := range records {
			list[i] = r.CanonicalMap()
		}
		listing[cat] = list
	}

	skipped := make([]any, len(s.Result.Skipped))
	for i, sk := range s.Result.Skipped {
		skipped[i] = map[string]any{
			"section": sk.Section,
			"feature": sk.Feature,
			"reason":  string(sk.Reason),
			"detail":  sk.Detail,
		}
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"listing":       listing,
		"skipped":       skipped,
	}
	if s.Result.ErrorCode != "" {
		result["error_code"] = s.Result.ErrorCode
	}
	return result
}

// Snapshot returns the canonical JSON golden form of a scenario result.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := ListingSnapshot{ScenarioName: scenarioName, Result: result}
	data, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// RunWithGolden executes a scenario and compares the listing against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario.Name, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}

// GoldenPath returns the golden file path for a scenario file: a golden/
// directory next to it, named after the scenario file.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden writes the snapshot of result as the golden file for
// scenarioFile.
func WriteGolden(scenarioFile string, scenario *Scenario, result *Result) error {
	data, err := Snapshot(scenario.Name, result)
	if err != nil {
		return err
	}

	goldenPath := GoldenPath(scenarioFile)
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// MatchesGolden compares result against the golden file for scenarioFile.
// ok is false with a nil error when no golden file exists.
func MatchesGolden(scenarioFile string, scenario *Scenario, result *Result) (match, ok bool, err error) {
	goldenData, err := os.ReadFile(GoldenPath(scenarioFile))
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read golden file: %w", err)
	}

	current, err := Snapshot(scenario.Name, result)
	if err != nil {
		return false, true, err
	}
	return bytes.Equal(goldenData, current), true, nil
}
