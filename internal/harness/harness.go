package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/featuredb/internal/derive"
	"github.com/roach88/featuredb/internal/extract"
	"github.com/roach88/featuredb/internal/ir"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Extract the inline markup with the scenario's options
// 2. Apply order overrides
// 3. Derive the per-category listing
// 4. Evaluate assertions
//
// An unexpected extraction failure is returned as an error. A failure that
// matches ExpectError is a pass.
func Run(scenario *Scenario) (*Result, error) {
	opts := extract.Options{
		Mode:            ir.ModeFor(scenario.Extract.Strict),
		Heading:         scenario.Extract.Heading,
		CommitSegment:   scenario.Extract.CommitSegment,
		RequireSections: scenario.Extract.RequireSections,
	}

	result := NewResult()

	res, err := extract.Extract(strings.NewReader(scenario.Markup), opts)
	if err != nil {
		var parseErr *extract.ParseError
		if scenario.ExpectError == "" || !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		result.ErrorCode = parseErr.Code
		if parseErr.Code != scenario.ExpectError {
			result.AddError(fmt.Sprintf("expected error %s, got %s: %v", scenario.ExpectError, parseErr.Code, err))
		}
		return result, nil
	}
	if scenario.ExpectError != "" {
		result.AddError(fmt.Sprintf("expected error %s, extraction succeeded", scenario.ExpectError))
		return result, nil
	}

	for cat, names := range scenario.Order {
		if len(names) == 0 {
			delete(res.Index.CategoryFeatureOrder, cat)
			continue
		}
		res.Index.CategoryFeatureOrder[cat] = names
	}

	result.Index = res.Index
	result.Listing = derive.ByCategory(res.Index)
	if res.Skipped != nil {
		result.Skipped = res.Skipped
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}
