package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/featuredb/internal/derive"
	"github.com/roach88/featuredb/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string                        // Assertion type for categorization
	Expected string                        // Human-readable expected outcome
	Actual   string                        // Human-readable actual outcome
	Listing  map[string][]ir.FeatureRecord // Full listing for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Listing) > 0 {
		fmt.Fprintf(&buf, "\nDerived listing:\n")
		names := derive.Names(e.Listing)
		for _, cat := range ir.SortedKeys(names) {
			fmt.Fprintf(&buf, "  %s: %v\n", cat, names[cat])
		}
	}

	return buf.String()
}

// assertListingOrder checks that a category derives to exactly the given
// names, in order.
func assertListingOrder(result *Result, a Assertion) error {
	got := derive.Names(map[string][]ir.FeatureRecord{a.Category: result.Listing[a.Category]})[a.Category]
	if slices.Equal(got, a.Names) {
		return nil
	}
	return &AssertionError{
		Type:     AssertListingOrder,
		Expected: fmt.Sprintf("%s: %v", a.Category, a.Names),
		Actual:   fmt.Sprintf("%s: %v", a.Category, got),
		Listing:  result.Listing,
	}
}

// assertRecord checks the fields of one derived record (subset match).
func assertRecord(result *Result, a Assertion) error {
	idx := slices.IndexFunc(result.Listing[a.Category], func(r ir.FeatureRecord) bool {
		return r.Name == a.Feature
	})
	if idx < 0 {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("feature %q in %s", a.Feature, a.Category),
			Actual:   "not found in listing",
			Listing:  result.Listing,
		}
	}

	rec := result.Listing[a.Category][idx]
	actual := map[string]string{
		"description":  rec.Description,
		"introducedBy": rec.IntroducedBy,
		"introducedOn": rec.IntroducedOn,
	}
	for _, key := range ir.SortedKeys(a.Expect) {
		if actual[key] != a.Expect[key] {
			return &AssertionError{
				Type:     AssertRecord,
				Expected: fmt.Sprintf("%s.%s = %q", a.Feature, key, a.Expect[key]),
				Actual:   fmt.Sprintf("%s.%s = %q", a.Feature, key, actual[key]),
			}
		}
	}
	return nil
}

// assertCount compares an observed count with the expected one.
func assertCount(kind, what string, want, got int) error {
	if want == got {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%d %s", want, what),
		Actual:   fmt.Sprintf("%d %s", got, what),
	}
}

// EvaluateAssertions checks all assertions against result and returns one
// message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertListingOrder:
			err = assertListingOrder(result, a)
		case AssertRecord:
			err = assertRecord(result, a)
		case AssertChangeCount:
			got := 0
			if result.Index != nil {
				got = len(result.Index.Commits)
			}
			err = assertCount(a.Type, "changes", *a.Count, got)
		case AssertChangeFeatures:
			got := 0
			if result.Index != nil {
				got = len(result.Index.Commits[a.Change].Features)
			}
			err = assertCount(a.Type, "features in change "+a.Change, *a.Count, got)
		case AssertSkippedCount:
			err = assertCount(a.Type, "skipped blocks", *a.Count, len(result.Skipped))
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
