package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/featuredb/internal/extract"
)

const twoCoreFeatures = `<section id="core">
<h3>Fast Search</h3><span>since Jan 10, 2026</span><p>Find anything.</p><a href="/commit/abc123">abc123</a>
<h3>Dark Mode</h3><span>since Jan 2, 2026</span><p>Dark theme.</p><a href="/commit/def456">def456</a>
</section>`

func intp(n int) *int { return &n }

func TestRunPasses(t *testing.T) {
	result, err := Run(&Scenario{
		Name:   "pass",
		Markup: twoCoreFeatures,
		Order:  map[string][]string{"core": {}},
		Assertions: []Assertion{
			{Type: AssertListingOrder, Category: "core", Names: []string{"Dark Mode", "Fast Search"}},
			{Type: AssertChangeCount, Count: intp(2)},
			{Type: AssertSkippedCount, Count: intp(0)},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "%v", result.Errors)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Index)
	assert.NotContains(t, result.Index.CategoryFeatureOrder, "core")
}

func TestRunReportsFailures(t *testing.T) {
	result, err := Run(&Scenario{
		Name:   "fail",
		Markup: twoCoreFeatures,
		Assertions: []Assertion{
			{Type: AssertListingOrder, Category: "core", Names: []string{"Dark Mode", "Fast Search"}},
			{Type: AssertChangeFeatures, Change: "abc123", Count: intp(3)},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "listing_order")
	assert.Contains(t, result.Errors[0], "[Fast Search Dark Mode]")
	assert.Contains(t, result.Errors[1], "3 features in change abc123")
}

func TestRunOrderOverride(t *testing.T) {
	result, err := Run(&Scenario{
		Name:   "override",
		Markup: twoCoreFeatures,
		Order:  map[string][]string{"core": {"Dark Mode"}},
		Assertions: []Assertion{
			{Type: AssertListingOrder, Category: "core", Names: []string{"Dark Mode", "Fast Search"}},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "%v", result.Errors)
}

func TestRunExpectedError(t *testing.T) {
	incomplete := `<section id="s"><h3>A</h3><p>no date</p></section>`

	result, err := Run(&Scenario{
		Name:        "expected",
		Markup:      incomplete,
		Extract:     ExtractOptions{Strict: true},
		ExpectError: extract.ErrCodeIncomplete,
	})
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, extract.ErrCodeIncomplete, result.ErrorCode)
	assert.Nil(t, result.Index)

	result, err = Run(&Scenario{
		Name:        "wrong code",
		Markup:      incomplete,
		Extract:     ExtractOptions{Strict: true},
		ExpectError: extract.ErrCodeDuplicate,
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)

	result, err = Run(&Scenario{
		Name:        "no error",
		Markup:      incomplete,
		ExpectError: extract.ErrCodeIncomplete,
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "extraction succeeded")
}

func TestRunUnexpectedError(t *testing.T) {
	_, err := Run(&Scenario{
		Name:    "unexpected",
		Markup:  `<p>nothing</p>`,
		Extract: ExtractOptions{RequireSections: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), extract.ErrCodeNoSections)
}

func TestRunCustomHeadingAndSegment(t *testing.T) {
	result, err := Run(&Scenario{
		Name:    "gitlab",
		Markup:  `<section id="s"><h4>A</h4><span>since May 5, 2026</span><p>d</p><a href="/-/commit/ab12">x</a></section>`,
		Extract: ExtractOptions{Heading: "h4", CommitSegment: "/-/commit/"},
		Assertions: []Assertion{
			{Type: AssertRecord, Category: "s", Feature: "A", Expect: map[string]string{"introducedBy": "ab12", "introducedOn": "2026-05-05"}},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "%v", result.Errors)
}
