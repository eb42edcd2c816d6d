package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one pipeline test case.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Markup is the rendered document fed to the extractor.
	Markup string `yaml:"markup"`

	// Extract holds extractor options. All fields are optional.
	Extract ExtractOptions `yaml:"extract,omitempty"`

	// Order replaces the extracted display order per category before
	// derivation. An empty list removes the category's order so the
	// fallback sort applies.
	Order map[string][]string `yaml:"order,omitempty"`

	// ExpectError is the extraction error code the scenario expects.
	// When set, extraction must fail with this code and assertions are
	// not evaluated.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the index and the derived listing.
	Assertions []Assertion `yaml:"assertions"`
}

// ExtractOptions mirrors extract.Options in scenario files.
type ExtractOptions struct {
	Strict          bool   `yaml:"strict,omitempty"`
	Heading         string `yaml:"heading,omitempty"`
	CommitSegment   string `yaml:"commit_segment,omitempty"`
	RequireSections bool   `yaml:"require_sections,omitempty"`
}

// Assertion validates one aspect of a scenario result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "listing_order": derived names of Category equal Names
	// - "record": Feature in Category has the Expect field values
	// - "change_count": the index holds exactly Count changes
	// - "change_features": Change owns exactly Count features
	// - "skipped_count": exactly Count blocks were skipped
	Type string `yaml:"type"`

	// Category is the category id (listing_order, record).
	Category string `yaml:"category,omitempty"`

	// Names is the expected derived order (listing_order).
	Names []string `yaml:"names,omitempty"`

	// Feature is the feature name (record).
	Feature string `yaml:"feature,omitempty"`

	// Change is the change id (change_features).
	Change string `yaml:"change,omitempty"`

	// Expect contains expected record fields (record). Keys are
	// description, introducedBy, and introducedOn. Subset match.
	Expect map[string]string `yaml:"expect,omitempty"`

	// Count is the expected number (change_count, change_features,
	// skipped_count).
	Count *int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertListingOrder   = "listing_order"
	AssertRecord         = "record"
	AssertChangeCount    = "change_count"
	AssertChangeFeatures = "change_features"
	AssertSkippedCount   = "skipped_count"
)

var recordFields = map[string]bool{
	"description":  true,
	"introducedBy": true,
	"introducedOn": true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Markup == "" {
		return fmt.Errorf("markup is required")
	}

	if s.ExpectError == "" && len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required unless expect_error is set")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertListingOrder:
		if a.Category == "" {
			return fmt.Errorf("assertions[%d]: category is required for listing_order", index)
		}
		if a.Names == nil {
			return fmt.Errorf("assertions[%d]: names list is required for listing_order (use [] for empty)", index)
		}
	case AssertRecord:
		if a.Category == "" || a.Feature == "" {
			return fmt.Errorf("assertions[%d]: category and feature are required for record", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for record", index)
		}
		for key := range a.Expect {
			if !recordFields[key] {
				return fmt.Errorf("assertions[%d]: unknown record field %q", index, key)
			}
		}
	case AssertChangeCount, AssertSkippedCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for %s", index, a.Type)
		}
	case AssertChangeFeatures:
		if a.Change == "" {
			return fmt.Errorf("assertions[%d]: change is required for change_features", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for change_features", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
