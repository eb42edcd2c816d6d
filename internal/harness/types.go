package harness

import (
	"github.com/roach88/featuredb/internal/extract"
	"github.com/roach88/featuredb/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Index is the extracted index after order overrides. Nil when
	// extraction failed as expected.
	Index *ir.CommitIndex `json:"-"`

	// Listing is the derived order per category.
	Listing map[string][]ir.FeatureRecord `json:"listing"`

	// Skipped lists blocks extraction did not turn into records.
	Skipped []extract.Skip `json:"skipped"`

	// ErrorCode is the extraction error code, when extraction failed.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Listing: map[string][]ir.FeatureRecord{},
		Skipped: []extract.Skip{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
