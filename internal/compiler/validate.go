package compiler

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/featuredb/internal/ir"
)

// Validation error codes (E100-E199)
const (
	// CategorySpec errors (E101-E109)
	ErrCategoryIDInvalid    = "E101" // id missing or not usable as a fragment
	ErrCategoryTitleEmpty   = "E102" // title is required
	ErrImageSrcEmpty        = "E103" // image src is required
	ErrDuplicateCategoryID  = "E104" // two categories share an id
	ErrCategoryFieldInvalid = "E105" // any other struct-tag violation

	// Data cross-reference errors (E110-E119)
	ErrStaleOrderName       = "E110" // order lists a name no change introduces
	ErrOrderWrongCategory   = "E111" // order lists a name under another category
	ErrNameReused           = "E112" // one name appears in several categories
	ErrNonISODate           = "E113" // change date is not YYYY-MM-DD
	ErrUnknownCategory      = "E114" // feature category has no CategorySpec
	ErrOrderUnknownCategory = "E115" // order key has no CategorySpec
)

// Severity grades a validation finding. Errors break the rendered page;
// warnings are tolerated by derivation and rendering.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError represents a schema or cross-reference validation error.
type ValidationError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// HasErrors reports whether any finding has error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCategories checks every spec's struct tags and id uniqueness.
// Returns all errors found (does not fail-fast).
func ValidateCategories(specs []ir.CategorySpec) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(specs))

	for i, spec := range specs {
		if err := structValidator.Struct(spec); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("categories[%d]", i),
					Message:  err.Error(),
					Code:     ErrCategoryFieldInvalid,
					Severity: SeverityError,
				})
				continue
			}
			for _, fe := range fieldErrs {
				errs = append(errs, fromFieldError(i, fe))
			}
		}

		if spec.ID == "" {
			continue
		}
		if first, dup := seen[spec.ID]; dup {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("categories[%d].id", i),
				Message:  fmt.Sprintf("duplicate category id %q (first at categories[%d])", spec.ID, first),
				Code:     ErrDuplicateCategoryID,
				Severity: SeverityError,
			})
			continue
		}
		seen[spec.ID] = i
	}

	return errs
}

func fromFieldError(i int, fe validator.FieldError) ValidationError {
	// Namespace is "CategorySpec.images[0].src"; drop the type name.
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	field := fmt.Sprintf("categories[%d].%s", i, path)

	code := ErrCategoryFieldInvalid
	msg := fmt.Sprintf("failed %q constraint", fe.Tag())
	switch fe.Field() {
	case "id":
		code = ErrCategoryIDInvalid
		if fe.Tag() == "required" {
			msg = "id is required"
		} else {
			msg = "id must not contain spaces or '#'"
		}
	case "title":
		code = ErrCategoryTitleEmpty
		msg = "title is required"
	case "src":
		code = ErrImageSrcEmpty
		msg = "image src is required"
	}

	return ValidationError{Field: field, Message: msg, Code: code, Severity: SeverityError}
}

// ValidateData checks a full payload: its category specs plus every
// cross-reference between commits, display order, and categories.
// Findings are returned in a stable order.
func ValidateData(data *ir.FeaturesData) []ValidationError {
	errs := ValidateCategories(data.Categories)

	specIDs := make(map[string]bool, len(data.Categories))
	for _, spec := range data.Categories {
		specIDs[spec.ID] = true
	}

	// name -> set of categories it is introduced under
	nameCats := map[string]map[string]bool{}
	missing := map[string]bool{}

	for _, id := range ir.SortedKeys(data.Commits) {
		entry := data.Commits[id]
		if _, err := time.Parse(time.DateOnly, entry.Date); err != nil {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("commits.%s.date", id),
				Message:  fmt.Sprintf("date %q is not YYYY-MM-DD; it sorts and displays as raw text", entry.Date),
				Code:     ErrNonISODate,
				Severity: SeverityWarning,
			})
		}
		for _, name := range ir.SortedKeys(entry.Features) {
			cat := entry.Features[name].Category
			if nameCats[name] == nil {
				nameCats[name] = map[string]bool{}
			}
			nameCats[name][cat] = true
			if !specIDs[cat] {
				missing[cat] = true
			}
		}
	}

	for _, cat := range ir.SortedKeys(missing) {
		errs = append(errs, ValidationError{
			Field:    "categories",
			Message:  fmt.Sprintf("features use category %q but no category spec defines it; they will not be shown", cat),
			Code:     ErrUnknownCategory,
			Severity: SeverityError,
		})
	}

	for _, name := range ir.SortedKeys(nameCats) {
		if len(nameCats[name]) > 1 {
			cats := ir.SortedKeys(nameCats[name])
			errs = append(errs, ValidationError{
				Field:    "commits",
				Message:  fmt.Sprintf("feature name %q is used in categories %s", name, strings.Join(cats, ", ")),
				Code:     ErrNameReused,
				Severity: SeverityWarning,
			})
		}
	}

	for _, cat := range ir.SortedKeys(data.CategoryFeatureOrder) {
		field := "categoryFeatureOrder." + cat
		if !specIDs[cat] {
			errs = append(errs, ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("order given for category %q which has no category spec", cat),
				Code:     ErrOrderUnknownCategory,
				Severity: SeverityWarning,
			})
		}
		for i, name := range data.CategoryFeatureOrder[cat] {
			cats, known := nameCats[name]
			switch {
			case !known:
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("%s[%d]", field, i),
					Message:  fmt.Sprintf("%q is not introduced by any change", name),
					Code:     ErrStaleOrderName,
					Severity: SeverityWarning,
				})
			case !cats[cat]:
				errs = append(errs, ValidationError{
					Field: fmt.Sprintf("%s[%d]", field, i),
					Message: fmt.Sprintf("%q belongs to %s, not %q",
						name, strings.Join(ir.SortedKeys(cats), ", "), cat),
					Code:     ErrOrderWrongCategory,
					Severity: SeverityWarning,
				})
			}
		}
	}

	return errs
}

// Codes returns the distinct codes in errs, sorted.
func Codes(errs []ValidationError) []string {
	var codes []string
	for _, e := range errs {
		if !slices.Contains(codes, e.Code) {
			codes = append(codes, e.Code)
		}
	}
	slices.Sort(codes)
	return codes
}
