package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/featuredb/internal/compiler"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict     bool   // warnings fail the command too
	Categories string // validate these category specs instead of the payload's
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   int                        `json:"errors"`
	Warnings int                        `json:"warnings"`
	Findings []compiler.ValidationError `json:"findings"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [data]",
		Short: "Check the features payload for broken references",
		Long: `Check the runtime payload for problems the page would hide silently:
stale or misplaced display-order names, names reused across categories,
non-ISO dates, features in categories without a spec, and invalid
category specs.

Exit codes:
  0 - No errors (warnings allowed unless --strict)
  1 - Errors found, or any finding with --strict
  2 - Command error (missing or malformed payload)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.Config.DataPath
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(opts, path, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on warnings too")
	cmd.Flags().StringVar(&opts.Categories, "categories", "", "categories file to check in place of the payload's")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	data, err := loadFeaturesData(path)
	if err != nil {
		return formatter.FailErr(ExitCommandError, err)
	}

	if opts.Categories != "" {
		specs, err := compiler.LoadCategories(opts.Categories)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err.Error(), nil)
		}
		data.Categories = specs
	}

	findings := compiler.ValidateData(data)
	failed := compiler.HasErrors(findings) || (opts.Strict && len(findings) > 0)
	if failed {
		return outputValidationErrors(formatter, findings, ExitFailure)
	}
	return outputValidateSuccess(formatter, findings)
}

func summarize(findings []compiler.ValidationError) ValidationResult {
	result := ValidationResult{Findings: findings}
	if result.Findings == nil {
		result.Findings = []compiler.ValidationError{}
	}
	for _, f := range findings {
		if f.Severity == compiler.SeverityError {
			result.Errors++
		} else {
			result.Warnings++
		}
	}
	return result
}

// outputValidateSuccess outputs a passing validation, listing any warnings.
func outputValidateSuccess(formatter *OutputFormatter, findings []compiler.ValidationError) error {
	result := summarize(findings)
	result.Valid = true

	if formatter.JSON() {
		return formatter.Success(result)
	}

	if result.Warnings == 0 {
		fmt.Fprintln(formatter.Writer, "✓ Features data valid")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ Features data valid (%d warning(s))\n\n", result.Warnings)
	writeFindings(formatter, findings)
	return nil
}

// outputValidationErrors outputs all findings and returns an ExitError.
func outputValidationErrors(formatter *OutputFormatter, findings []compiler.ValidationError, exitCode int) error {
	result := summarize(findings)
	message := fmt.Sprintf("validation failed with %d error(s), %d warning(s)", result.Errors, result.Warnings)

	if formatter.JSON() {
		first := findings[0]
		for _, f := range findings {
			if f.Severity == compiler.SeverityError {
				first = f
				break
			}
		}
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
		}); err != nil {
			return err
		}
		return NewExitError(exitCode, message)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	writeFindings(formatter, findings)
	return NewExitError(exitCode, message)
}

func writeFindings(formatter *OutputFormatter, findings []compiler.ValidationError) {
	for _, f := range findings {
		fmt.Fprintf(formatter.Writer, "  %s %-7s %s: %s\n", f.Code, f.Severity, f.Field, f.Message)
	}
}
