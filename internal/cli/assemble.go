package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/featuredb/internal/compiler"
	"github.com/roach88/featuredb/internal/ir"
)

// AssembleOptions holds flags for the assemble command.
type AssembleOptions struct {
	*RootOptions
	Index         string
	Categories    string
	CommitBaseURL string
	Output        string
}

// AssembleResult summarizes the written payload.
type AssembleResult struct {
	Output     string `json:"output"`
	Categories int    `json:"categories"`
	Changes    int    `json:"changes"`
	Features   int    `json:"features"`
	Warnings   int    `json:"warnings"`
}

// NewAssembleCommand creates the assemble command.
func NewAssembleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AssembleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Merge index and categories into the runtime payload",
		Long: `Combine the extracted commit index, the compiled category specs, and the
commit base URL into features-data.json, the payload the features page
renders from.

Categories may be authored in CUE, YAML, or JSON. Category errors stop the
assembly; cross-reference warnings are logged.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Index, "index", "", "index JSON path (default from config)")
	cmd.Flags().StringVar(&opts.Categories, "categories", "", "categories file (default from config)")
	cmd.Flags().StringVar(&opts.CommitBaseURL, "commit-base-url", "", "base URL for change links (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "payload output path (default from config)")

	return cmd
}

func runAssemble(opts *AssembleOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.Logger()

	indexPath := firstNonEmpty(opts.Index, opts.Config.IndexPath)
	categoriesPath := firstNonEmpty(opts.Categories, opts.Config.CategoriesPath)
	baseURL := firstNonEmpty(opts.CommitBaseURL, opts.Config.CommitBaseURL)
	output := firstNonEmpty(opts.Output, opts.Config.DataPath)

	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return formatter.FailErr(ExitCommandError, fmt.Errorf("reading index: %w", err))
	}
	index, err := ir.DecodeIndex(raw, ir.Strict)
	if err != nil {
		var decodeErr *ir.DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.Source = indexPath
		}
		return formatter.FailErr(ExitCommandError, err)
	}

	specs, err := compiler.LoadCategories(categoriesPath)
	if err != nil {
		code := CodeFor(err)
		if code == ErrCodeGeneric {
			code = ErrCodeLoadFailed
		}
		return formatter.Fail(ExitCommandError, code, err.Error(), nil)
	}

	data := &ir.FeaturesData{
		CommitBaseURL:        baseURL,
		Categories:           specs,
		Commits:              index.Commits,
		CategoryFeatureOrder: index.CategoryFeatureOrder,
	}

	findings := compiler.ValidateData(data)
	if compiler.HasErrors(findings) {
		return outputValidationErrors(formatter, findings, ExitFailure)
	}
	for _, f := range findings {
		logger.Warn("features data", "code", f.Code, "field", f.Field, "message", f.Message)
	}

	payload, err := ir.MarshalFeaturesData(data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("encoding payload: %v", err), nil)
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("creating output directory: %v", err), nil)
		}
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing payload: %v", err), nil)
	}

	result := AssembleResult{
		Output:     output,
		Categories: len(specs),
		Changes:    len(data.Commits),
		Features:   index.FeatureCount(),
		Warnings:   len(findings),
	}
	logger.Info("wrote features data", "path", output, "categories", result.Categories, "changes", result.Changes)

	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Assembled %d feature(s), %d change(s), %d categor(ies)\n",
		result.Features, result.Changes, result.Categories)
	if result.Warnings > 0 {
		fmt.Fprintf(formatter.Writer, "  %d warning(s), run validate for details\n", result.Warnings)
	}
	fmt.Fprintf(formatter.Writer, "Wrote features data to %s\n", output)
	return nil
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
