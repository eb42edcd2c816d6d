package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/featuredb/internal/inject"
)

// InjectOptions holds flags for the inject command.
type InjectOptions struct {
	*RootOptions
	Page string
	Data string
}

// InjectResult reports the injection outcome.
type InjectResult struct {
	Page    string `json:"page"`
	Data    string `json:"data"`
	Outcome string `json:"outcome"`
}

// NewInjectCommand creates the inject command.
func NewInjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InjectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inline the features payload into the built page",
		Long: `Replace the data placeholder in the built page with a script that assigns
the payload to the page global, so the page renders without fetching
features-data.json.

A page without the placeholder is left unchanged and the command still
succeeds. A payload that is not valid JSON is fatal and the page is not
modified.

Exit codes:
  0 - Injected, or skipped because the page has no placeholder
  2 - Page or data missing, or data malformed`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Page, "page", "", "built page path (default from config)")
	cmd.Flags().StringVar(&opts.Data, "data", "", "payload path (default from config)")

	return cmd
}

func runInject(opts *InjectOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	page := firstNonEmpty(opts.Page, opts.Config.PagePath)
	data := firstNonEmpty(opts.Data, opts.Config.DataPath)

	in := inject.New(
		inject.WithPlaceholder(opts.Config.Placeholder),
		inject.WithGlobal(opts.Config.GlobalName),
		inject.WithLogger(opts.Logger()),
	)

	outcome, err := in.InjectFile(page, data)
	if err != nil {
		return formatter.FailErr(ExitCommandError, err)
	}

	result := InjectResult{Page: page, Data: data, Outcome: outcome.String()}
	if formatter.JSON() {
		return formatter.Success(result)
	}
	switch outcome {
	case inject.Injected:
		fmt.Fprintf(formatter.Writer, "✓ Injected %s into %s\n", data, page)
	default:
		fmt.Fprintf(formatter.Writer, "- Placeholder not found in %s, page unchanged\n", page)
	}
	return nil
}
