package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/featuredb/internal/render"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Output   string // output page; the input page is rewritten when empty
	DataFile string // fallback payload, relative to the page directory
}

// RenderResult reports what the render command did.
type RenderResult struct {
	Page     string `json:"page"`
	Output   string `json:"output"`
	Rendered bool   `json:"rendered"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render [page]",
		Short: "Render feature sections into a built page",
		Long: `Build the quick-nav links and category sections and attach them to the
page's mount points (#features-quick-nav-links, #features-sections).

Data comes from the page's inline global when present, otherwise from
features-data.json next to the page. Pages without mount points, or
without data, are left unchanged.

The page defaults to the configured page_path.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := opts.Config.PagePath
			if len(args) == 1 {
				page = args[0]
			}
			return runRender(opts, page, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default: rewrite the page)")
	cmd.Flags().StringVar(&opts.DataFile, "data", render.DefaultDataFile, "fallback data file, relative to the page")

	return cmd
}

func runRender(opts *RenderOptions, page string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	out := firstNonEmpty(opts.Output, page)
	r := render.New(
		render.WithLogger(opts.Logger()),
		render.WithGlobal(opts.Config.GlobalName),
	)

	rendered, err := r.RenderFile(page, out, opts.DataFile)
	if err != nil {
		return formatter.FailErr(ExitCommandError, err)
	}

	result := RenderResult{Page: page, Output: out, Rendered: rendered}
	if formatter.JSON() {
		return formatter.Success(result)
	}
	if rendered {
		fmt.Fprintf(formatter.Writer, "✓ Rendered features into %s\n", out)
	} else {
		fmt.Fprintf(formatter.Writer, "- Nothing to render in %s\n", page)
	}
	return nil
}
