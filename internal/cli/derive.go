package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/featuredb/internal/derive"
	"github.com/roach88/featuredb/internal/render"
)

// DeriveOptions holds flags for the derive command.
type DeriveOptions struct {
	*RootOptions
	Category string // only list this category
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive [data]",
		Short: "Print the derived feature listing per category",
		Long: `Derive the per-category feature listing from the runtime payload, in the
order the page shows it: the curated display order first, then by
introduction date and name.

The payload defaults to the configured data_path.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.Config.DataPath
			if len(args) == 1 {
				path = args[0]
			}
			return runDerive(opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "only list this category")

	return cmd
}

func runDerive(opts *DeriveOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	data, err := loadFeaturesData(path)
	if err != nil {
		return formatter.FailErr(ExitCommandError, err)
	}

	listings := derive.Listing(data)
	if opts.Category != "" {
		var filtered []derive.CategoryListing
		for _, l := range listings {
			if l.Category.ID == opts.Category {
				filtered = append(filtered, l)
			}
		}
		if len(filtered) == 0 {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound,
				fmt.Sprintf("category %q not found in %s", opts.Category, path), nil)
		}
		listings = filtered
	}

	if formatter.JSON() {
		out := make([]map[string]any, len(listings))
		for i, l := range listings {
			out[i] = l.CanonicalMap()
		}
		return formatter.Success(out)
	}

	w := formatter.Writer
	for i, l := range listings {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s): %d feature(s)\n", l.Category.Title, l.Category.ID, len(l.Features))
		for n, f := range l.Features {
			fmt.Fprintf(w, "  %d. %s  since %s  %s\n", n+1, f.Name, render.FormatSince(f.IntroducedOn), f.IntroducedBy)
		}
	}
	return nil
}
