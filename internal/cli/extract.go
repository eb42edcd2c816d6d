package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/featuredb/internal/extract"
	"github.com/roach88/featuredb/internal/ir"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Output        string // output file path; stdout when empty
	Strict        bool
	Heading       string
	CommitSegment string
}

// ExtractResult summarizes one extraction.
type ExtractResult struct {
	Source      string          `json:"source"`
	Output      string          `json:"output,omitempty"`
	Changes     int             `json:"changes"`
	Features    int             `json:"features"`
	Sections    []string        `json:"sections"`
	Skipped     []extract.Skip  `json:"skipped"`
	Fingerprint string          `json:"fingerprint"`
	Index       *ir.CommitIndex `json:"index,omitempty"`
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract [markup]",
		Short: "Extract the features page into a commit index",
		Long: `Scan the features markup for feature blocks (heading, since-date,
description, change link) and write the commit-keyed index as JSON.

The markup defaults to the configured markup_path. Without --output the
index is written to stdout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := opts.Config.MarkupPath
			if len(args) == 1 {
				source = args[0]
			}
			return runExtract(opts, source, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on incomplete or duplicate blocks")
	cmd.Flags().StringVar(&opts.Heading, "heading", "", "feature heading tag (default from config)")
	cmd.Flags().StringVar(&opts.CommitSegment, "commit-segment", "", "URL segment before the change id (default from config)")

	return cmd
}

func runExtract(opts *ExtractOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.Logger()

	if source == "" {
		source = extract.DefaultMarkupPath
	}

	extractOpts := opts.Config.ExtractOptions()
	if opts.Strict {
		extractOpts.Mode = ir.Strict
	}
	if opts.Heading != "" {
		extractOpts.Heading = opts.Heading
	}
	if opts.CommitSegment != "" {
		extractOpts.CommitSegment = opts.CommitSegment
	}

	res, err := extract.ExtractFile(source, extractOpts)
	if err != nil {
		return formatter.FailErr(ExitCommandError, err)
	}
	for _, sk := range res.Skipped {
		logger.Warn("skipped feature block",
			"section", sk.Section, "feature", sk.Feature, "reason", sk.Reason, "detail", sk.Detail)
	}

	data, err := ir.MarshalIndex(res.Index)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("encoding index: %v", err), nil)
	}
	fp, err := ir.IndexFingerprint(res.Index)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("fingerprinting index: %v", err), nil)
	}

	result := ExtractResult{
		Source:      source,
		Output:      opts.Output,
		Changes:     len(res.Index.Commits),
		Features:    res.Index.FeatureCount(),
		Sections:    res.Sections,
		Skipped:     res.Skipped,
		Fingerprint: fp,
	}
	if result.Sections == nil {
		result.Sections = []string{}
	}
	if result.Skipped == nil {
		result.Skipped = []extract.Skip{}
	}

	if opts.Output == "" {
		if formatter.JSON() {
			result.Index = res.Index
			return formatter.Success(result)
		}
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing index: %v", err), nil)
	}
	logger.Info("wrote index", "path", opts.Output, "changes", result.Changes, "features", result.Features)

	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Extracted %d feature(s) in %d change(s) from %s\n",
		result.Features, result.Changes, source)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(formatter.Writer, "  %d block(s) skipped\n", len(result.Skipped))
	}
	fmt.Fprintf(formatter.Writer, "Wrote index %s to %s\n", ir.ShortFingerprint(fp), opts.Output)
	return nil
}
