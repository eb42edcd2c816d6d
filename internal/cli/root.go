package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/featuredb/internal/config"
	"github.com/roach88/featuredb/internal/ir"
)

// RootOptions holds global flags and the state every command shares.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is loaded before any subcommand runs.
	Config config.Config

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Logger returns the command logger. Without one, logs are discarded.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// SetLogger replaces the command logger.
func (o *RootOptions) SetLogger(logger *slog.Logger) {
	o.logger = logger
}

// NewRootCommand creates the root command for the featuredb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "featuredb",
		Short: "featuredb - commit-centric feature database",
		Long: `Extract a features page into a commit-keyed index, assemble the runtime
payload, and render or inject it into the built site.`,
		Version:      ir.ToolVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: %s\n", ErrCodeConfig, msg)
				return NewExitError(ExitCommandError, msg)
			}

			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, used, err := loadConfig(opts.ConfigFile)
			if err != nil {
				return newFormatter(opts, cmd).Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
			}
			opts.Config = cfg
			if used != "" {
				opts.logger.Debug("loaded config", "file", used)
			}
			return nil
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("featuredb {{.Version}} (data schema %s)\n", ir.SchemaVersion))

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default .featuredb.yaml)")

	cmd.AddCommand(NewExtractCommand(opts))
	cmd.AddCommand(NewAssembleCommand(opts))
	cmd.AddCommand(NewDeriveCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewInjectCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// loadConfig reads .featuredb.yaml from the working directory, or cfgFile
// when set, overlaid with FEATUREDB_* variables.
func loadConfig(cfgFile string) (config.Config, string, error) {
	v := viper.New()
	if err := config.Init(v, cfgFile, "."); err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}
