package inject

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/featuredb/internal/ir"
)

// Defaults for the placeholder marker and the window global.
const (
	DefaultPlaceholder = "<!-- FEATURES_DATA -->"
	DefaultGlobal      = "__FEATURES_DATA__"
)

// Outcome reports what an injection did to the page.
type Outcome int

const (
	// Injected means the placeholder was replaced and the page rewritten.
	Injected Outcome = iota
	// Skipped means the page has no placeholder and was not touched.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Injected:
		return "injected"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Injector embeds a features payload into built pages.
type Injector struct {
	placeholder string
	global      string
	logger      *slog.Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithPlaceholder sets the marker that is replaced by the script.
func WithPlaceholder(placeholder string) Option {
	return func(in *Injector) {
		if placeholder != "" {
			in.placeholder = placeholder
		}
	}
}

// WithGlobal sets the window property the payload is assigned to.
func WithGlobal(global string) Option {
	return func(in *Injector) {
		if global != "" {
			in.global = global
		}
	}
}

// WithLogger sets the logger used for skip warnings and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Injector) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// New creates an Injector with the default placeholder and global.
func New(opts ...Option) *Injector {
	in := &Injector{
		placeholder: DefaultPlaceholder,
		global:      DefaultGlobal,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Placeholder returns the marker this injector replaces.
func (in *Injector) Placeholder() string {
	return in.placeholder
}

// Global returns the window property this injector assigns.
func (in *Injector) Global() string {
	return in.global
}

// Script validates data as a FeaturesData payload and returns the inline
// script element that assigns it to the window global. The JSON is
// compacted and HTML-escaped so the script body can never contain
// "</script>".
func (in *Injector) Script(data []byte) (string, error) {
	if _, err := ir.DecodeFeaturesData(data, ir.Strict); err != nil {
		return "", err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return "", &ir.DecodeError{Message: "compacting payload", Err: err}
	}
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, compact.Bytes())

	return "<script>window." + in.global + "=" + escaped.String() + ";</script>", nil
}

// Inject returns page with its first placeholder replaced by the payload
// script. A page without the placeholder is returned unchanged with
// Skipped. Invalid data is an error; page is then returned unchanged with
// Skipped as well.
func (in *Injector) Inject(page, data []byte) ([]byte, Outcome, error) {
	if !bytes.Contains(page, []byte(in.placeholder)) {
		return page, Skipped, nil
	}

	script, err := in.Script(data)
	if err != nil {
		return page, Skipped, err
	}
	return bytes.Replace(page, []byte(in.placeholder), []byte(script), 1), Injected, nil
}

// InjectFile injects the payload at dataPath into the page at pagePath,
// rewriting the page in place with its existing permissions. The data file
// is only read when the page has a placeholder.
func (in *Injector) InjectFile(pagePath, dataPath string) (Outcome, error) {
	info, err := os.Stat(pagePath)
	if err != nil {
		return Skipped, fmt.Errorf("reading page: %w", err)
	}
	page, err := os.ReadFile(pagePath)
	if err != nil {
		return Skipped, fmt.Errorf("reading page: %w", err)
	}

	if !bytes.Contains(page, []byte(in.placeholder)) {
		in.logger.Warn("placeholder not found, page left unchanged",
			"page", pagePath,
			"placeholder", in.placeholder,
		)
		return Skipped, nil
	}

	data, err := os.ReadFile(dataPath)
	if err != nil {
		return Skipped, fmt.Errorf("reading data: %w", err)
	}

	out, outcome, err := in.Inject(page, data)
	if err != nil {
		var decodeErr *ir.DecodeError
		if errors.As(err, &decodeErr) && decodeErr.Source == "" {
			decodeErr.Source = dataPath
		}
		return Skipped, err
	}

	if err := os.WriteFile(pagePath, out, info.Mode().Perm()); err != nil {
		return Skipped, fmt.Errorf("writing page: %w", err)
	}

	in.logger.Info("features data injected",
		"page", pagePath,
		"data", dataPath,
		"global", in.global,
	)
	return outcome, nil
}
