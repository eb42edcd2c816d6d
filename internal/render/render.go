package render

import (
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/featuredb/internal/derive"
	"github.com/roach88/featuredb/internal/inject"
	"github.com/roach88/featuredb/internal/ir"
)

// Output holds the detached nodes built for one payload.
type Output struct {
	NavLinks []*html.Node
	Sections []*html.Node
}

// Renderer builds and attaches the features page sections.
type Renderer struct {
	logger *slog.Logger
	global string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for load fallbacks and skipped renders.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGlobal sets the window property LoadData looks for in inline scripts.
func WithGlobal(global string) Option {
	return func(r *Renderer) {
		if global != "" {
			r.global = global
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger: slog.Default(),
		global: inject.DefaultGlobal,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build derives the per-category listing and builds nav links and
// sections for it. The only failure is icon or caption markup that cannot
// be parsed.
func (r *Renderer) Build(data *ir.FeaturesData) (*Output, error) {
	out := &Output{}

	for _, cat := range data.Categories {
		if !cat.InQuickNav {
			continue
		}
		label := cat.QuickNavTitle
		if label == "" {
			label = cat.Title
		}
		a := element(atom.A, NavLinkClass, attr("href", "#"+cat.ID))
		out.NavLinks = append(out.NavLinks, withText(a, label))
	}

	for _, listing := range derive.Listing(data) {
		section, err := r.buildSection(data.CommitBaseURL, listing)
		if err != nil {
			return nil, err
		}
		out.Sections = append(out.Sections, section)
	}

	return out, nil
}

func (r *Renderer) buildSection(commitBaseURL string, listing derive.CategoryListing) (*html.Node, error) {
	cat := listing.Category
	section := element(atom.Section, sectionClass, attr("id", cat.ID))

	icon, err := buildIcon(cat)
	if err != nil {
		return nil, err
	}
	header := appendAll(element(atom.Div, headerClass),
		appendAll(element(atom.Div, iconBoxClass(cat.IconBgColor)), icon),
		withText(element(atom.H2, titleClass), cat.Title),
	)
	section.AppendChild(header)

	for _, img := range cat.Images {
		figure, err := buildFigure(img)
		if err != nil {
			return nil, err
		}
		section.AppendChild(figure)
	}

	grid := element(atom.Div, gridClass)
	for _, f := range listing.Features {
		grid.AppendChild(buildCard(commitBaseURL, f))
	}
	section.AppendChild(grid)

	return section, nil
}

func buildIcon(cat ir.CategorySpec) (*html.Node, error) {
	svg := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  atom.Svg,
		Data:      "svg",
		Namespace: "svg",
		Attr: []html.Attribute{
			attr("class", iconClass(cat.IconColor)),
			attr("viewBox", "0 0 24 24"),
		},
	}
	if cat.IconFill {
		svg.Attr = append(svg.Attr, attr("fill", "currentColor"))
	} else {
		svg.Attr = append(svg.Attr,
			attr("fill", "none"),
			attr("stroke-width", "1.5"),
			attr("stroke", "currentColor"),
		)
	}
	if err := setInner(svg, cat.IconSVG); err != nil {
		return nil, err
	}
	return svg, nil
}

func buildFigure(img ir.CategoryImage) (*html.Node, error) {
	image := element(atom.Img, ImageClass,
		attr("src", img.Src),
		attr("alt", img.Alt),
		attr("loading", "lazy"),
	)
	caption := element(atom.Figcaption, figcaptionClass)
	if err := setInner(caption, img.Caption); err != nil {
		return nil, err
	}
	return appendAll(element(atom.Figure, figureClass), image, caption), nil
}

func buildCard(commitBaseURL string, f ir.FeatureRecord) *html.Node {
	titleRow := appendAll(element(atom.Div, titleRowClass),
		withText(element(atom.H3, featureNameClass), f.Name),
		withText(element(atom.Span, DateBadgeClass), "since "+FormatSince(f.IntroducedOn)),
	)
	link := element(atom.A, CommitLinkClass,
		attr("href", commitBaseURL+f.IntroducedBy),
		attr("target", "_blank"),
		attr("rel", "noopener"),
	)
	return appendAll(element(atom.Div, CardClass),
		titleRow,
		withText(element(atom.P, descriptionClass), f.Description),
		withText(link, f.IntroducedBy),
	)
}
