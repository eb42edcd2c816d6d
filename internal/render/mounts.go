package render

import (
	"golang.org/x/net/html"

	"github.com/roach88/featuredb/internal/ir"
)

// Element ids of the features area in a page.
const (
	NavMountID      = "features-quick-nav-links"
	SectionsMountID = "features-sections"
)

// Mounts are the elements that receive built nodes.
type Mounts struct {
	Nav      *html.Node
	Sections *html.Node
}

// FindMounts locates the features area in doc. Missing elements are nil.
func FindMounts(doc *html.Node) Mounts {
	return Mounts{
		Nav:      getElementByID(doc, NavMountID),
		Sections: getElementByID(doc, SectionsMountID),
	}
}

// Ready reports whether both mount points are present.
func (m Mounts) Ready() bool {
	return m.Nav != nil && m.Sections != nil
}

// Attach appends out's nav links and sections to the mount points. It does
// nothing and returns false unless both mount points are present.
func (m Mounts) Attach(out *Output) bool {
	if !m.Ready() || out == nil {
		return false
	}
	for _, n := range out.NavLinks {
		m.Nav.AppendChild(n)
	}
	for _, n := range out.Sections {
		m.Sections.AppendChild(n)
	}
	return true
}

// RenderPage builds sections for data and attaches them to doc. A page
// without the features area, or a nil payload, is left untouched and
// reported with false.
func (r *Renderer) RenderPage(doc *html.Node, data *ir.FeaturesData) (bool, error) {
	mounts := FindMounts(doc)
	if !mounts.Ready() {
		r.logger.Debug("features mount points not found, nothing rendered",
			"nav", mounts.Nav != nil,
			"sections", mounts.Sections != nil,
		)
		return false, nil
	}
	if data == nil {
		return false, nil
	}

	out, err := r.Build(data)
	if err != nil {
		return false, err
	}
	return mounts.Attach(out), nil
}
