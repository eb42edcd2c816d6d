package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"github.com/roach88/featuredb/internal/inject"
	"github.com/roach88/featuredb/internal/ir"
)

// DefaultDataFile is the fallback payload served next to the page.
const DefaultDataFile = "features-data.json"

// LoadData returns the page's payload. The inline window global wins; when
// the page has none, name is read from fsys. A fallback file that cannot be
// read is logged and reported as (nil, nil) so the caller skips rendering.
// A payload that is present but does not decode is always an error.
func (r *Renderer) LoadData(doc *html.Node, fsys fs.FS, name string) (*ir.FeaturesData, error) {
	data, ok, err := inject.ExtractInlineData(doc, r.global)
	if err != nil {
		return nil, fmt.Errorf("inline features data: %w", err)
	}
	if ok {
		r.logger.Debug("using inline features data", "global", r.global)
		return data, nil
	}

	if fsys == nil {
		r.logger.Warn("no inline features data and no fallback source")
		return nil, nil
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		r.logger.Warn("features data unavailable, skipping render", "file", name, "error", err)
		return nil, nil
	}

	data, err = ir.DecodeFeaturesData(raw, ir.Strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.logger.Debug("using fallback features data", "file", name)
	return data, nil
}

// RenderFile renders the page at pagePath and writes the result to
// outPath, which may equal pagePath. The fallback payload is dataFile
// relative to the page's directory. It returns false, without writing,
// when nothing was rendered.
func (r *Renderer) RenderFile(pagePath, outPath, dataFile string) (bool, error) {
	src, err := os.ReadFile(pagePath)
	if err != nil {
		return false, fmt.Errorf("reading page: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return false, fmt.Errorf("parsing page: %w", err)
	}

	if !FindMounts(doc).Ready() {
		r.logger.Info("page has no features area, skipping", "page", pagePath)
		return false, nil
	}

	if dataFile == "" {
		dataFile = DefaultDataFile
	}
	data, err := r.LoadData(doc, os.DirFS(filepath.Dir(pagePath)), dataFile)
	if err != nil {
		return false, err
	}

	rendered, err := r.RenderPage(doc, data)
	if err != nil || !rendered {
		return false, err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return false, fmt.Errorf("rendering page: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("writing page: %w", err)
	}

	r.logger.Info("features page rendered", "page", pagePath, "out", outPath, "categories", len(data.Categories))
	return true, nil
}
