package inject

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/featuredb/internal/ir"
)

// ExtractInline returns the JSON assigned to window.<global> by an inline
// script in doc, or false if no such script exists.
func ExtractInline(doc *html.Node, global string) ([]byte, bool) {
	prefix := "window." + global + "="

	var found []byte
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && !hasAttr(n, "src") {
			body := strings.TrimSpace(scriptText(n))
			if rest, ok := strings.CutPrefix(body, prefix); ok {
				found = []byte(strings.TrimSpace(strings.TrimSuffix(rest, ";")))
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	if doc == nil || !walk(doc) {
		return nil, false
	}
	return found, true
}

// ExtractInlineData decodes the inline payload of doc. ok is false when the
// page carries no payload; a payload that does not decode is an error.
func ExtractInlineData(doc *html.Node, global string) (data *ir.FeaturesData, ok bool, err error) {
	raw, ok := ExtractInline(doc, global)
	if !ok {
		return nil, false, nil
	}
	data, err = ir.DecodeFeaturesData(raw, ir.Strict)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

func scriptText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
