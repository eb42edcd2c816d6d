package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom, class string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	n.Attr = append(n.Attr, attrs...)
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// setInner parses markup as the content of n and appends the result.
func setInner(n *html.Node, markup string) error {
	if markup == "" {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("parsing <%s> content: %w", n.Data, err)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// getElementByID returns the first element in doc with the given id.
func getElementByID(doc *html.Node, id string) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode {
		for _, a := range doc.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return doc
			}
		}
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if found := getElementByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
