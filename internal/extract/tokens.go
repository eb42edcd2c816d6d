package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

type tokenKind int

const (
	tokHeading tokenKind = iota
	tokText
	tokParagraph
	tokLink
)

func (k tokenKind) String() string {
	switch k {
	case tokHeading:
		return "heading"
	case tokText:
		return "text"
	case tokParagraph:
		return "paragraph"
	case tokLink:
		return "link"
	default:
		return "unknown"
	}
}

// token is one structural unit of a section body, in document order.
// For links Value is the href; for everything else it is collapsed text.
type token struct {
	Kind  tokenKind
	Value string
}

// tokenizer flattens a section subtree into tokens.
type tokenizer struct {
	heading atom.Atom
	tokens  []token
	run     strings.Builder // raw text since the last structural token
}

func tokenize(section *html.Node, heading atom.Atom) []token {
	t := &tokenizer{heading: heading}
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c)
	}
	t.flush()
	return t.tokens
}

func (t *tokenizer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		t.run.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template:
		return
	case atom.Section:
		// Nested identified sections are extracted on their own.
		if attr(n, "id") != "" {
			return
		}
	case t.heading:
		t.emit(tokHeading, textContent(n))
		return
	case atom.P:
		t.emit(tokParagraph, textContent(n))
		return
	case atom.A:
		if href := attr(n, "href"); href != "" {
			t.emit(tokLink, href)
		}
	}

	// Element boundaries separate words: <span>New</span><span>since ...
	// must not read as "Newsince".
	t.run.WriteByte(' ')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c)
	}
	t.run.WriteByte(' ')
}

// flush turns the pending raw text into one text token. Text is only cut
// at structural tokens, so a marker split across inline elements
// ("since <time>Jan 5, 2026</time>") stays in one run.
func (t *tokenizer) flush() {
	s := collapse(t.run.String())
	t.run.Reset()
	if s != "" {
		t.tokens = append(t.tokens, token{Kind: tokText, Value: s})
	}
}

func (t *tokenizer) emit(kind tokenKind, value string) {
	t.flush()
	t.tokens = append(t.tokens, token{Kind: kind, Value: value})
}

// textContent returns the collapsed text of n and its descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapse(b.String())
}

// collapse folds runs of whitespace to a single space, trims, and NFC
// normalizes.
func collapse(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
