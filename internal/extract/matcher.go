package extract

import (
	"regexp"
	"strings"
)

// block is a fully matched feature block.
type block struct {
	Name        string
	Date        string
	Description string
	Change      string
}

// partial is a feature heading whose block never completed.
type partial struct {
	Name    string
	Missing string // the first part that was not found
}

type stage int

const (
	wantMarker stage = iota
	wantParagraph
	wantLink
)

func (s stage) missing() string {
	switch s {
	case wantMarker:
		return "since-date marker"
	case wantParagraph:
		return "description paragraph"
	default:
		return "change link"
	}
}

// matcher walks a token stream and yields feature blocks.
type matcher struct {
	changeRe *regexp.Regexp
}

func newMatcher(commitSegment string) *matcher {
	return &matcher{
		changeRe: regexp.MustCompile(regexp.QuoteMeta(commitSegment) + `([0-9a-fA-F]+)(?:[/?#]|$)`),
	}
}

// changeID returns the hex change identifier encoded in href.
func (m *matcher) changeID(href string) (string, bool) {
	sub := m.changeRe.FindStringSubmatch(href)
	if sub == nil {
		return "", false
	}
	return strings.ToLower(sub[1]), true
}

// match returns completed blocks and the headings that did not complete.
// Tokens before the first feature heading are ignored.
func (m *matcher) match(tokens []token) ([]block, []partial) {
	var (
		blocks   []block
		partials []partial
		cur      *block
		st       stage
	)

	abandon := func() {
		if cur != nil {
			partials = append(partials, partial{Name: cur.Name, Missing: st.missing()})
		}
		cur = nil
	}

	for _, tok := range tokens {
		if tok.Kind == tokHeading {
			abandon()
			cur = &block{Name: tok.Value}
			st = wantMarker
			continue
		}
		if cur == nil {
			continue
		}

		switch st {
		case wantMarker:
			if tok.Kind == tokText || tok.Kind == tokParagraph {
				if date, ok := findSince(tok.Value); ok {
					cur.Date = date
					st = wantParagraph
				}
			}
		case wantParagraph:
			if tok.Kind == tokParagraph {
				cur.Description = tok.Value
				st = wantLink
			}
		case wantLink:
			if tok.Kind == tokLink {
				if id, ok := m.changeID(tok.Value); ok {
					cur.Change = id
					if cur.Name == "" {
						partials = append(partials, partial{Missing: "feature name"})
					} else {
						blocks = append(blocks, *cur)
					}
					cur = nil
				}
			}
		}
	}
	abandon()

	return blocks, partials
}
