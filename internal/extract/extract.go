package extract

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/featuredb/internal/ir"
)

// Defaults for Options fields left empty.
const (
	DefaultHeading       = "h3"
	DefaultCommitSegment = "/commit/"
	DefaultMarkupPath    = "src/features.html"
)

// Options controls extraction.
type Options struct {
	// Mode selects lenient (skip incomplete blocks) or strict (fail on them).
	Mode ir.ValidationMode

	// Heading is the tag name of a feature heading. Default "h3".
	Heading string

	// CommitSegment is the URL path segment preceding the change id in a
	// feature link. Default "/commit/".
	CommitSegment string

	// RequireSections makes a document without any <section id="..."> a
	// ParseError instead of an empty result.
	RequireSections bool
}

// SkipReason explains why a candidate block produced no record.
type SkipReason string

const (
	SkipIncomplete   SkipReason = "incomplete"
	SkipDuplicate    SkipReason = "duplicate"
	SkipDateConflict SkipReason = "date_conflict" // record kept, change date not updated
)

// Skip describes a candidate block that did not become a record as found.
type Skip struct {
	Section string     `json:"section"`
	Feature string     `json:"feature"`
	Reason  SkipReason `json:"reason"`
	Detail  string     `json:"detail"`
}

// Result holds everything one extraction produced.
type Result struct {
	Index    *ir.CommitIndex
	Records  []ir.FeatureRecord // inserted records, in document order
	Sections []string           // identified sections, in document order
	Skipped  []Skip
}

// ExtractFile reads and extracts the markup document at path.
func ExtractFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Code: ErrCodeRead, Message: fmt.Sprintf("opening %s", path), Err: err}
	}
	defer f.Close()
	return Extract(f, opts)
}

// Extract parses a rendered markup document and builds a CommitIndex from
// every complete feature block found inside identified sections.
func Extract(r io.Reader, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	heading := atom.Lookup([]byte(strings.ToLower(opts.Heading)))
	if heading == 0 {
		return nil, &ParseError{Code: ErrCodeOptions, Message: fmt.Sprintf("unknown heading element %q", opts.Heading)}
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Code: ErrCodeRead, Message: "parsing markup", Err: err}
	}

	sections := findSections(doc)
	if len(sections) == 0 && opts.RequireSections {
		return nil, &ParseError{Code: ErrCodeNoSections, Message: `no <section id="..."> elements found`}
	}

	m := newMatcher(opts.CommitSegment)

	res := &Result{Index: ir.NewCommitIndex()}
	seen := map[string]bool{}

	for _, sec := range sections {
		id := attr(sec, "id")
		if !seen[id] {
			seen[id] = true
			res.Sections = append(res.Sections, id)
		}

		blocks, partials := m.match(tokenize(sec, heading))

		for _, p := range partials {
			skip := Skip{Section: id, Feature: p.Name, Reason: SkipIncomplete, Detail: "missing " + p.Missing}
			if opts.Mode == ir.Strict {
				return nil, &ParseError{Code: ErrCodeIncomplete, Section: id, Feature: p.Name, Message: skip.Detail}
			}
			res.Skipped = append(res.Skipped, skip)
		}

		for _, b := range blocks {
			rec := ir.FeatureRecord{
				Name:         b.Name,
				Description:  b.Description,
				Category:     id,
				IntroducedBy: b.Change,
				IntroducedOn: b.Date,
			}
			if err := res.add(rec, opts.Mode); err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}

func (res *Result) add(rec ir.FeatureRecord, mode ir.ValidationMode) error {
	outcome := res.Index.Add(rec)
	switch outcome {
	case ir.Added:
		res.Records = append(res.Records, rec)
		return nil
	case ir.AddedDateConflict:
		res.Records = append(res.Records, rec)
		return res.dateConflict(rec, mode)
	case ir.Replaced:
		res.displace(rec)
		if mode == ir.Strict {
			return &ParseError{Code: ErrCodeDuplicate, Section: rec.Category, Feature: rec.Name, Message: outcome.String()}
		}
		res.Skipped = append(res.Skipped, Skip{
			Section: rec.Category,
			Feature: rec.Name,
			Reason:  SkipDuplicate,
			Detail:  fmt.Sprintf("superseded by earlier change %s", rec.IntroducedBy),
		})
		if res.Index.Commits[rec.IntroducedBy].Date != rec.IntroducedOn {
			return res.dateConflict(rec, mode)
		}
		return nil
	default:
		detail := outcome.String()
		if mode == ir.Strict {
			return &ParseError{Code: ErrCodeDuplicate, Section: rec.Category, Feature: rec.Name, Message: detail}
		}
		res.Skipped = append(res.Skipped, Skip{Section: rec.Category, Feature: rec.Name, Reason: SkipDuplicate, Detail: detail})
		return nil
	}
}

func (res *Result) dateConflict(rec ir.FeatureRecord, mode ir.ValidationMode) error {
	detail := fmt.Sprintf("change %s already dated %s, block says %s",
		rec.IntroducedBy, res.Index.Commits[rec.IntroducedBy].Date, rec.IntroducedOn)
	if mode == ir.Strict {
		return &ParseError{Code: ErrCodeDateConflict, Section: rec.Category, Feature: rec.Name, Message: detail}
	}
	res.Skipped = append(res.Skipped, Skip{Section: rec.Category, Feature: rec.Name, Reason: SkipDateConflict, Detail: detail})
	return nil
}

// displace drops the record rec superseded and appends rec, keeping
// Records in insertion order.
func (res *Result) displace(rec ir.FeatureRecord) {
	res.Records = slices.DeleteFunc(res.Records, func(r ir.FeatureRecord) bool {
		return r.Name == rec.Name && r.Category == rec.Category
	})
	res.Records = append(res.Records, rec)
}

// findSections returns every <section> carrying a non-empty id, in
// document order.
func findSections(doc *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Section && attr(n, "id") != "" {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func withDefaults(opts Options) Options {
	if opts.Heading == "" {
		opts.Heading = DefaultHeading
	}
	if opts.CommitSegment == "" {
		opts.CommitSegment = DefaultCommitSegment
	}
	return opts
}
