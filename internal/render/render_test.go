package render

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/roach88/featuredb/internal/ir"
)

func quietRenderer() *Renderer {
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func sampleData() *ir.FeaturesData {
	return &ir.FeaturesData{
		CommitBaseURL: "https://github.com/acme/site/commit/",
		Categories: []ir.CategorySpec{
			{
				ID:            "core",
				Title:         "Core Features",
				QuickNavTitle: "Core",
				InQuickNav:    true,
				IconBgColor:   "bg-blue-100",
				IconColor:     "text-blue-600",
				IconSVG:       `<path d="M4 6h16"/>`,
				Images: []ir.CategoryImage{
					{Src: "/img/search.png", Alt: "Search", Caption: "Search in <em>action</em>"},
				},
			},
			{
				ID:          "labs",
				Title:       "Labs",
				IconBgColor: "bg-amber-100",
				IconColor:   "text-amber-600",
				IconFill:    true,
				IconSVG:     `<circle cx="12" cy="12" r="4"/>`,
			},
		},
		Commits: map[string]ir.ChangeEntry{
			"abc123": {Date: "2026-01-10", Features: map[string]ir.FeatureEntry{
				"Fast Search": {Description: "Find anything.", Category: "core"},
			}},
			"def456": {Date: "2026-01-02", Features: map[string]ir.FeatureEntry{
				"Dark Mode": {Description: "Dark theme.", Category: "core"},
			}},
		},
	}
}

const pageWithMounts = `<html><head></head><body><nav id="features-quick-nav-links"></nav><div id="features-sections"></div></body></html>`

func renderNodes(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for _, n := range nodes {
		require.NoError(t, html.Render(&buf, n))
		buf.WriteByte('\n')
	}
	return buf.String()
}

func renderDoc(t *testing.T, doc *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, doc))
	return buf.String()
}

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestBuildGolden(t *testing.T) {
	out, err := quietRenderer().Build(sampleData())
	require.NoError(t, err)
	require.Len(t, out.NavLinks, 1)
	require.Len(t, out.Sections, 2)

	got := renderNodes(t, out.NavLinks) + renderNodes(t, out.Sections)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "features_sections", []byte(got))
}

func TestBuildNavLabels(t *testing.T) {
	data := &ir.FeaturesData{
		Categories: []ir.CategorySpec{
			{ID: "a", Title: "Alpha", InQuickNav: true},
			{ID: "b", Title: "Beta", QuickNavTitle: "B", InQuickNav: true},
			{ID: "c", Title: "Hidden"},
		},
	}

	out, err := quietRenderer().Build(data)
	require.NoError(t, err)
	require.Len(t, out.NavLinks, 2)
	assert.Equal(t, "Alpha", out.NavLinks[0].FirstChild.Data)
	assert.Equal(t, "B", out.NavLinks[1].FirstChild.Data)
	assert.Len(t, out.Sections, 3)
}

func TestBuildEscapesFeatureText(t *testing.T) {
	data := sampleData()
	data.Commits["abc123"].Features["Fast Search"] = ir.FeatureEntry{
		Description: "Use <b>tags</b> & more",
		Category:    "core",
	}

	out, err := quietRenderer().Build(data)
	require.NoError(t, err)
	rendered := renderNodes(t, out.Sections)
	assert.Contains(t, rendered, "Use &lt;b&gt;tags&lt;/b&gt; &amp; more")
}

func TestBuildRawDateShownUnchanged(t *testing.T) {
	data := sampleData()
	data.Commits["abc123"] = ir.ChangeEntry{Date: "early 2026", Features: data.Commits["abc123"].Features}

	out, err := quietRenderer().Build(data)
	require.NoError(t, err)
	assert.Contains(t, renderNodes(t, out.Sections), "since early 2026")
}

func TestFormatSince(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-01-05", "Jan 5, 2026"},
		{"2026-12-31", "Dec 31, 2026"},
		{"2025-09-09", "Sep 9, 2025"},
		{"Jan 5, 2026", "Jan 5, 2026"},
		{"2026-13-01", "2026-13-01"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSince(tt.in))
		})
	}
}

func TestRenderPageNoMountsIsNoop(t *testing.T) {
	pages := []string{
		`<html><body><p>plain page</p></body></html>`,
		`<html><body><nav id="features-quick-nav-links"></nav></body></html>`,
		`<html><body><div id="features-sections"></div></body></html>`,
	}
	for _, page := range pages {
		doc := parse(t, page)
		before := renderDoc(t, doc)

		rendered, err := quietRenderer().RenderPage(doc, sampleData())
		require.NoError(t, err)
		assert.False(t, rendered)
		assert.Equal(t, before, renderDoc(t, doc))
	}
}

func TestRenderPageAttaches(t *testing.T) {
	doc := parse(t, pageWithMounts)

	rendered, err := quietRenderer().RenderPage(doc, sampleData())
	require.NoError(t, err)
	require.True(t, rendered)

	mounts := FindMounts(doc)
	require.True(t, mounts.Ready())
	assert.Equal(t, "a", mounts.Nav.FirstChild.Data)
	assert.Nil(t, mounts.Nav.FirstChild.NextSibling)

	var ids []string
	for c := mounts.Sections.FirstChild; c != nil; c = c.NextSibling {
		for _, a := range c.Attr {
			if a.Key == "id" {
				ids = append(ids, a.Val)
			}
		}
	}
	assert.Equal(t, []string{"core", "labs"}, ids)
}

func TestRenderPageNilData(t *testing.T) {
	doc := parse(t, pageWithMounts)
	before := renderDoc(t, doc)

	rendered, err := quietRenderer().RenderPage(doc, nil)
	require.NoError(t, err)
	assert.False(t, rendered)
	assert.Equal(t, before, renderDoc(t, doc))
}

func TestAttachWithoutMounts(t *testing.T) {
	assert.False(t, Mounts{}.Attach(&Output{}))
	assert.False(t, FindMounts(nil).Ready())
}

func TestLoadDataPrefersInline(t *testing.T) {
	doc := parse(t, `<html><body><script>window.__FEATURES_DATA__={"commitBaseUrl":"inline/","categories":[],"commits":{}};</script></body></html>`)
	fsys := fstest.MapFS{
		DefaultDataFile: {Data: []byte(`{"commitBaseUrl":"file/","categories":[],"commits":{}}`)},
	}

	data, err := quietRenderer().LoadData(doc, fsys, DefaultDataFile)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "inline/", data.CommitBaseURL)
}

func TestLoadDataFallsBackToFile(t *testing.T) {
	doc := parse(t, pageWithMounts)
	fsys := fstest.MapFS{
		DefaultDataFile: {Data: []byte(`{"commitBaseUrl":"file/","categories":[],"commits":{}}`)},
	}

	data, err := quietRenderer().LoadData(doc, fsys, DefaultDataFile)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "file/", data.CommitBaseURL)
}

func TestLoadDataCustomGlobal(t *testing.T) {
	doc := parse(t, `<html><body><script>window.FEATS={"commits":{}};</script></body></html>`)

	data, err := New(WithGlobal("FEATS"), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))).LoadData(doc, nil, DefaultDataFile)
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestLoadDataMissingFallbackSkips(t *testing.T) {
	doc := parse(t, pageWithMounts)

	data, err := quietRenderer().LoadData(doc, fstest.MapFS{}, DefaultDataFile)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = quietRenderer().LoadData(doc, nil, DefaultDataFile)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestLoadDataMalformed(t *testing.T) {
	doc := parse(t, pageWithMounts)
	fsys := fstest.MapFS{DefaultDataFile: {Data: []byte(`{"commits":`)}}

	_, err := quietRenderer().LoadData(doc, fsys, DefaultDataFile)
	var decodeErr *ir.DecodeError
	require.ErrorAs(t, err, &decodeErr)

	doc = parse(t, `<body><script>window.__FEATURES_DATA__=[];</script></body>`)
	_, err = quietRenderer().LoadData(doc, nil, DefaultDataFile)
	require.ErrorAs(t, err, &decodeErr)
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "features.html")
	outPath := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(pageWithMounts), 0o644))

	payload, err := ir.MarshalFeaturesData(sampleData())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultDataFile), payload, 0o644))

	rendered, err := quietRenderer().RenderFile(pagePath, outPath, "")
	require.NoError(t, err)
	require.True(t, rendered)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<section class="mb-16" id="core">`)
	assert.Contains(t, string(out), `href="https://github.com/acme/site/commit/def456"`)
}

func TestRenderFileWithoutFeaturesArea(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "about.html")
	outPath := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(`<html><body>about</body></html>`), 0o644))

	rendered, err := quietRenderer().RenderFile(pagePath, outPath, "")
	require.NoError(t, err)
	assert.False(t, rendered)
	assert.NoFileExists(t, outPath)
}

func TestRenderFileMissingFallback(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "features.html")
	outPath := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(pageWithMounts), 0o644))

	rendered, err := quietRenderer().RenderFile(pagePath, outPath, "")
	require.NoError(t, err)
	assert.False(t, rendered)
	assert.NoFileExists(t, outPath)
}
