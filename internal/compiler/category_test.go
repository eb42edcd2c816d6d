package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/featuredb/internal/ir"
)

const sampleCUE = `
categories: [
	{
		id:            "core"
		title:         "Core Features"
		quickNavTitle: "Core"
		inQuickNav:    true
		iconBgColor:   "bg-blue-100"
		iconColor:     "text-blue-600"
		iconSvg:       "<path d=\"M4 6h16\"/>"
		images: [{src: "/img/a.png", alt: "A", caption: "Shot <em>one</em>"}]
	},
	{
		id:       "labs"
		title:    "Labs"
		iconFill: true
	},
]
`

func wantSampleSpecs() []ir.CategorySpec {
	return []ir.CategorySpec{
		{
			ID:            "core",
			Title:         "Core Features",
			QuickNavTitle: "Core",
			InQuickNav:    true,
			IconBgColor:   "bg-blue-100",
			IconColor:     "text-blue-600",
			IconSVG:       `<path d="M4 6h16"/>`,
			Images:        []ir.CategoryImage{{Src: "/img/a.png", Alt: "A", Caption: "Shot <em>one</em>"}},
		},
		{
			ID:       "labs",
			Title:    "Labs",
			IconFill: true,
			Images:   []ir.CategoryImage{},
		},
	}
}

func TestCompileCategories(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(sampleCUE)
	require.NoError(t, v.Err())

	specs, err := CompileCategories(v.LookupPath(cue.ParsePath("categories")))
	require.NoError(t, err)
	assert.Equal(t, wantSampleSpecs(), specs)
}

func TestCompileCategoriesEmptyList(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`categories: []`)

	specs, err := CompileCategories(v.LookupPath(cue.ParsePath("categories")))
	require.NoError(t, err)
	assert.NotNil(t, specs)
	assert.Empty(t, specs)
}

func TestCompileCategoryErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantField string
	}{
		{"missing id", `categories: [{title: "T"}]`, "id"},
		{"missing title", `categories: [{id: "x"}]`, "title"},
		{"missing image src", `categories: [{id: "x", title: "T", images: [{alt: "a"}]}]`, "src"},
		{"not a list", `categories: {id: "x", title: "T"}`, "categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := cuecontext.New()
			v := ctx.CompileString(tt.src)
			require.NoError(t, v.Err())

			_, err := CompileCategories(v.LookupPath(cue.ParsePath("categories")))
			require.Error(t, err)
			var compileErr *CompileError
			require.True(t, errors.As(err, &compileErr))
			assert.Equal(t, tt.wantField, compileErr.Field)
		})
	}
}

func TestCompileCategoryWrongType(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`categories: [{id: "x", title: "T", inQuickNav: "yes"}]`)

	_, err := CompileCategories(v.LookupPath(cue.ParsePath("categories")))
	require.Error(t, err)
}

func TestParseCategoriesCUE(t *testing.T) {
	specs, err := ParseCategoriesCUE([]byte(sampleCUE), "categories.cue")
	require.NoError(t, err)
	assert.Equal(t, wantSampleSpecs(), specs)
}

func TestParseCategoriesCUEMissingList(t *testing.T) {
	_, err := ParseCategoriesCUE([]byte(`other: 1`), "categories.cue")
	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "categories", compileErr.Field)
}

func TestParseCategoriesCUESyntaxError(t *testing.T) {
	_, err := ParseCategoriesCUE([]byte("categories: [\n\t{id: \"x\"\n"), "broken.cue")
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "cue", compileErr.Field)
	assert.True(t, compileErr.Pos.IsValid())
	assert.Contains(t, compileErr.Error(), "broken.cue")
}

func TestParseCategoriesYAML(t *testing.T) {
	src := `
categories:
  - id: core
    title: Core Features
    quickNavTitle: Core
    inQuickNav: true
    iconBgColor: bg-blue-100
    iconColor: text-blue-600
    iconSvg: '<path d="M4 6h16"/>'
    images:
      - src: /img/a.png
        alt: A
        caption: Shot <em>one</em>
  - id: labs
    title: Labs
    iconFill: true
`
	specs, err := ParseCategoriesYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, wantSampleSpecs(), specs)
}

func TestParseCategoriesYAMLUnknownField(t *testing.T) {
	_, err := ParseCategoriesYAML([]byte("categories:\n  - id: x\n    title: T\n    colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParseCategoriesJSON(t *testing.T) {
	src := `{"categories": [
		{"id": "core", "title": "Core Features", "quickNavTitle": "Core", "inQuickNav": true,
		 "iconBgColor": "bg-blue-100", "iconColor": "text-blue-600", "iconSvg": "<path d=\"M4 6h16\"/>",
		 "images": [{"src": "/img/a.png", "alt": "A", "caption": "Shot <em>one</em>"}]},
		{"id": "labs", "title": "Labs", "inQuickNav": false, "iconBgColor": "", "iconColor": "", "iconFill": true, "iconSvg": "", "images": []}
	]}`
	specs, err := ParseCategoriesJSON([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, wantSampleSpecs(), specs)
}

func TestParseCategoriesJSONUnknownField(t *testing.T) {
	_, err := ParseCategoriesJSON([]byte(`{"categories": [{"id": "x", "title": "T", "colour": "red"}]}`))
	require.Error(t, err)
}

func TestLoadCategoriesByExtension(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"categories.cue":  `categories: [{id: "a", title: "A"}]`,
		"categories.yaml": "categories:\n  - id: a\n    title: A\n",
		"categories.yml":  "categories:\n  - id: a\n    title: A\n",
		"categories.json": `{"categories": [{"id": "a", "title": "A"}]}`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		specs, err := LoadCategories(path)
		require.NoError(t, err, name)
		require.Len(t, specs, 1, name)
		assert.Equal(t, "a", specs[0].ID, name)
		assert.Equal(t, "A", specs[0].Title, name)
	}
}

func TestLoadCategoriesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCategories(filepath.Join(dir, "missing.cue"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(dir, "categories.toml")
	require.NoError(t, os.WriteFile(path, []byte(`x = 1`), 0o644))
	_, err = LoadCategories(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported categories format")
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Field: "id", Message: "id is required"}
	assert.Equal(t, "id: id is required", err.Error())
}
