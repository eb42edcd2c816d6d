package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/featuredb/internal/ir"
)

// categoriesFile is the document shape of YAML and JSON category files.
type categoriesFile struct {
	Categories []ir.CategorySpec `json:"categories" yaml:"categories"`
}

// LoadCategories reads category specs from path. The format follows the
// extension: .cue files must define a top-level "categories" list; .yaml,
// .yml, and .json files hold a { categories: [...] } document and reject
// unknown fields.
func LoadCategories(path string) ([]ir.CategorySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return ParseCategoriesCUE(data, path)
	case ".yaml", ".yml":
		return ParseCategoriesYAML(data)
	case ".json":
		return ParseCategoriesJSON(data)
	default:
		return nil, fmt.Errorf("unsupported categories format %q (want .cue, .yaml, .yml, or .json)", filepath.Ext(path))
	}
}

// ParseCategoriesCUE compiles CUE source and returns its "categories" list.
// filename is used for error positions only.
func ParseCategoriesCUE(src []byte, filename string) ([]ir.CategorySpec, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	categories := value.LookupPath(cue.ParsePath("categories"))
	if !categories.Exists() {
		return nil, &CompileError{
			Field:   "categories",
			Message: "no top-level categories list",
			Pos:     value.Pos(),
		}
	}
	return CompileCategories(categories)
}

// ParseCategoriesYAML decodes a YAML categories document.
func ParseCategoriesYAML(src []byte) ([]ir.CategorySpec, error) {
	var doc categoriesFile
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing YAML categories: %w", err)
	}
	return normalizeSpecs(doc.Categories), nil
}

// ParseCategoriesJSON decodes a JSON categories document.
func ParseCategoriesJSON(src []byte) ([]ir.CategorySpec, error) {
	var doc categoriesFile
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing JSON categories: %w", err)
	}
	return normalizeSpecs(doc.Categories), nil
}

func normalizeSpecs(specs []ir.CategorySpec) []ir.CategorySpec {
	if specs == nil {
		return []ir.CategorySpec{}
	}
	for i := range specs {
		if specs[i].Images == nil {
			specs[i].Images = []ir.CategoryImage{}
		}
	}
	return specs
}
