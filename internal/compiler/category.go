package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/featuredb/internal/ir"
)

// CompileCategories parses a CUE list of category structs into
// CategorySpecs, keeping list order.
//
// The CUE value should be the list itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`categories: [{ id: "core", title: "Core" }]`)
//	specs, err := CompileCategories(v.LookupPath(cue.ParsePath("categories")))
func CompileCategories(v cue.Value) ([]ir.CategorySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if v.IncompleteKind() != cue.ListKind {
		return nil, &CompileError{
			Field:   "categories",
			Message: "categories must be a list",
			Pos:     v.Pos(),
		}
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	specs := []ir.CategorySpec{}
	for iter.Next() {
		spec, err := CompileCategory(iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, *spec)
	}
	return specs, nil
}

// CompileCategory parses one category struct.
func CompileCategory(v cue.Value) (*ir.CategorySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.CategorySpec{}
	var err error

	if spec.ID, err = requiredString(v, "id"); err != nil {
		return nil, err
	}
	if spec.Title, err = requiredString(v, "title"); err != nil {
		return nil, err
	}
	if spec.QuickNavTitle, err = optionalString(v, "quickNavTitle"); err != nil {
		return nil, err
	}
	if spec.InQuickNav, err = optionalBool(v, "inQuickNav"); err != nil {
		return nil, err
	}
	if spec.IconBgColor, err = optionalString(v, "iconBgColor"); err != nil {
		return nil, err
	}
	if spec.IconColor, err = optionalString(v, "iconColor"); err != nil {
		return nil, err
	}
	if spec.IconFill, err = optionalBool(v, "iconFill"); err != nil {
		return nil, err
	}
	if spec.IconSVG, err = optionalString(v, "iconSvg"); err != nil {
		return nil, err
	}

	spec.Images, err = parseImages(v)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// parseImages extracts the optional images list.
func parseImages(v cue.Value) ([]ir.CategoryImage, error) {
	images := []ir.CategoryImage{}

	imagesVal := v.LookupPath(cue.ParsePath("images"))
	if !imagesVal.Exists() {
		return images, nil
	}

	iter, err := imagesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		imgVal := iter.Value()
		var img ir.CategoryImage
		if img.Src, err = requiredString(imgVal, "src"); err != nil {
			return nil, err
		}
		if img.Alt, err = optionalString(imgVal, "alt"); err != nil {
			return nil, err
		}
		if img.Caption, err = optionalString(imgVal, "caption"); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalBool(v cue.Value, field string) (bool, error) {
	fv := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
