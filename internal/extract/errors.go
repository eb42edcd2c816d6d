package extract

import "fmt"

// Extraction error codes (E200-E299)
const (
	ErrCodeRead         = "E201" // document could not be read
	ErrCodeNoSections   = "E202" // no <section id="..."> found and sections are required
	ErrCodeIncomplete   = "E203" // feature block missing one of its four parts (strict)
	ErrCodeDuplicate    = "E204" // feature name already recorded (strict)
	ErrCodeDateConflict = "E205" // change seen with two different dates (strict)
	ErrCodeOptions      = "E206" // extraction options are unusable
)

// ParseError reports markup that cannot be turned into feature records.
// In lenient mode only ErrCodeRead, ErrCodeNoSections and ErrCodeOptions
// occur.
type ParseError struct {
	Code    string
	Section string // section id, when known
	Feature string // feature heading, when known
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	loc := ""
	switch {
	case e.Section != "" && e.Feature != "":
		loc = fmt.Sprintf(" [section %q, feature %q]", e.Section, e.Feature)
	case e.Section != "":
		loc = fmt.Sprintf(" [section %q]", e.Section)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %s: %v", e.Code, loc, e.Message, e.Err)
	}
	return fmt.Sprintf("%s%s: %s", e.Code, loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
