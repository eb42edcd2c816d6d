package ir

import "fmt"

// ValidationMode selects how a pipeline stage treats input that does not
// fit the expected shape.
type ValidationMode int

const (
	// Lenient tolerates non-matching input: free-text mining skips what it
	// cannot recognise and cross-reference problems are reported, not fatal.
	Lenient ValidationMode = iota
	// Strict fails on the first problem.
	Strict
)

func (m ValidationMode) String() string {
	switch m {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("ValidationMode(%d)", int(m))
	}
}

// ModeFor maps a strict flag to a ValidationMode.
func ModeFor(strict bool) ValidationMode {
	if strict {
		return Strict
	}
	return Lenient
}
