package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeError reports persisted data that does not decode as the expected
// JSON shape. It is always fatal: a corrupted data file would otherwise
// silently produce an empty feature list.
type DecodeError struct {
	Source  string // file path or "inline", when known
	Offset  int64  // byte offset for syntax errors, 0 otherwise
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	prefix := "decode"
	if e.Source != "" {
		prefix = "decode " + e.Source
	}
	if e.Offset > 0 {
		prefix = fmt.Sprintf("%s (offset %d)", prefix, e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MarshalIndex writes the index as indented JSON with sorted keys and no
// HTML escaping. The output is byte-identical for equal indexes.
func MarshalIndex(ci *CommitIndex) ([]byte, error) {
	out := CommitIndex{
		Commits:              normalizeCommits(ci.Commits),
		CategoryFeatureOrder: ci.CategoryFeatureOrder,
	}
	if out.CategoryFeatureOrder == nil {
		out.CategoryFeatureOrder = map[string][]string{}
	}
	return encodeIndented(out)
}

// MarshalFeaturesData writes the runtime payload as indented JSON.
func MarshalFeaturesData(d *FeaturesData) ([]byte, error) {
	out := *d
	out.Commits = normalizeCommits(d.Commits)
	if out.Categories == nil {
		out.Categories = []CategorySpec{}
	}
	for i := range out.Categories {
		if out.Categories[i].Images == nil {
			out.Categories[i].Images = []CategoryImage{}
		}
	}
	return encodeIndented(out)
}

func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshaling: %w", err)
	}
	return buf.Bytes(), nil
}

func normalizeCommits(commits map[string]ChangeEntry) map[string]ChangeEntry {
	out := make(map[string]ChangeEntry, len(commits))
	for id, entry := range commits {
		if entry.Features == nil {
			entry.Features = map[string]FeatureEntry{}
		}
		out[id] = entry
	}
	return out
}

// DecodeIndex parses the persisted { commits, categoryFeatureOrder } form.
// Malformed JSON is an error in every mode; Strict additionally requires a
// non-null "commits" object. Cross-references are never checked.
func DecodeIndex(data []byte, mode ValidationMode) (*CommitIndex, error) {
	var idx CommitIndex
	if err := decodeJSON(data, &idx); err != nil {
		return nil, err
	}
	if mode == Strict && idx.Commits == nil {
		return nil, &DecodeError{Message: `missing "commits" object`}
	}
	if idx.Commits == nil {
		idx.Commits = map[string]ChangeEntry{}
	}
	if idx.CategoryFeatureOrder == nil {
		idx.CategoryFeatureOrder = map[string][]string{}
	}
	return &idx, nil
}

// DecodeFeaturesData parses the runtime payload. Same rules as DecodeIndex.
func DecodeFeaturesData(data []byte, mode ValidationMode) (*FeaturesData, error) {
	var d FeaturesData
	if err := decodeJSON(data, &d); err != nil {
		return nil, err
	}
	if mode == Strict && d.Commits == nil {
		return nil, &DecodeError{Message: `missing "commits" object`}
	}
	if d.Commits == nil {
		d.Commits = map[string]ChangeEntry{}
	}
	return &d, nil
}

func decodeJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &DecodeError{Message: "empty input"}
	}
	if err := json.Unmarshal(data, v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return &DecodeError{Offset: syntaxErr.Offset, Message: "invalid JSON", Err: err}
		}
		return &DecodeError{Message: "unexpected JSON shape", Err: err}
	}
	return nil
}
