package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/featuredb/internal/ir"
)

// loadFeaturesData reads and strictly decodes a runtime payload. Decode
// failures carry path as their source.
func loadFeaturesData(path string) (*ir.FeaturesData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading features data: %w", err)
	}
	data, err := ir.DecodeFeaturesData(raw, ir.Strict)
	if err != nil {
		var decodeErr *ir.DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.Source = path
		}
		return nil, err
	}
	return data, nil
}
