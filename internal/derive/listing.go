package derive

import "github.com/roach88/featuredb/internal/ir"

// CategoryListing is one category's display metadata with its ordered
// features.
type CategoryListing struct {
	Category ir.CategorySpec    `json:"category"`
	Features []ir.FeatureRecord `json:"features"`
}

// Listing returns one CategoryListing per category spec, in spec order.
// Features whose category has no spec are not listed.
func Listing(data *ir.FeaturesData) []CategoryListing {
	byCat := ByCategory(data.Index())
	out := make([]CategoryListing, 0, len(data.Categories))
	for _, spec := range data.Categories {
		features := byCat[spec.ID]
		if features == nil {
			features = []ir.FeatureRecord{}
		}
		out = append(out, CategoryListing{Category: spec, Features: features})
	}
	return out
}

// Names returns the feature names of each category, keyed by category id.
// This is the shape used when comparing a listing against expectations.
func Names(byCat map[string][]ir.FeatureRecord) map[string][]string {
	out := make(map[string][]string, len(byCat))
	for cat, records := range byCat {
		names := make([]string, len(records))
		for i, r := range records {
			names[i] = r.Name
		}
		out[cat] = names
	}
	return out
}

// CanonicalMap converts the listing to the map form accepted by
// ir.MarshalCanonical.
func (l CategoryListing) CanonicalMap() map[string]any {
	features := make([]any, len(l.Features))
	for i, f := range l.Features {
		features[i] = f.CanonicalMap()
	}
	return map[string]any{
		"category": l.Category.ID,
		"title":    l.Category.Title,
		"features": features,
	}
}
