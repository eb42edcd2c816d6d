package derive

import (
	"cmp"
	"slices"

	"github.com/roach88/featuredb/internal/ir"
)

// ByCategory inverts the index into one ordered record list per category.
// Categories with no features do not appear in the result.
func ByCategory(ci *ir.CommitIndex) map[string][]ir.FeatureRecord {
	bags := collect(ci)
	out := make(map[string][]ir.FeatureRecord, len(bags))
	for cat, bag := range bags {
		out[cat] = Order(bag, ci.CategoryFeatureOrder[cat])
	}
	return out
}

// ForCategory returns the ordered features of a single category. An unknown
// category yields an empty, non-nil slice.
func ForCategory(ci *ir.CommitIndex, category string) []ir.FeatureRecord {
	bag := collect(ci)[category]
	if bag == nil {
		return []ir.FeatureRecord{}
	}
	return Order(bag, ci.CategoryFeatureOrder[category])
}

// collect groups records by category in a fixed insertion order.
func collect(ci *ir.CommitIndex) map[string][]ir.FeatureRecord {
	bags := map[string][]ir.FeatureRecord{}
	if ci == nil {
		return bags
	}

	ids := make([]string, 0, len(ci.Commits))
	for id := range ci.Commits {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Or(
			cmp.Compare(ci.Commits[a].Date, ci.Commits[b].Date),
			cmp.Compare(a, b),
		)
	})

	for _, id := range ids {
		entry := ci.Commits[id]
		for _, name := range ir.SortedKeys(entry.Features) {
			f := entry.Features[name]
			bags[f.Category] = append(bags[f.Category], ir.FeatureRecord{
				Name:         name,
				Description:  f.Description,
				Category:     f.Category,
				IntroducedBy: id,
				IntroducedOn: entry.Date,
			})
		}
	}
	return bags
}

// Order returns a sorted copy of records. With a non-empty override,
// records are ranked by the position of their name in it; names missing
// from the override rank after all listed names and keep their relative
// order. Without an override, records are sorted by IntroducedOn, then
// Name.
func Order(records []ir.FeatureRecord, override []string) []ir.FeatureRecord {
	out := slices.Clone(records)
	if out == nil {
		return []ir.FeatureRecord{}
	}

	if len(override) > 0 {
		rank := make(map[string]int, len(override))
		for i, name := range override {
			if _, ok := rank[name]; !ok {
				rank[name] = i
			}
		}
		pos := func(name string) int {
			if i, ok := rank[name]; ok {
				return i
			}
			return len(override)
		}
		slices.SortStableFunc(out, func(a, b ir.FeatureRecord) int {
			return cmp.Compare(pos(a.Name), pos(b.Name))
		})
		return out
	}

	slices.SortStableFunc(out, func(a, b ir.FeatureRecord) int {
		return cmp.Or(
			cmp.Compare(a.IntroducedOn, b.IntroducedOn),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out
}
