package ir

import "slices"

// FeatureRecord is one documented capability tied to the change that
// first introduced it.
type FeatureRecord struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	IntroducedBy string `json:"introducedBy"` // change identifier (commit hash)
	IntroducedOn string `json:"introducedOn"` // YYYY-MM-DD, or the raw source text
}

// FeatureEntry is a feature as stored under its ChangeEntry.
type FeatureEntry struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ChangeEntry groups all features first introduced by one change.
type ChangeEntry struct {
	Date     string                  `json:"date"`
	Features map[string]FeatureEntry `json:"features"`
}

// CommitIndex is the full feature database: change id -> ChangeEntry, plus
// an optional curated display order per category.
type CommitIndex struct {
	Commits              map[string]ChangeEntry `json:"commits"`
	CategoryFeatureOrder map[string][]string    `json:"categoryFeatureOrder"`
}

// CategoryImage is an illustrative screenshot shown above a category's cards.
type CategoryImage struct {
	Src     string `json:"src" yaml:"src" validate:"required"`
	Alt     string `json:"alt" yaml:"alt"`
	Caption string `json:"caption" yaml:"caption"` // may contain inline HTML
}

// CategorySpec describes how a category is displayed. It plays no part in
// extraction; membership is decided by FeatureRecord.Category alone.
type CategorySpec struct {
	ID            string          `json:"id" yaml:"id" validate:"required,excludesall=# "`
	Title         string          `json:"title" yaml:"title" validate:"required"`
	QuickNavTitle string          `json:"quickNavTitle,omitempty" yaml:"quickNavTitle,omitempty"`
	InQuickNav    bool            `json:"inQuickNav" yaml:"inQuickNav"`
	IconBgColor   string          `json:"iconBgColor" yaml:"iconBgColor"`
	IconColor     string          `json:"iconColor" yaml:"iconColor"`
	IconFill      bool            `json:"iconFill,omitempty" yaml:"iconFill,omitempty"`
	IconSVG       string          `json:"iconSvg" yaml:"iconSvg"`
	Images        []CategoryImage `json:"images" yaml:"images" validate:"dive"`
}

// FeaturesData is the runtime payload: what gets inlined into the built
// page or served as features-data.json.
type FeaturesData struct {
	CommitBaseURL        string                 `json:"commitBaseUrl"`
	Categories           []CategorySpec         `json:"categories"`
	Commits              map[string]ChangeEntry `json:"commits"`
	CategoryFeatureOrder map[string][]string    `json:"categoryFeatureOrder,omitempty"`
}

// Index returns the CommitIndex view of the payload. The maps are shared,
// not copied.
func (d *FeaturesData) Index() *CommitIndex {
	idx := &CommitIndex{
		Commits:              d.Commits,
		CategoryFeatureOrder: d.CategoryFeatureOrder,
	}
	if idx.Commits == nil {
		idx.Commits = map[string]ChangeEntry{}
	}
	return idx
}

// NewCommitIndex creates an empty index with non-nil maps so that it
// serializes as {} rather than null.
func NewCommitIndex() *CommitIndex {
	return &CommitIndex{
		Commits:              map[string]ChangeEntry{},
		CategoryFeatureOrder: map[string][]string{},
	}
}

// AddOutcome reports what Add did with a record.
type AddOutcome int

const (
	// Added means the record was inserted.
	Added AddOutcome = iota
	// AddedDateConflict means the record was inserted under an existing
	// change whose date differs; the change keeps its first date.
	AddedDateConflict
	// Replaced means the category already had this name from a later
	// change. The record took its place and kept its display position; the
	// displaced change is dropped once it has no features left.
	Replaced
	// DuplicateInCategory means the category already has a feature with
	// this name introduced no later than the record. The record was dropped.
	DuplicateInCategory
	// DuplicateInChange means the change already owns a feature with this
	// name under another category. The record was dropped.
	DuplicateInChange
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case AddedDateConflict:
		return "added (date conflict)"
	case Replaced:
		return "replaced later introduction"
	case DuplicateInCategory:
		return "duplicate name in category"
	case DuplicateInChange:
		return "duplicate name in change"
	default:
		return "unknown"
	}
}

// Inserted reports whether the record made it into the index.
func (o AddOutcome) Inserted() bool {
	return o == Added || o == AddedDateConflict || o == Replaced
}

// Add merges rec into the index, creating its ChangeEntry on first sight
// and appending its name to the category's display order. A name already
// in the category is kept by whichever change introduced it first; dates
// compare as strings, so ISO dates order chronologically.
func (ci *CommitIndex) Add(rec FeatureRecord) AddOutcome {
	if ci.Commits == nil {
		ci.Commits = map[string]ChangeEntry{}
	}
	if ci.CategoryFeatureOrder == nil {
		ci.CategoryFeatureOrder = map[string][]string{}
	}

	entry, exists := ci.Commits[rec.IntroducedBy]
	date := rec.IntroducedOn
	if exists {
		date = entry.Date
	}

	replacing := ""
	if slices.Contains(ci.CategoryFeatureOrder[rec.Category], rec.Name) {
		prevID, prevDate, found := ci.introduction(rec.Category, rec.Name)
		if !found || prevID == rec.IntroducedBy || date >= prevDate {
			return DuplicateInCategory
		}
		replacing = prevID
	}

	outcome := Added
	if !exists {
		entry = ChangeEntry{Date: rec.IntroducedOn, Features: map[string]FeatureEntry{}}
	} else {
		if _, taken := entry.Features[rec.Name]; taken {
			return DuplicateInChange
		}
		if entry.Date != rec.IntroducedOn {
			outcome = AddedDateConflict
		}
	}

	if replacing != "" {
		prev := ci.Commits[replacing]
		delete(prev.Features, rec.Name)
		if len(prev.Features) == 0 {
			delete(ci.Commits, replacing)
		}
		outcome = Replaced
	} else {
		ci.CategoryFeatureOrder[rec.Category] = append(ci.CategoryFeatureOrder[rec.Category], rec.Name)
	}

	entry.Features[rec.Name] = FeatureEntry{Description: rec.Description, Category: rec.Category}
	ci.Commits[rec.IntroducedBy] = entry
	return outcome
}

// introduction finds the change that holds name under category.
func (ci *CommitIndex) introduction(category, name string) (id, date string, found bool) {
	for _, cid := range SortedKeys(ci.Commits) {
		entry := ci.Commits[cid]
		if f, ok := entry.Features[name]; ok && f.Category == category {
			return cid, entry.Date, true
		}
	}
	return "", "", false
}

// FeatureCount returns the total number of features across all changes.
func (ci *CommitIndex) FeatureCount() int {
	n := 0
	for _, entry := range ci.Commits {
		n += len(entry.Features)
	}
	return n
}
