// Package derive turns a CommitIndex into ordered per-category feature
// listings.
//
// Derivation is pure and never fails. Every ordering decision is fixed so
// that the same index always yields the same listing:
//
//   - bags are filled from commits sorted by (date, id), then feature names
//     sorted ascending
//   - a non-empty CategoryFeatureOrder entry ranks names by list position,
//     with unlisted names after every listed one in bag order
//   - otherwise names are sorted by introduction date, then name
package derive
