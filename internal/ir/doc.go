// Package ir provides the canonical data model for the feature database.
//
// This package contains type definitions and the JSON boundary only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - A feature name denotes exactly one first-introduction event
//   - JSON tags follow the published data file (camelCase)
//   - Serialized output is byte-identical for identical input
//   - Cross-references are advisory; decoding never checks them
package ir
