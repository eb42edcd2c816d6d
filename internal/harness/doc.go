// Package harness runs YAML scenarios through the extract and derive
// pipeline.
//
// A scenario carries its own markup inline, so every case is
// self-contained:
//
//	name: core_fallback_order
//	description: Without a curated order, features list by date
//	markup: |
//	  <section id="core"> ... </section>
//	order:
//	  core: []          # drop the extracted order for core
//	assertions:
//	  - type: listing_order
//	    category: core
//	    names: [Dark Mode, Fast Search]
//
// Run extracts the markup, applies order overrides, derives the listing,
// and evaluates the assertions. RunWithGolden additionally compares the
// derived listing against testdata/golden/{name}.golden.
//
// Scenarios that expect extraction to fail set expect_error to the
// extraction error code (for example E203 with extract.strict).
package harness
