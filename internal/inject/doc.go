// Package inject embeds the features payload into a built page.
//
// The built page carries a placeholder comment where the payload belongs.
// Injection replaces the first placeholder with an inline script that
// assigns the compacted JSON to a well-known window global, so the page
// renders without fetching anything when opened from disk. Pages without
// the placeholder are left byte-identical.
//
// ExtractInline is the reverse: it finds the assignment in a parsed page
// and returns the JSON.
package inject
