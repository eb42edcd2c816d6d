// Package extract recovers feature records from rendered documentation
// markup.
//
// The document is parsed into a tree and every <section id="..."> is
// flattened into a token stream (feature heading, text run, paragraph,
// link). A small matcher then looks for the four-part feature block:
//
//	<h3>Name</h3> ... since Jan 5, 2026 ... <p>Description</p> ... <a href=".../commit/abc123">
//
// All four parts must appear, in that order, before the next feature
// heading. Blocks that do not complete are skipped in lenient mode and
// reported as a ParseError in strict mode.
package extract
