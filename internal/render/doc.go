// Package render builds the features page sections from a FeaturesData
// payload.
//
// Build returns detached html.Node trees: one quick-nav link per category
// shown in the nav, and one section per category with its header, images,
// and a grid of feature cards. Attaching them is a separate step against
// explicit Mounts, so a page without a features area is never touched.
package render
