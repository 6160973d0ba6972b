// Package export serializes a compiled seed (its logic graph and command
// event list) to JSON for tooling, and renders a logic graph to SVG for
// visual inspection given a pkg/visualize.Layout.
//
// The JSON export offers both formatted (indented) and compact options to
// accommodate different use cases, from human-readable output to
// space-efficient storage.
package export
