// Package visualize provides spatial layout algorithms for rendering a
// compiled logic graph. Embedding translates the graph's logical topology
// (anchors and the connections/doors between them) into 2D coordinates
// suitable for an SVG or other spatial export, entirely separate from the
// reachability semantics those anchors carry.
package visualize
